package watershed

import (
	"fmt"
	"math"

	"github.com/JonKing93/pfdf-sub001/grid"
)

// Accumulation routes per-cell weights downslope and returns the raster of
// accumulated upslope sums (the cell's own weight included). With a nil
// weights raster every cell weighs 1, giving upslope pixel counts. A mask
// zeroes the contribution of unmasked cells without breaking routing through
// them. NoData weights become NaN and poison everything downstream unless
// omitNoData treats them as zero.
func (e *Engine) Accumulation(flow *grid.Flow, weights *grid.Real, mask []bool, omitNoData bool) (*grid.Real, error) {
	gd := flow.GD
	nc := gd.Ncells()
	if weights != nil {
		if err := gd.Conforms(weights.GD); err != nil {
			return nil, fmt.Errorf("watershed.Accumulation: weights %w", err)
		}
	}
	if mask != nil && len(mask) != nc {
		return nil, fmt.Errorf("watershed.Accumulation: mask length %d, want %d", len(mask), nc)
	}

	acc := make([]float64, nc)
	for c := 0; c < nc; c++ {
		switch {
		case mask != nil && !mask[c]:
			// contributes nothing
		case weights == nil:
			acc[c] = 1
		case weights.IsNoData(c):
			if !omitNoData {
				acc[c] = math.NaN()
			}
		default:
			acc[c] = weights.A[c]
		}
	}

	// Kahn sweep in topological order
	indeg := make([]int32, nc)
	for c := 0; c < nc; c++ {
		if d, ok := flow.Downstream(c); ok {
			indeg[d]++
		}
	}
	queue := make([]int32, 0, nc)
	for c := 0; c < nc; c++ {
		if indeg[c] == 0 {
			queue = append(queue, int32(c))
		}
	}
	ndone := 0
	for len(queue) > 0 {
		c := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		ndone++
		if d, ok := flow.Downstream(int(c)); ok {
			acc[d] += acc[c]
			if indeg[d]--; indeg[d] == 0 {
				queue = append(queue, int32(d))
			}
		}
	}
	if ndone != nc {
		return nil, fmt.Errorf("watershed.Accumulation: flow raster contains a cycle (%d of %d cells ordered)", ndone, nc)
	}
	return &grid.Real{GD: gd, A: acc, NoData: math.NaN()}, nil
}
