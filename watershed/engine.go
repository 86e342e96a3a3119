// Package watershed is a reference D8 delineation engine: it traces the
// channel network over a candidate-pixel mask, accumulates upslope weights,
// and delineates single-outlet catchments. It implements the external
// delineation surface the segment network consumes; production pipelines may
// substitute their own engine behind the same interface.
package watershed

import (
	"fmt"

	"github.com/JonKing93/pfdf-sub001/grid"
)

// Engine delineates over D8 flow rasters. The zero value is ready to use.
// Prime may be called once to cache the upslope topology of a flow raster;
// a primed Engine is read-only and safe for concurrent Catchment calls.
type Engine struct {
	flow *grid.Flow
	uso  []int32 // CSR offsets into usl, len ncells+1
	usl  []int32 // upslope cell ids
}

// Prime caches the upslope adjacency of flow. Not safe to call concurrently
// with other methods; prime before fanning out workers.
func (e *Engine) Prime(flow *grid.Flow) {
	e.uso, e.usl = buildUpslopes(flow)
	e.flow = flow
}

// buildUpslopes inverts the downstream pointers into a flattened CSR
// adjacency: upslope cells of c are usl[uso[c]:uso[c+1]].
func buildUpslopes(flow *grid.Flow) (uso, usl []int32) {
	nc := flow.GD.Ncells()
	cnt := make([]int32, nc)
	for c := 0; c < nc; c++ {
		if d, ok := flow.Downstream(c); ok {
			cnt[d]++
		}
	}
	uso = make([]int32, nc+1)
	for c := 0; c < nc; c++ {
		uso[c+1] = uso[c] + cnt[c]
	}
	usl = make([]int32, uso[nc])
	fill := make([]int32, nc)
	for c := 0; c < nc; c++ {
		if d, ok := flow.Downstream(c); ok {
			usl[uso[d]+fill[d]] = int32(c)
			fill[d]++
		}
	}
	return
}

// Catchment returns the boolean mask of all cells whose flow path passes
// through (row,col), including the cell itself.
func (e *Engine) Catchment(flow *grid.Flow, row, col int) ([]bool, error) {
	if !flow.GD.InBounds(row, col) {
		return nil, fmt.Errorf("watershed.Catchment: pour point (%d,%d) outside %dx%d grid", row, col, flow.GD.Nrow, flow.GD.Ncol)
	}
	uso, usl := e.uso, e.usl
	if e.flow != flow || uso == nil {
		uso, usl = buildUpslopes(flow)
	}

	o := make([]bool, flow.GD.Ncells())
	stack := []int32{int32(flow.GD.CellID(row, col))}
	o[stack[0]] = true
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, u := range usl[uso[c]:uso[c+1]] {
			if !o[u] {
				o[u] = true
				stack = append(stack, u)
			}
		}
	}
	return o, nil
}
