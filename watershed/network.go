package watershed

import (
	"fmt"
	"math"

	"github.com/JonKing93/pfdf-sub001/grid"
)

// Network traces the channel network over the masked cells of flow and
// returns ordered upstream-to-downstream coordinate polylines, one per
// stream segment, pre-split at maxLength.
//
// Reaches run from a channel head or confluence down to the next confluence
// or network outlet. A reach's final vertex is the first cell of the segment
// immediately downstream (or the downstream continuation point of a network
// outlet) so that consumers credit that pixel to the downstream segment.
// Splits introduced by maxLength duplicate the leading coordinate of the
// downstream piece. maxLength <= 0 or +Inf disables splitting.
//
// maxLength is in meters unless baseUnit is set, in which case it is in the
// base unit of the grid CRS. The two coincide for the projected metric CRSs
// this engine supports, so the flag only affects interpretation, not
// arithmetic.
func (e *Engine) Network(flow *grid.Flow, mask []bool, maxLength float64, baseUnit bool) ([][]grid.Point, error) {
	gd := flow.GD
	nc := gd.Ncells()
	if len(mask) != nc {
		return nil, fmt.Errorf("watershed.Network: mask length %d, want %d cells", len(mask), nc)
	}

	// in-network downstream pointer and upstream counts
	dsm := make([]int32, nc)
	nup := make([]int32, nc)
	for c := 0; c < nc; c++ {
		dsm[c] = -1
		if !mask[c] {
			continue
		}
		if flow.IsNoData(c) {
			r, cl := gd.RowCol(c)
			return nil, fmt.Errorf("watershed.Network: masked cell (%d,%d) has no flow direction", r, cl)
		}
		if d, ok := flow.Downstream(c); ok && mask[d] {
			dsm[c] = int32(d)
			nup[d]++
		}
	}

	var out [][]grid.Point
	for s := 0; s < nc; s++ {
		if !mask[s] || (nup[s] != 0 && nup[s] < 2) {
			continue // reaches start at channel heads and confluences only
		}
		verts, err := trace(flow, gd, dsm, nup, s)
		if err != nil {
			return nil, err
		}
		out = append(out, split(verts, maxLength)...)
	}
	return out, nil
}

func trace(flow *grid.Flow, gd *grid.Definition, dsm, nup []int32, s int) ([]grid.Point, error) {
	verts := make([]grid.Point, 0, 8)
	r, c := gd.RowCol(s)
	x, y := gd.Centroid(r, c)
	verts = append(verts, grid.Point{X: x, Y: y})

	cur, steps := s, 0
	for {
		if steps++; steps > gd.Ncells() {
			return nil, fmt.Errorf("watershed.Network: flow loop detected at cell %d", cur)
		}
		d := dsm[cur]
		if d < 0 {
			// network outlet: continuation point one flow step downstream,
			// off-grid or unmasked, geometry only
			dr, dc, _ := grid.D8Offset(flow.D8[cur])
			r, c := gd.RowCol(cur)
			x, y := gd.Centroid(r+dr, c+dc)
			verts = append(verts, grid.Point{X: x, Y: y})
			return verts, nil
		}
		r, c := gd.RowCol(int(d))
		x, y := gd.Centroid(r, c)
		verts = append(verts, grid.Point{X: x, Y: y})
		if nup[d] >= 2 {
			return verts, nil // confluence cell belongs to the downstream reach
		}
		cur = int(d)
	}
}

func split(verts []grid.Point, maxLength float64) [][]grid.Point {
	if maxLength <= 0 || math.IsInf(maxLength, 1) {
		return [][]grid.Point{verts}
	}
	var pieces [][]grid.Point
	cur := []grid.Point{verts[0]}
	l := 0.
	for i := 1; i < len(verts); i++ {
		d := math.Hypot(verts[i].X-verts[i-1].X, verts[i].Y-verts[i-1].Y)
		if l+d > maxLength*(1+1e-12) && len(cur) > 1 {
			pieces = append(pieces, cur)
			v := verts[i-1]
			cur = []grid.Point{v, v} // duplicated leading coordinate
			l = 0
		}
		cur = append(cur, verts[i])
		l += d
	}
	return append(pieces, cur)
}
