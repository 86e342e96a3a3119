package strmnet

import (
	"fmt"
	"math"

	"github.com/JonKing93/pfdf-sub001/grid"
)

const rad2deg = 180 / math.Pi

// Confinement computes the mean confinement angle of every segment from a
// DEM, using an irregular directional kernel: for each pixel the two lateral
// directions are the flow code rotated by ±3 steps around the 8-direction
// cycle, and the rise over the flow-aligned lateral length gives a slope on
// either side. neighborhood is the window size in pixels; demPerM rescales
// the lateral length when the DEM's vertical unit is not meters (use 1 for
// metric DEMs).
//
// Angles are in degrees, 180 on perfectly flat terrain, and deliberately
// unclamped: certain DEM configurations produce values outside [0,180]. A
// NoData flow code at any segment pixel, an edge-clipped empty window, or
// NoData inside a window all yield NaN for that pixel, and any NaN pixel
// poisons the segment mean (no omission).
func (s *Segments) Confinement(dem *grid.Real, neighborhood int, demPerM float64) ([]float64, error) {
	if err := s.flow.GD.Conforms(dem.GD); err != nil {
		return nil, fmt.Errorf("strmnet.Confinement: %w: %v", ErrConform, err)
	}
	if neighborhood < 1 {
		return nil, fmt.Errorf("strmnet.Confinement: neighborhood %d, want >= 1", neighborhood)
	}
	if !(demPerM > 0) {
		return nil, fmt.Errorf("strmnet.Confinement: dem-per-meter factor %v, want > 0", demPerM)
	}

	o := make([]float64, s.N())
	for i, pix := range s.Pix {
		o[i] = s.segmentConfinement(dem, pix, neighborhood, demPerM)
	}
	return o, nil
}

func (s *Segments) segmentConfinement(dem *grid.Real, pix []int, n int, demPerM float64) float64 {
	// a NoData flow code anywhere in the segment decides the whole mean, so
	// scan the flow array first and skip the window queries entirely
	for _, c := range pix {
		if s.flow.IsNoData(c) {
			return math.NaN()
		}
	}
	sum := 0.
	for _, c := range pix {
		theta := s.pixelConfinement(dem, c, n, demPerM)
		if math.IsNaN(theta) {
			return math.NaN()
		}
		sum += theta
	}
	return sum / float64(len(pix))
}

func (s *Segments) pixelConfinement(dem *grid.Real, cid, n int, demPerM float64) float64 {
	gd := s.flow.GD
	f := s.flow.D8[cid]
	z := dem.Value(cid)

	// flow-aligned lateral length
	var l float64
	switch f {
	case 3, 7: // N/S-aligned flow
		l = gd.Ch * float64(n)
	case 1, 5: // E/W-aligned flow
		l = gd.Cw * float64(n)
	default:
		l = gd.Diagonal() * float64(n)
	}
	l *= demPerM

	scw := (s.maxHeight(dem, cid, grid.D8Rotate(f, 3), n) - z) / l
	sccw := (s.maxHeight(dem, cid, grid.D8Rotate(f, -3), n) - z) / l
	return 180 - math.Atan(scw)*rad2deg - math.Atan(sccw)*rad2deg
}

// maxHeight is the maximum elevation over the n pixels strictly in direction
// d from cid, clipped at the raster edges; NaN when the clipped window is
// empty or touches NoData.
func (s *Segments) maxHeight(dem *grid.Real, cid int, d int8, n int) float64 {
	gd := s.flow.GD
	dr, dc, _ := grid.D8Offset(d)
	r, c := gd.RowCol(cid)

	mx, any := math.Inf(-1), false
	for k := 1; k <= n; k++ {
		rr, cc := r+k*dr, c+k*dc
		if !gd.InBounds(rr, cc) {
			break
		}
		v := dem.Value(gd.CellID(rr, cc))
		if math.IsNaN(v) {
			return math.NaN()
		}
		if v > mx {
			mx = v
		}
		any = true
	}
	if !any {
		return math.NaN()
	}
	return mx
}
