package grid

import "math"

// Point is a coordinate in the grid's CRS.
type Point struct{ X, Y float64 }

// Real is a float64 raster with a configured NoData value. A NaN NoData is
// matched NaN-aware.
type Real struct {
	GD     *Definition
	A      []float64
	NoData float64
}

// NewReal allocates a raster filled with v.
func NewReal(gd *Definition, v, nodata float64) *Real {
	a := make([]float64, gd.Ncells())
	if v != 0 {
		for i := range a {
			a[i] = v
		}
	}
	return &Real{GD: gd, A: a, NoData: nodata}
}

func (r *Real) IsNoData(cid int) bool {
	v := r.A[cid]
	if math.IsNaN(r.NoData) {
		return math.IsNaN(v)
	}
	return v == r.NoData || math.IsNaN(v)
}

// Value returns the cell value with NoData mapped to NaN, the missing-value
// convention used by every aggregate statistic here.
func (r *Real) Value(cid int) float64 {
	if r.IsNoData(cid) {
		return math.NaN()
	}
	return r.A[cid]
}

// ValuesAt gathers values for a set of cells, NoData as NaN. When omit is
// set, NoData cells are left out entirely.
func (r *Real) ValuesAt(cids []int, omit bool) []float64 {
	o := make([]float64, 0, len(cids))
	for _, c := range cids {
		if r.IsNoData(c) {
			if omit {
				continue
			}
			o = append(o, math.NaN())
			continue
		}
		o = append(o, r.A[c])
	}
	return o
}

// Int32 is an integer raster, used for segment and basin id grids.
type Int32 struct {
	GD     *Definition
	A      []int32
	NoData int32
}

func NewInt32(gd *Definition, v, nodata int32) *Int32 {
	a := make([]int32, gd.Ncells())
	if v != 0 {
		for i := range a {
			a[i] = v
		}
	}
	return &Int32{GD: gd, A: a, NoData: nodata}
}

func (r *Int32) Copy() *Int32 {
	a := make([]int32, len(r.A))
	copy(a, r.A)
	return &Int32{GD: r.GD, A: a, NoData: r.NoData}
}
