package strmnet

import (
	"fmt"
	"math"

	"github.com/JonKing93/pfdf-sub001/grid"
	"github.com/im7mortal/UTM"
)

// SegmentRaster stamps every segment's owned pixels with its id (0 =
// background), suitable for driving file export outside this core.
func (s *Segments) SegmentRaster() *grid.Int32 {
	out := grid.NewInt32(s.flow.GD, 0, 0)
	for i, pix := range s.Pix {
		id := int32(s.IDs[i])
		for _, c := range pix {
			out.A[c] = id
		}
	}
	return out
}

// Lengths returns polyline lengths per segment, in CRS units.
func (s *Segments) Lengths() []float64 {
	o := make([]float64, s.N())
	for i, g := range s.Geoms {
		l := 0.
		for k := 1; k < len(g); k++ {
			l += math.Hypot(g[k].X-g[k-1].X, g[k].Y-g[k-1].Y)
		}
		o[i] = l
	}
	return o
}

// Areas returns upslope catchment areas at each segment outlet, in CRS
// units squared (npixels times the cell area).
func (s *Segments) Areas() []float64 {
	ca := s.flow.GD.CellArea()
	o := make([]float64, s.N())
	for i, n := range s.Npix {
		o[i] = n * ca
	}
	return o
}

// Sinuosity is polyline length over straight-line endpoint separation.
func (s *Segments) Sinuosity() []float64 {
	o := s.Lengths()
	for i, g := range s.Geoms {
		d := math.Hypot(g[len(g)-1].X-g[0].X, g[len(g)-1].Y-g[0].Y)
		if d > 0 {
			o[i] /= d
		} else {
			o[i] = math.NaN()
		}
	}
	return o
}

// Relief returns max minus min DEM value over each segment's owned pixels,
// NoData omitted; NaN for entirely-NoData segments.
func (s *Segments) Relief(dem *grid.Real) ([]float64, error) {
	mx, err := s.Summary("max", dem)
	if err != nil {
		return nil, err
	}
	mn, err := s.Summary("min", dem)
	if err != nil {
		return nil, err
	}
	for i := range mx {
		mx[i] -= mn[i]
	}
	return mx, nil
}

// Gradient is the drop from a segment's first owned pixel to its outlet
// pixel over its length, NaN where either elevation is NoData.
func (s *Segments) Gradient(dem *grid.Real) ([]float64, error) {
	if err := s.flow.GD.Conforms(dem.GD); err != nil {
		return nil, fmt.Errorf("strmnet.Gradient: %w: %v", ErrConform, err)
	}
	l := s.Lengths()
	o := make([]float64, s.N())
	for i, pix := range s.Pix {
		o[i] = (dem.Value(pix[0]) - dem.Value(pix[len(pix)-1])) / l[i]
	}
	return o, nil
}

// OutletsLatLon converts segment (or terminal) outlet coordinates to
// latitude/longitude for export, for grids in the given UTM zone.
func (s *Segments) OutletsLatLon(zone int, northern, terminal bool) ([][2]float64, error) {
	o := make([][2]float64, s.N())
	for i := range s.IDs {
		j := i
		if terminal {
			j = s.terminus(i)
		}
		r, c := s.flow.GD.RowCol(s.outlet(j))
		x, y := s.flow.GD.Centroid(r, c)
		lat, lon, err := UTM.ToLatLon(x, y, zone, "", northern)
		if err != nil {
			return nil, fmt.Errorf("strmnet.OutletsLatLon: segment %d: %v", s.IDs[j], err)
		}
		o[i] = [2]float64{lat, lon}
	}
	return o, nil
}
