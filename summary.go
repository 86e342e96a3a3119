package strmnet

import (
	"fmt"
	"math"
	"sort"

	"github.com/JonKing93/pfdf-sub001/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// supported summary statistics
var stats = map[string]func([]float64) float64{
	"count":  func(x []float64) float64 { return float64(len(x)) },
	"sum":    floats.Sum,
	"mean":   func(x []float64) float64 { return stat.Mean(x, nil) },
	"median": median,
	"min":    floats.Min,
	"max":    floats.Max,
	"std":    func(x []float64) float64 { return stat.StdDev(x, nil) },
	"var":    func(x []float64) float64 { return stat.Variance(x, nil) },
}

func median(x []float64) float64 {
	sort.Float64s(x)
	return stat.Quantile(.5, stat.Empirical, x, nil)
}

func reduce(name string, x []float64) float64 {
	if len(x) == 0 {
		return math.NaN() // entirely-NoData pixels are a data condition, not an error
	}
	return stats[name](x)
}

// Summary reduces an externally supplied conforming raster to one value per
// segment over its owned pixels. NoData pixels are treated as missing;
// a segment whose pixels are entirely NoData yields NaN.
func (s *Segments) Summary(name string, values *grid.Real) ([]float64, error) {
	if _, ok := stats[name]; !ok {
		return nil, fmt.Errorf("strmnet.Summary: %w: %q", ErrUnknownStat, name)
	}
	if err := s.flow.GD.Conforms(values.GD); err != nil {
		return nil, fmt.Errorf("strmnet.Summary: %w: %v", ErrConform, err)
	}
	o := make([]float64, s.N())
	for i, pix := range s.Pix {
		o[i] = reduce(name, values.ValuesAt(pix, true))
	}
	return o, nil
}

// BasinSummary reduces a conforming raster to one value per terminal
// segment over its whole catchment, keyed by terminal order (TerminalIDs).
// Sum and mean are sampled from a single accumulation raster; other
// statistics iterate explicit per-outlet catchment masks.
func (s *Segments) BasinSummary(name string, values *grid.Real) ([]float64, error) {
	if _, ok := stats[name]; !ok {
		return nil, fmt.Errorf("strmnet.BasinSummary: %w: %q", ErrUnknownStat, name)
	}
	if err := s.flow.GD.Conforms(values.GD); err != nil {
		return nil, fmt.Errorf("strmnet.BasinSummary: %w: %v", ErrConform, err)
	}
	terms := s.terminals()
	o := make([]float64, len(terms))

	if name == "sum" || name == "mean" {
		sum, err := s.eng.Accumulation(s.flow, values, nil, true)
		if err != nil {
			return nil, fmt.Errorf("strmnet.BasinSummary: %w", err)
		}
		valid := make([]bool, values.GD.Ncells())
		for c := range valid {
			valid[c] = !values.IsNoData(c)
		}
		cnt, err := s.eng.Accumulation(s.flow, nil, valid, false)
		if err != nil {
			return nil, fmt.Errorf("strmnet.BasinSummary: %w", err)
		}
		for k, t := range terms {
			c := s.outlet(t)
			if cnt.A[c] == 0 {
				o[k] = math.NaN() // entirely-NoData basin
			} else if name == "sum" {
				o[k] = sum.A[c]
			} else {
				o[k] = sum.A[c] / cnt.A[c]
			}
		}
		return o, nil
	}

	for k, t := range terms {
		r, c := s.flow.GD.RowCol(s.outlet(t))
		m, err := s.eng.Catchment(s.flow, r, c)
		if err != nil {
			return nil, fmt.Errorf("strmnet.BasinSummary: %w", err)
		}
		var cids []int
		for j, in := range m {
			if in {
				cids = append(cids, j)
			}
		}
		o[k] = reduce(name, values.ValuesAt(cids, true))
	}
	return o, nil
}
