package strmnet

import (
	"fmt"

	"github.com/JonKing93/pfdf-sub001/grid"
)

// Accumulation samples accumulated upslope values at one outlet per segment
// (per terminal segment's outlet when terminal is set, still keyed by
// segment order). A nil weights raster accumulates pixel counts. A mask
// restricts which pixels contribute; omitNoData treats NoData weights as
// missing instead of poisoning downstream sums. NoData at a sampled outlet
// becomes NaN, never an error.
func (s *Segments) Accumulation(weights *grid.Real, mask []bool, omitNoData, terminal bool) ([]float64, error) {
	if weights != nil {
		if err := s.flow.GD.Conforms(weights.GD); err != nil {
			return nil, fmt.Errorf("strmnet.Accumulation: %w: %v", ErrConform, err)
		}
	}
	acc, err := s.eng.Accumulation(s.flow, weights, mask, omitNoData)
	if err != nil {
		return nil, fmt.Errorf("strmnet.Accumulation: %w", err)
	}
	o := make([]float64, s.N())
	for i := range s.IDs {
		j := i
		if terminal {
			j = s.terminus(i)
		}
		o[i] = acc.Value(s.outlet(j))
	}
	return o, nil
}

// MaskRatio returns, per segment, the fraction of the upslope catchment at
// its outlet covered by mask (e.g. the burned-area ratio driving hazard
// likelihood models).
func (s *Segments) MaskRatio(mask []bool) ([]float64, error) {
	cnt, err := s.Accumulation(nil, mask, false, false)
	if err != nil {
		return nil, err
	}
	for i := range cnt {
		cnt[i] /= s.Npix[i]
	}
	return cnt, nil
}
