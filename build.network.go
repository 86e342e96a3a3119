package strmnet

import (
	"fmt"
	"math"

	"github.com/JonKing93/pfdf-sub001/grid"
	"github.com/rs/zerolog"
)

// New delineates the stream-segment network over the masked cells of flow.
// maxLength caps segment length (meters unless WithBaseUnits; use +Inf for
// no cap) and must be at least one pixel diagonal. The flow raster must
// carry a CRS and affine transform.
func New(flow *grid.Flow, mask []bool, maxLength float64, opts ...Option) (*Segments, error) {
	s := &Segments{flow: flow, eng: defaultEngine(), lg: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}

	gd := flow.GD
	if gd == nil || !gd.HasTransform() {
		return nil, fmt.Errorf("strmnet.New: %w (no transform)", ErrNoCRS)
	}
	if !gd.HasCRS() {
		return nil, fmt.Errorf("strmnet.New: %w (no CRS)", ErrNoCRS)
	}
	if len(mask) != gd.Ncells() {
		return nil, fmt.Errorf("strmnet.New: mask length %d, want %d cells", len(mask), gd.Ncells())
	}
	if diag := gd.Diagonal(); math.IsNaN(maxLength) || maxLength < diag {
		return nil, fmt.Errorf("strmnet.New: %w (max length %.2f m, pixel diagonal %.2f m)", ErrMaxLength, maxLength, diag)
	}

	lines, err := s.eng.Network(flow, mask, maxLength, s.baseUnit)
	if err != nil {
		return nil, fmt.Errorf("strmnet.New: %w", err)
	}
	if err := s.fromPolylines(lines); err != nil {
		return nil, err
	}
	s.buildConnectivity()

	// npixels: unweighted upslope count sampled once at every outlet
	acc, err := s.eng.Accumulation(flow, nil, nil, false)
	if err != nil {
		return nil, fmt.Errorf("strmnet.New: %w", err)
	}
	s.Npix = make([]float64, s.N())
	for i := range s.IDs {
		s.Npix[i] = acc.A[s.outlet(i)]
	}

	s.lg.Info().Int("segments", s.N()).Msg("network delineated")
	return s, nil
}

// fromPolylines converts delineated polylines to owned pixel runs, resolving
// the split-point duplication convention: a duplicated leading coordinate
// (or a pending split flagged by the previous segment's duplicated trailing
// coordinate) drops the first index, crediting the shared split pixel to the
// downstream piece, and the final index of every segment is dropped as the
// outlet/junction pixel owned by the segment immediately downstream.
func (s *Segments) fromPolylines(lines [][]grid.Point) error {
	gd := s.flow.GD
	n := len(lines)
	s.IDs, s.Geoms, s.Pix = make([]int, n), make([][]grid.Point, n), make([][]int, n)

	pend := false
	for k, ln := range lines {
		nv := len(ln)
		if nv < 2 {
			return fmt.Errorf("strmnet: polyline %d has %d vertices, want at least 2", k, nv)
		}
		rows, cols := make([]int, nv), make([]int, nv)
		for i, p := range ln {
			rows[i], cols[i] = gd.PointToCell(p.X, p.Y)
		}
		same := func(a, b int) bool { return rows[a] == rows[b] && cols[a] == cols[b] }

		lo := 0
		if pend || same(0, 1) {
			lo = 1
		}
		pend = same(nv-1, nv-2)

		hi := nv - 1 // outlet/junction pixel, owned downstream
		if hi <= lo {
			return fmt.Errorf("strmnet: segment %d owns no pixels after junction trimming", k+1)
		}
		pix := make([]int, 0, hi-lo)
		for i := lo; i < hi; i++ {
			if !gd.InBounds(rows[i], cols[i]) {
				return fmt.Errorf("strmnet: segment %d vertex %d maps to (%d,%d), outside the grid", k+1, i, rows[i], cols[i])
			}
			pix = append(pix, gd.CellID(rows[i], cols[i]))
		}

		s.IDs[k] = k + 1
		s.Geoms[k] = ln
		s.Pix[k] = pix
	}
	s.nextid = n + 1
	s.rebuildIndex()
	return nil
}
