// Package strmnet builds and manages a stream-segment network derived from a
// gridded D8 flow-direction raster and a candidate-pixel mask, and computes
// the per-segment and per-basin statistics used as inputs to a post-fire
// debris-flow hazard model. Network delineation primitives are consumed
// through the Delineator interface; package watershed provides the built-in
// engine.
package strmnet

import (
	"github.com/JonKing93/pfdf-sub001/grid"
	"github.com/JonKing93/pfdf-sub001/watershed"
	"github.com/rs/zerolog"
)

// Delineator is the external delineation surface: network tracing, weighted
// flow accumulation, and single-outlet catchment masks over a D8 raster.
type Delineator interface {
	Network(flow *grid.Flow, mask []bool, maxLength float64, baseUnit bool) ([][]grid.Point, error)
	Accumulation(flow *grid.Flow, weights *grid.Real, mask []bool, omitNoData bool) (*grid.Real, error)
	Catchment(flow *grid.Flow, row, col int) ([]bool, error)
}

// Option adjusts network construction and build behaviour.
type Option func(*Segments)

// WithDelineator substitutes the delineation engine.
func WithDelineator(d Delineator) Option { return func(s *Segments) { s.eng = d } }

// WithLogger installs a structured logger; the default discards everything.
func WithLogger(lg zerolog.Logger) Option { return func(s *Segments) { s.lg = lg } }

// WithBaseUnits interprets max lengths in the base unit of the grid CRS
// rather than meters.
func WithBaseUnits() Option { return func(s *Segments) { s.baseUnit = true } }

// WithProgress draws a terminal progress bar during basin-raster builds.
func WithProgress() Option { return func(s *Segments) { s.progress = true } }

func defaultEngine() Delineator { return &watershed.Engine{} }
