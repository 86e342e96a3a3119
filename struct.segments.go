package strmnet

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/JonKing93/pfdf-sub001/grid"
	"github.com/rs/zerolog"
)

// Segments owns all per-segment state as parallel arrays indexed by segment
// position. Ids are stable and never reused; array indices shift on
// filtering. The flow raster is immutable and shared by reference; the
// mutable arrays are exclusively owned by one instance and never mutated
// concurrently. Copy is the only sanctioned way to get independently
// mutable state.
type Segments struct {
	flow *grid.Flow
	eng  Delineator
	lg   zerolog.Logger

	baseUnit, progress bool

	IDs     []int          // unique positive segment ids
	Geoms   [][]grid.Point // upstream→downstream polylines, junction vertex included
	Pix     [][]int        // exclusively owned cell ids, upstream→downstream
	Npix    []float64      // upslope pixel count at the segment outlet
	Child   []int          // downstream array index, -1 at a terminus
	Parents [][]int        // upstream array indices, variable degree

	mid    map[int]int // id → array index
	nextid int
	basin  *grid.Int32 // lazy terminal-basin raster, nil until built
}

// N is the number of segments.
func (s *Segments) N() int { return len(s.IDs) }

// Flow returns the shared immutable flow raster.
func (s *Segments) Flow() *grid.Flow { return s.flow }

func (s *Segments) index(id int) (int, error) {
	if i, ok := s.mid[id]; ok {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %d", ErrUnknownID, id)
}

func (s *Segments) rebuildIndex() {
	s.mid = make(map[int]int, len(s.IDs))
	for i, id := range s.IDs {
		s.mid[id] = i
	}
}

// outlet is the most downstream owned pixel of segment i.
func (s *Segments) outlet(i int) int {
	p := s.Pix[i]
	return p[len(p)-1]
}

// Copy returns an independently mutable instance. The flow raster and any
// built basin cache are shared; both are immutable.
func (s *Segments) Copy() *Segments {
	c := &Segments{
		flow: s.flow, eng: s.eng, lg: s.lg,
		baseUnit: s.baseUnit, progress: s.progress,
		IDs:     append([]int(nil), s.IDs...),
		Geoms:   append([][]grid.Point(nil), s.Geoms...),
		Pix:     append([][]int(nil), s.Pix...),
		Npix:    append([]float64(nil), s.Npix...),
		Child:   append([]int(nil), s.Child...),
		Parents: make([][]int, len(s.Parents)),
		nextid:  s.nextid,
		basin:   s.basin,
	}
	for i, p := range s.Parents {
		c.Parents[i] = append([]int(nil), p...)
	}
	c.rebuildIndex()
	return c
}

// seggob is the gob snapshot; the delineation engine is not serializable and
// is re-installed on load.
type seggob struct {
	GD      *grid.Definition
	D8      []int8
	FNoData int8
	IDs     []int
	Geoms   [][]grid.Point
	Pix     [][]int
	Npix    []float64
	Child   []int
	Parents [][]int
	NextID  int
}

// SaveGob snapshots the network state (basin cache excluded) to a gob file.
func (s *Segments) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Segments.SaveGob %v", err)
	}
	defer f.Close()
	g := seggob{
		GD: s.flow.GD, D8: s.flow.D8, FNoData: s.flow.NoData,
		IDs: s.IDs, Geoms: s.Geoms, Pix: s.Pix, Npix: s.Npix,
		Child: s.Child, Parents: s.Parents, NextID: s.nextid,
	}
	if err := gob.NewEncoder(f).Encode(&g); err != nil {
		return fmt.Errorf(" Segments.SaveGob %v", err)
	}
	return nil
}

// LoadGob restores a saved network. Options apply as in New.
func LoadGob(fp string, opts ...Option) (*Segments, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var g seggob
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf(" strmnet.LoadGob %v", err)
	}
	s := &Segments{
		flow: &grid.Flow{GD: g.GD, D8: g.D8, NoData: g.FNoData},
		eng:  defaultEngine(), lg: zerolog.Nop(),
		IDs: g.IDs, Geoms: g.Geoms, Pix: g.Pix, Npix: g.Npix,
		Child: g.Child, Parents: g.Parents, nextid: g.NextID,
	}
	for _, o := range opts {
		o(s)
	}
	s.rebuildIndex()
	return s, nil
}
