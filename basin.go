package strmnet

import (
	"fmt"
	"math"
	"sort"

	"github.com/JonKing93/pfdf-sub001/grid"
	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmaths/slice"
	"golang.org/x/sync/errgroup"
)

// basin rasters beyond this many cells risk exhausting memory during the
// per-worker stamping passes
const maxBasinCells = int64(1) << 31

// TerminalBasins returns the terminal-basin-id raster: every pixel of a
// terminal segment's catchment carries that terminal's id, 0 is background,
// and pixels shared between nested basins resolve to the most downstream
// basin. The raster is cached until a terminal segment present in it is
// removed; when no cache exists it is built sequentially.
func (s *Segments) TerminalBasins() (*grid.Int32, error) {
	if s.basin != nil {
		return s.basin, nil
	}
	return s.BuildTerminalBasins(1)
}

// BuildTerminalBasins rebuilds the terminal-basin raster with nworkers
// goroutines (<=1 sequential) and refreshes the cache. The output is
// bit-identical for any worker count: basins are stamped in write-priority
// order, sequentially by ascending catchment area so larger basins overwrite
// smaller on shared pixels, and in parallel by priority group with a merge
// that never overwrites a pixel claimed by a more downstream group. A
// failure delineating any single catchment aborts the whole build.
func (s *Segments) BuildTerminalBasins(nworkers int) (*grid.Int32, error) {
	gd := s.flow.GD
	if n := int64(gd.Nrow) * int64(gd.Ncol); n > maxBasinCells {
		return nil, fmt.Errorf("strmnet.BuildTerminalBasins: %d x %d grid (%d cells): %w", gd.Nrow, gd.Ncol, n, ErrRasterTooBig)
	}

	// ascending catchment area, outlet id breaking ties
	terms := s.terminals()
	sort.Slice(terms, func(a, b int) bool {
		ta, tb := terms[a], terms[b]
		if s.Npix[ta] != s.Npix[tb] {
			return s.Npix[ta] < s.Npix[tb]
		}
		return s.outlet(ta) < s.outlet(tb)
	})

	if p, ok := s.eng.(interface{ Prime(*grid.Flow) }); ok {
		p.Prime(s.flow) // catchment topology shared read-only by all workers
	}

	out := grid.NewInt32(gd, 0, 0)
	var err error
	if nworkers <= 1 || len(terms) < 2 {
		err = s.stampSequential(out, terms)
	} else {
		err = s.stampParallel(out, terms, nworkers)
	}
	if err != nil {
		return nil, fmt.Errorf("strmnet.BuildTerminalBasins: %w", err)
	}
	s.basin = out
	s.lg.Info().Int("terminals", len(terms)).Int("workers", nworkers).Msg("terminal-basin raster built")
	return out, nil
}

func (s *Segments) stampSequential(out *grid.Int32, terms []int) error {
	bar := s.bar(len(terms))
	for _, t := range terms {
		r, c := s.flow.GD.RowCol(s.outlet(t))
		m, err := s.eng.Catchment(s.flow, r, c)
		if err != nil {
			return err // no partial basin raster
		}
		id := int32(s.IDs[t])
		for j, in := range m {
			if in {
				out.A[j] = id // later (larger) basins overwrite earlier
			}
		}
		if bar != nil {
			bar.Incr()
		}
	}
	if bar != nil {
		uiprogress.Stop()
	}
	return nil
}

// stampParallel reproduces the sequential pixel ownership exactly. Terminals
// are grouped by how many terminal-outlet pixels drain into the same basin;
// a nested basin's receiving terminal always counts strictly more, so the
// members of one group are pairwise disjoint and safe to delineate
// concurrently. Groups run from highest count (most downstream) to lowest,
// and a pixel claimed by an earlier group is never overwritten.
func (s *Segments) stampParallel(out *grid.Int32, terms []int, nworkers int) error {
	gd := s.flow.GD
	nc := gd.Ncells()

	w := grid.NewReal(gd, 0, math.NaN())
	for _, t := range terms {
		w.A[s.outlet(t)] = 1
	}
	acc, err := s.eng.Accumulation(s.flow, w, nil, false)
	if err != nil {
		return err
	}
	cnt := make(map[int]int, len(terms))
	for k, t := range terms {
		cnt[k] = int(acc.A[s.outlet(t)] + .5)
	}
	mord, lord := slice.InvertMap(cnt)

	bar := s.bar(len(terms))
	for g := len(lord) - 1; g >= 0; g-- {
		members := append([]int(nil), mord[lord[g]]...)
		sort.Ints(members) // keep the ascending-area order of terms

		nw := nworkers
		if nw > len(members) {
			nw = len(members)
		}
		locals := make([][]int32, nw)
		var eg errgroup.Group
		for wk := 0; wk < nw; wk++ {
			wk := wk
			eg.Go(func() error {
				var loc []int32
				for m := wk; m < len(members); m += nw { // interleaved stride
					t := terms[members[m]]
					r, c := gd.RowCol(s.outlet(t))
					msk, err := s.eng.Catchment(s.flow, r, c)
					if err != nil {
						return err
					}
					if loc == nil {
						loc = make([]int32, nc)
					}
					id := int32(s.IDs[t])
					for j, in := range msk {
						if in {
							loc[j] = id
						}
					}
					if bar != nil {
						bar.Incr()
					}
				}
				locals[wk] = loc
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			if bar != nil {
				uiprogress.Stop()
			}
			return err
		}

		// same-group basins are disjoint, so worker rasters never conflict;
		// the claimed-pixel rule orders this group behind the ones before it
		for _, loc := range locals {
			if loc == nil {
				continue
			}
			for j, v := range loc {
				if v != 0 && out.A[j] == 0 {
					out.A[j] = v
				}
			}
		}
	}
	if bar != nil {
		uiprogress.Stop()
	}
	return nil
}

func (s *Segments) bar(n int) *uiprogress.Bar {
	if !s.progress {
		return nil
	}
	uiprogress.Start()
	return uiprogress.AddBar(n).AppendCompleted().PrependElapsed()
}
