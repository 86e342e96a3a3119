package strmnet

import (
	"fmt"

	"github.com/JonKing93/pfdf-sub001/grid"
)

// Continuous resolves a requested removal set (retention set when keep is
// set) into one that preserves flow continuity. Each pass removes only the
// requested segments currently on the upstream edge (no surviving parents,
// when upstream is allowed) or downstream edge (no surviving child, when
// downstream is allowed) of their local network, updates a working copy of
// the topology, and repeats until no requested segment sits on an edge. A
// requested interior segment is never removed while neighbours on both sides
// remain. The state itself is not mutated; the returned set has the same
// mode as the input.
func (s *Segments) Continuous(sel []bool, keep, upstream, downstream bool) ([]bool, error) {
	n := s.N()
	if len(sel) != n {
		return nil, fmt.Errorf("strmnet.Continuous: selection length %d, want %d", len(sel), n)
	}

	req := make([]bool, n)
	for i, v := range sel {
		if keep {
			req[i] = !v
		} else {
			req[i] = v
		}
	}

	child := append([]int(nil), s.Child...)
	npar := make([]int, n)
	for i, p := range s.Parents {
		npar[i] = len(p)
	}

	removed := make([]bool, n)
	for {
		any := false
		for i := 0; i < n; i++ {
			if !req[i] {
				continue
			}
			if !(upstream && npar[i] == 0) && !(downstream && child[i] < 0) {
				continue
			}
			removed[i], req[i], any = true, false, true
			if c := child[i]; c >= 0 {
				npar[c]--
			}
			for _, p := range s.Parents[i] {
				if child[p] == i {
					child[p] = -1
				}
			}
		}
		if !any {
			break // each pass strictly shrinks the requested set
		}
	}

	if keep {
		o := make([]bool, n)
		for i := range removed {
			o[i] = !removed[i]
		}
		return o, nil
	}
	return removed, nil
}

// Remove deletes the union of the id-based and boolean-index-based
// selections. Continuity is not enforced; callers needing it resolve the
// selection through Continuous first.
func (s *Segments) Remove(ids []int, sel []bool) error {
	rm, err := s.selection(ids, sel)
	if err != nil {
		return fmt.Errorf("strmnet.Remove: %w", err)
	}
	s.apply(rm)
	return nil
}

// Keep retains the union of the selections, removing everything else.
func (s *Segments) Keep(ids []int, sel []bool) error {
	kp, err := s.selection(ids, sel)
	if err != nil {
		return fmt.Errorf("strmnet.Keep: %w", err)
	}
	rm := make([]bool, len(kp))
	for i, v := range kp {
		rm[i] = !v
	}
	s.apply(rm)
	return nil
}

func (s *Segments) selection(ids []int, sel []bool) ([]bool, error) {
	n := s.N()
	o := make([]bool, n)
	if sel != nil {
		if len(sel) != n {
			return nil, fmt.Errorf("selection length %d, want %d", len(sel), n)
		}
		copy(o, sel)
	}
	for _, id := range ids {
		i, err := s.index(id)
		if err != nil {
			return nil, err
		}
		o[i] = true
	}
	return o, nil
}

// apply deletes the flagged segments, remapping all surviving indices by the
// count of removed entries below them and rebuilding child/parents with
// removed references dropped. All arrays mutate together; the basin cache is
// invalidated only when a removed id actually appears in it.
func (s *Segments) apply(rm []bool) {
	n := s.N()
	shift, nrm := make([]int, n), 0
	for i, v := range rm {
		shift[i] = nrm
		if v {
			nrm++
		}
	}
	if nrm == 0 {
		return
	}

	if s.basin != nil {
		drop := make(map[int32]struct{}, nrm)
		for i, v := range rm {
			if v && s.Child[i] < 0 {
				drop[int32(s.IDs[i])] = struct{}{}
			}
		}
		if len(drop) > 0 {
			for _, v := range s.basin.A {
				if _, ok := drop[v]; ok {
					s.basin = nil
					break
				}
			}
		}
	}

	nn := n - nrm
	ids, geoms, pix := make([]int, 0, nn), make([][]grid.Point, 0, nn), make([][]int, 0, nn)
	npx, child, parents := make([]float64, 0, nn), make([]int, 0, nn), make([][]int, 0, nn)
	for i := 0; i < n; i++ {
		if rm[i] {
			continue
		}
		ids = append(ids, s.IDs[i])
		geoms = append(geoms, s.Geoms[i])
		pix = append(pix, s.Pix[i])
		npx = append(npx, s.Npix[i])
		c := s.Child[i]
		if c < 0 || rm[c] {
			child = append(child, -1)
		} else {
			child = append(child, c-shift[c])
		}
		var ps []int
		for _, p := range s.Parents[i] {
			if !rm[p] {
				ps = append(ps, p-shift[p])
			}
		}
		parents = append(parents, ps)
	}

	s.IDs, s.Geoms, s.Pix, s.Npix, s.Child, s.Parents = ids, geoms, pix, npx, child, parents
	s.rebuildIndex()
	s.lg.Info().Int("removed", nrm).Int("remaining", nn).Msg("segments filtered")
}
