package strmnet

// IsTerminal reports, per segment, whether it has no downstream child.
func (s *Segments) IsTerminal() []bool {
	o := make([]bool, s.N())
	for i, c := range s.Child {
		o[i] = c < 0
	}
	return o
}

// TerminalIDs lists the ids of all terminal segments in array order.
func (s *Segments) TerminalIDs() []int {
	var o []int
	for i, c := range s.Child {
		if c < 0 {
			o = append(o, s.IDs[i])
		}
	}
	return o
}

// terminals lists terminal array indices in array order.
func (s *Segments) terminals() []int {
	var o []int
	for i, c := range s.Child {
		if c < 0 {
			o = append(o, i)
		}
	}
	return o
}

// terminus walks the child pointers to the terminal segment of i's local
// network. The graph is acyclic, so the walk is bounded by N.
func (s *Segments) terminus(i int) int {
	for steps := 0; steps <= s.N(); steps++ {
		if s.Child[i] < 0 {
			return i
		}
		i = s.Child[i]
	}
	panic(" strmnet: child graph contains a cycle")
}

// Termini returns, per segment, the id of its terminal segment.
func (s *Segments) Termini() []int {
	o := make([]int, s.N())
	for i := range s.IDs {
		o[i] = s.IDs[s.terminus(i)]
	}
	return o
}

// Outlets returns the outlet pixel of every segment as (row,col) pairs; with
// terminal set, the outlet of each segment's terminal segment instead.
func (s *Segments) Outlets(terminal bool) [][2]int {
	o := make([][2]int, s.N())
	for i := range s.IDs {
		j := i
		if terminal {
			j = s.terminus(i)
		}
		r, c := s.flow.GD.RowCol(s.outlet(j))
		o[i] = [2]int{r, c}
	}
	return o
}

// Ancestors returns the ids of all segments upstream of id.
func (s *Segments) Ancestors(id int) ([]int, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	return s.ids(s.climb(i, nil)), nil
}

// climb gathers all array indices upstream of i, excluding i, appending to
// out. Iterative: parent chains can be long.
func (s *Segments) climb(i int, out []int) []int {
	stack := append([]int(nil), s.Parents[i]...)
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, j)
		stack = append(stack, s.Parents[j]...)
	}
	return out
}

// Descendents returns the ids of all segments downstream of id.
func (s *Segments) Descendents(id int) ([]int, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	var o []int
	for c := s.Child[i]; c >= 0; c = s.Child[c] {
		o = append(o, c)
		if len(o) > s.N() {
			panic(" strmnet: child graph contains a cycle")
		}
	}
	return s.ids(o), nil
}

// Family returns the ids of every segment in id's local drainage network:
// the terminal segment and all of its ancestors, id included.
func (s *Segments) Family(id int) ([]int, error) {
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	t := s.terminus(i)
	return s.ids(s.climb(t, []int{t})), nil
}

// IsNested reports, per segment, whether its local network drains into a
// different, more downstream network's catchment: the terminal outlet pixel,
// looked up in the terminal-basin raster, resolves to another terminal id.
// Building the basin raster is triggered implicitly when no cache exists;
// call BuildTerminalBasins first for explicit control over worker count.
func (s *Segments) IsNested() ([]bool, error) {
	basin, err := s.TerminalBasins()
	if err != nil {
		return nil, err
	}
	o := make([]bool, s.N())
	for i := range s.IDs {
		t := s.terminus(i)
		o[i] = basin.A[s.outlet(t)] != int32(s.IDs[t])
	}
	return o, nil
}

func (s *Segments) ids(idx []int) []int {
	o := make([]int, len(idx))
	for k, i := range idx {
		o[k] = s.IDs[i]
	}
	return o
}
