package strmnet

// buildConnectivity derives the child/parents index relations from segment
// endpoints: the parents of a segment are all segments whose outlet
// coordinate lands on its start coordinate. Matching is done on the cell ids
// of geometry endpoints resolved through the affine transform, which is exact
// for delineator output (vertices land on cell centres). The start coordinate
// is matched rather than the first owned pixel: the two differ by one cell
// when a split credits the shared pixel upstream.
func (s *Segments) buildConnectivity() {
	gd := s.flow.GD
	n := s.N()
	s.Child = make([]int, n)
	s.Parents = make([][]int, n)

	start := make(map[int]int, n) // start-coordinate cell → segment index
	for i, g := range s.Geoms {
		r, c := gd.PointToCell(g[0].X, g[0].Y)
		start[gd.CellID(r, c)] = i
	}

	for i, g := range s.Geoms {
		s.Child[i] = -1
		end := g[len(g)-1]
		r, c := gd.PointToCell(end.X, end.Y)
		if !gd.InBounds(r, c) {
			continue // network outlet, continuation point off the grid
		}
		if j, ok := start[gd.CellID(r, c)]; ok && j != i {
			s.Child[i] = j
			s.Parents[j] = append(s.Parents[j], i)
		}
	}
}
