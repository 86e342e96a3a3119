package grid

// D8 flow codes, clockwise from east:
//	1=E, 2=SE, 3=S, 4=SW, 5=W, 6=NW, 7=N, 8=NE
// index 0 is unused so codes index the offset tables directly.
var (
	drow = [9]int{0, 0, 1, 1, 1, 0, -1, -1, -1}
	dcol = [9]int{0, 1, 1, 0, -1, -1, -1, 0, 1}
)

// D8Offset returns the (drow,dcol) step for a flow code; ok is false for
// anything outside 1..8.
func D8Offset(code int8) (dr, dc int, ok bool) {
	if code < 1 || code > 8 {
		return 0, 0, false
	}
	return drow[code], dcol[code], true
}

// D8Rotate steps a flow code around the 8-direction cycle. Negative steps
// rotate the other way.
func D8Rotate(code int8, steps int) int8 {
	s := (int(code) - 1 + steps) % 8
	if s < 0 {
		s += 8
	}
	return int8(s + 1)
}

// Flow is an immutable D8 flow-direction raster. It is safe to share by
// reference across any number of readers, including parallel workers.
type Flow struct {
	GD     *Definition
	D8     []int8
	NoData int8 // conventionally 0 or -1; anything outside 1..8 routes nowhere
}

func (f *Flow) IsNoData(cid int) bool {
	c := f.D8[cid]
	return c < 1 || c > 8
}

// Downstream resolves the receiving cell id of cid. ok is false when the
// flow code is NoData or the receiver falls off the grid.
func (f *Flow) Downstream(cid int) (int, bool) {
	dr, dc, ok := D8Offset(f.D8[cid])
	if !ok {
		return -1, false
	}
	r, c := f.GD.RowCol(cid)
	r, c = r+dr, c+dc
	if !f.GD.InBounds(r, c) {
		return -1, false
	}
	return f.GD.CellID(r, c), true
}
