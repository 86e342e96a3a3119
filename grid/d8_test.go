package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestD8Offset(t *testing.T) {
	// clockwise from east
	want := map[int8][2]int{
		1: {0, 1}, 2: {1, 1}, 3: {1, 0}, 4: {1, -1},
		5: {0, -1}, 6: {-1, -1}, 7: {-1, 0}, 8: {-1, 1},
	}
	for code, rc := range want {
		dr, dc, ok := D8Offset(code)
		require.True(t, ok)
		require.Equal(t, rc, [2]int{dr, dc}, "code %d", code)
	}
	for _, code := range []int8{0, 9, -1} {
		_, _, ok := D8Offset(code)
		require.False(t, ok)
	}
}

func TestD8Rotate(t *testing.T) {
	require.Equal(t, int8(4), D8Rotate(1, 3))
	require.Equal(t, int8(6), D8Rotate(1, -3))
	require.Equal(t, int8(1), D8Rotate(1, 8))
	require.Equal(t, int8(2), D8Rotate(7, 3))
	for code := int8(1); code <= 8; code++ {
		require.Equal(t, code, D8Rotate(D8Rotate(code, 3), -3))
	}
}

func TestDownstream(t *testing.T) {
	gd := &Definition{Cw: 1, Ch: 1, Nrow: 3, Ncol: 3}
	d8 := make([]int8, 9)
	d8[gd.CellID(1, 1)] = 3 // south
	d8[gd.CellID(2, 1)] = 3 // south, off grid
	f := &Flow{GD: gd, D8: d8}

	to, ok := f.Downstream(gd.CellID(1, 1))
	require.True(t, ok)
	require.Equal(t, gd.CellID(2, 1), to)

	_, ok = f.Downstream(gd.CellID(2, 1))
	require.False(t, ok)
	_, ok = f.Downstream(gd.CellID(0, 0)) // NoData code
	require.False(t, ok)
	require.True(t, f.IsNoData(gd.CellID(0, 0)))
	require.False(t, f.IsNoData(gd.CellID(1, 1)))
}
