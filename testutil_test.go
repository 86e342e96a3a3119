package strmnet

import (
	"math"

	"github.com/JonKing93/pfdf-sub001/grid"
)

func testGD(nr, nc int) *grid.Definition {
	return &grid.Definition{
		Eorig: 500000, Norig: 4800000,
		Cw: 10, Ch: 10,
		Nrow: nr, Ncol: nc,
		Proj: "EPSG:26917",
	}
}

func testFlow(gd *grid.Definition, codes []int8) *grid.Flow {
	return &grid.Flow{GD: gd, D8: codes, NoData: 0}
}

// column channel: every cell of col flows south (code 3); mask covers rows
// r0..r1 of that column
func columnFixture(nr, nc, col, r0, r1 int) (*grid.Flow, []bool) {
	gd := testGD(nr, nc)
	codes := make([]int8, gd.Ncells())
	mask := make([]bool, gd.Ncells())
	for r := 0; r < nr; r++ {
		codes[gd.CellID(r, col)] = 3
		if r >= r0 && r <= r1 {
			mask[gd.CellID(r, col)] = true
		}
	}
	return testFlow(gd, codes), mask
}

// threeNetFixture is a 7x7 grid with three local networks:
//   - main: column 2, rows 0..6, one terminal segment
//   - nested: (0,0),(1,0) flowing south, then unmasked cells (2,0),(2,1)
//     route its water east into the main channel
//   - lone: column 5, rows 0..6, independent
func threeNetFixture() (*grid.Flow, []bool) {
	gd := testGD(7, 7)
	codes := make([]int8, gd.Ncells())
	mask := make([]bool, gd.Ncells())
	for r := 0; r < 7; r++ {
		codes[gd.CellID(r, 2)] = 3
		mask[gd.CellID(r, 2)] = true
		codes[gd.CellID(r, 5)] = 3
		mask[gd.CellID(r, 5)] = true
	}
	codes[gd.CellID(0, 0)] = 3
	codes[gd.CellID(1, 0)] = 3
	mask[gd.CellID(0, 0)] = true
	mask[gd.CellID(1, 0)] = true
	codes[gd.CellID(2, 0)] = 1
	codes[gd.CellID(2, 1)] = 1
	return testFlow(gd, codes), mask
}

func flatDEM(gd *grid.Definition, v float64) *grid.Real {
	return grid.NewReal(gd, v, math.NaN())
}

func inf() float64 { return math.Inf(1) }
