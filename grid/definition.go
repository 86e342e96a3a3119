package grid

import (
	"fmt"
	"math"
)

// Definition describes a uniform raster grid: shape, the affine transform
// anchored at the upper-left corner, and a CRS identifier. Cell ids are
// row-major (cid = row*Ncol + col), row 0 at the top (northmost).
type Definition struct {
	Eorig, Norig float64 // upper-left corner easting/northing
	Cw, Ch       float64 // cell width (x) and height (y), both > 0
	Nrow, Ncol   int
	Proj         string // CRS identifier, e.g. "EPSG:26917"; empty means no CRS
}

func (gd *Definition) Ncells() int { return gd.Nrow * gd.Ncol }

func (gd *Definition) HasCRS() bool { return gd != nil && len(gd.Proj) > 0 }

// HasTransform reports whether the affine transform is usable.
func (gd *Definition) HasTransform() bool {
	return gd != nil && gd.Cw > 0 && gd.Ch > 0 && gd.Nrow > 0 && gd.Ncol > 0
}

func (gd *Definition) CellID(row, col int) int { return row*gd.Ncol + col }

func (gd *Definition) RowCol(cid int) (int, int) { return cid / gd.Ncol, cid % gd.Ncol }

func (gd *Definition) InBounds(row, col int) bool {
	return row >= 0 && row < gd.Nrow && col >= 0 && col < gd.Ncol
}

// Centroid returns the coordinate of a cell centre. The cell need not lie
// within the grid; out-of-bound (row,col) extrapolate the transform.
func (gd *Definition) Centroid(row, col int) (x, y float64) {
	x = gd.Eorig + (float64(col)+.5)*gd.Cw
	y = gd.Norig - (float64(row)+.5)*gd.Ch
	return
}

// PointToCell inverts the affine transform, rounding to the nearest cell.
// The returned (row,col) may lie outside the grid; see InBounds.
func (gd *Definition) PointToCell(x, y float64) (row, col int) {
	col = int(math.Round((x-gd.Eorig)/gd.Cw - .5))
	row = int(math.Round((gd.Norig-y)/gd.Ch - .5))
	return
}

func (gd *Definition) CellArea() float64 { return gd.Cw * gd.Ch }

// Diagonal is the length of one cell diagonal, the shortest resolvable
// along-flow step length.
func (gd *Definition) Diagonal() float64 { return math.Hypot(gd.Cw, gd.Ch) }

// Conforms checks that two grids share shape, transform and CRS, as required
// before any externally supplied raster may be summarized against this grid.
func (gd *Definition) Conforms(o *Definition) error {
	if o == nil {
		return fmt.Errorf("grid.Conforms: nil definition")
	}
	if gd.Nrow != o.Nrow || gd.Ncol != o.Ncol {
		return fmt.Errorf("grid.Conforms: shape mismatch (%d,%d) vs (%d,%d)", gd.Nrow, gd.Ncol, o.Nrow, o.Ncol)
	}
	if gd.Eorig != o.Eorig || gd.Norig != o.Norig || gd.Cw != o.Cw || gd.Ch != o.Ch {
		return fmt.Errorf("grid.Conforms: transform mismatch")
	}
	if gd.Proj != o.Proj {
		return fmt.Errorf("grid.Conforms: CRS mismatch %q vs %q", gd.Proj, o.Proj)
	}
	return nil
}
