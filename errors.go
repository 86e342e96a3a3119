package strmnet

import "errors"

// Configuration errors are reported at the API boundary before any expensive
// work. Data-quality conditions (NoData pixels, empty windows) are never
// errors; they propagate as NaN.
var (
	ErrNoCRS        = errors.New("flow raster must carry a CRS and affine transform")
	ErrMaxLength    = errors.New("max length is shorter than one pixel diagonal")
	ErrConform      = errors.New("raster does not conform to the flow raster grid")
	ErrUnknownID    = errors.New("unknown segment id")
	ErrUnknownStat  = errors.New("unrecognized statistic")
	ErrRasterTooBig = errors.New("basin raster too large for memory: use a coarser resolution or a smaller bounding region")
)
