package strmnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentRaster(t *testing.T) {
	flow, mask := threeNetFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	sr := s.SegmentRaster()
	stamped := 0
	for i, pix := range s.Pix {
		for _, c := range pix {
			require.Equal(t, int32(s.IDs[i]), sr.A[c])
			stamped++
		}
	}
	zeros := 0
	for _, v := range sr.A {
		if v == 0 {
			zeros++
		}
	}
	require.Equal(t, len(sr.A), stamped+zeros)
}

func TestLengthsAreasSinuosity(t *testing.T) {
	flow, mask := columnFixture(7, 7, 3, 0, 6)
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	// seven 10 m pixels plus the continuation vertex
	require.Equal(t, []float64{70}, s.Lengths())
	require.Equal(t, []float64{700}, s.Areas())
	require.InDelta(t, 1, s.Sinuosity()[0], 1e-12) // straight channel
}

func TestReliefGradient(t *testing.T) {
	flow, mask := columnFixture(7, 7, 3, 0, 6)
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	gd := flow.GD
	dem := flatDEM(gd, 0)
	for r := 0; r < 7; r++ {
		dem.A[gd.CellID(r, 3)] = float64(70 - 10*r) // 10 m drop per pixel
	}

	rl, err := s.Relief(dem)
	require.NoError(t, err)
	require.Equal(t, []float64{60}, rl)

	gr, err := s.Gradient(dem)
	require.NoError(t, err)
	require.InDelta(t, 60./70, gr[0], 1e-12)

	dem.A[gd.CellID(0, 3)] = math.NaN()
	gr, err = s.Gradient(dem)
	require.NoError(t, err)
	require.True(t, math.IsNaN(gr[0]))
	rl, err = s.Relief(dem) // max/min omit the NoData pixel
	require.NoError(t, err)
	require.Equal(t, []float64{50}, rl)

	_, err = s.Gradient(flatDEM(testGD(2, 2), 0))
	require.ErrorIs(t, err, ErrConform)
}

func TestOutletsLatLon(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	// EPSG:26917 is UTM zone 17N
	ll, err := s.OutletsLatLon(17, true, false)
	require.NoError(t, err)
	require.Len(t, ll, 3)
	for _, p := range ll {
		require.InDelta(t, 43.3, p[0], .5) // central Ontario-ish
		require.InDelta(t, -81, p[1], .5)
	}

	term, err := s.OutletsLatLon(17, true, true)
	require.NoError(t, err)
	require.Equal(t, term[2], term[0])
	require.Equal(t, term[2], term[1])
}
