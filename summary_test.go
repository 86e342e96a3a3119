package strmnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryStats(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	// each segment sees 1..n over its owned pixels
	values := flatDEM(flow.GD, 0)
	for i := range values.A {
		values.A[i] = math.NaN()
	}
	for _, pix := range s.Pix {
		for j, c := range pix {
			values.A[c] = float64(j + 1)
		}
	}

	for name, want := range map[string][]float64{
		"count": {2, 2, 3},
		"sum":   {3, 3, 6},
		"mean":  {1.5, 1.5, 2},
		"min":   {1, 1, 1},
		"max":   {2, 2, 3},
		"std":   {math.Sqrt2 / 2, math.Sqrt2 / 2, 1},
		"var":   {.5, .5, 1},
	} {
		got, err := s.Summary(name, values)
		require.NoError(t, err, name)
		require.InDeltaSlice(t, want, got, 1e-12, name)
	}

	got, err := s.Summary("median", values)
	require.NoError(t, err)
	require.Equal(t, 2., got[2]) // odd-count segment
}

func TestSummaryNoData(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	values := flatDEM(flow.GD, 3)
	for _, c := range s.Pix[0] {
		values.A[c] = math.NaN()
	}
	values.A[s.Pix[2][0]] = math.NaN()

	cnt, err := s.Summary("count", values)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 2, 2}, cnt)

	mean, err := s.Summary("mean", values)
	require.NoError(t, err)
	require.True(t, math.IsNaN(mean[0])) // all pixels missing
	require.Equal(t, 3., mean[1])
	require.Equal(t, 3., mean[2])
}

func TestSummaryValidation(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	_, err = s.Summary("mode", flatDEM(flow.GD, 1))
	require.ErrorIs(t, err, ErrUnknownStat)
	_, err = s.Summary("mean", flatDEM(testGD(3, 3), 1))
	require.ErrorIs(t, err, ErrConform)
	_, err = s.BasinSummary("p95", flatDEM(flow.GD, 1))
	require.ErrorIs(t, err, ErrUnknownStat)
}

func TestBasinSummary(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)
	require.Equal(t, []int{3}, s.TerminalIDs())

	// 1..7 over the basin (the seven channel cells), NaN elsewhere
	values := flatDEM(flow.GD, 0)
	for i := range values.A {
		values.A[i] = math.NaN()
	}
	v := 1.
	for _, pix := range s.Pix {
		for _, c := range pix {
			values.A[c] = v
			v++
		}
	}

	for name, want := range map[string]float64{
		"sum":    28,
		"mean":   4,
		"count":  7,
		"min":    1,
		"max":    7,
		"median": 4,
	} {
		got, err := s.BasinSummary(name, values)
		require.NoError(t, err, name)
		require.Len(t, got, 1, name)
		require.InDelta(t, want, got[0], 1e-12, name)
	}
}

func TestBasinSummaryAllNoData(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	values := flatDEM(flow.GD, 0)
	for i := range values.A {
		values.A[i] = math.NaN()
	}
	for _, name := range []string{"mean", "sum", "max"} {
		got, err := s.BasinSummary(name, values)
		require.NoError(t, err, name)
		require.True(t, math.IsNaN(got[0]), name)
	}
}

func TestAccumulationAdapter(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	// nil weights count pixels; it is how Npix was derived
	acc, err := s.Accumulation(nil, nil, false, false)
	require.NoError(t, err)
	require.Equal(t, s.Npix, acc)

	// terminal sampling rakes every segment to its terminus outlet
	acc, err = s.Accumulation(nil, nil, false, true)
	require.NoError(t, err)
	require.Equal(t, []float64{7, 7, 7}, acc)

	// a NoData weight upstream of an outlet poisons the sample when not omitted
	w := flatDEM(flow.GD, 1)
	w.A[flow.GD.CellID(0, 2)] = math.NaN()
	acc, err = s.Accumulation(w, nil, false, false)
	require.NoError(t, err)
	require.True(t, math.IsNaN(acc[2]))
	acc, err = s.Accumulation(w, nil, true, false)
	require.NoError(t, err)
	require.Equal(t, 6., acc[2])

	_, err = s.Accumulation(flatDEM(testGD(2, 2), 1), nil, false, false)
	require.ErrorIs(t, err, ErrConform)
}

func TestMaskRatio(t *testing.T) {
	flow, mask := yFixture()
	s, err := New(flow, mask, inf())
	require.NoError(t, err)

	full, err := s.MaskRatio(mask)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1}, full)

	part := make([]bool, len(mask))
	part[flow.GD.CellID(0, 2)] = true
	got, err := s.MaskRatio(part)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{.5, 0, 1. / 7}, got, 1e-12)
}
