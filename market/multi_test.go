package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeries(t *testing.T, symbol string, bars ...Bar) *Series {
	t.Helper()
	for i := range bars {
		bars[i].Symbol = ""
	}
	s, err := NewSeries(symbol, bars)
	require.NoError(t, err)
	return s
}

func TestMultiSeriesAxisUnion(t *testing.T) {
	a := mustSeries(t, "AAA", bar(0, 10), bar(1, 11), bar(3, 12))
	b := mustSeries(t, "BBB", bar(1, 20), bar(2, 21))

	m, err := NewMultiSeries(a, b)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA", "BBB"}, m.Symbols())

	axis := m.Axis()
	require.Len(t, axis, 4)
	for i := 1; i < len(axis); i++ {
		assert.True(t, axis[i-1].Before(axis[i]), "axis must be strictly increasing")
	}

	between := m.AxisBetween(day(1), day(2))
	assert.Equal(t, []time.Time{day(1), day(2)}, between)
}

func TestMultiSeriesDuplicateSymbol(t *testing.T) {
	a := mustSeries(t, "AAA", bar(0, 10))
	b := mustSeries(t, "AAA", bar(1, 11))
	_, err := NewMultiSeries(a, b)
	require.Error(t, err)
}

func TestCursorGapsAndWindows(t *testing.T) {
	// BBB has a gap at day 2.
	a := mustSeries(t, "AAA", bar(0, 10), bar(1, 11), bar(2, 12), bar(3, 13))
	b := mustSeries(t, "BBB", bar(0, 20), bar(1, 21), bar(3, 23))

	m, err := NewMultiSeries(a, b)
	require.NoError(t, err)

	cur, ok := m.Cursor("BBB")
	require.True(t, ok)

	_, ok = cur.LastClose()
	assert.False(t, ok, "no close before first bar")

	got, ok := cur.Advance(day(0))
	require.True(t, ok)
	assert.Equal(t, 20.0, got.Close)

	_, ok = cur.Advance(day(1))
	require.True(t, ok)

	// Gap: no bar at day 2, window and last close carry forward.
	_, ok = cur.Advance(day(2))
	assert.False(t, ok)
	assert.Len(t, cur.Window(), 2)
	last, ok := cur.LastClose()
	require.True(t, ok)
	assert.Equal(t, 21.0, last)

	got, ok = cur.Advance(day(3))
	require.True(t, ok)
	assert.Equal(t, 23.0, got.Close)
	assert.Len(t, cur.Window(), 3)
}

func TestCursorUnknownSymbol(t *testing.T) {
	a := mustSeries(t, "AAA", bar(0, 10))
	m, err := NewMultiSeries(a)
	require.NoError(t, err)

	_, ok := m.Cursor("ZZZ")
	assert.False(t, ok)
}
