package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func bar(n int, close float64) Bar {
	return Bar{Time: day(n), Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 1000}
}

func TestNewSeriesValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := NewSeries("AAPL", []Bar{bar(0, 10), bar(1, 11), bar(2, 12)})
		require.NoError(t, err)
		assert.Equal(t, "AAPL", s.Symbol())
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, "AAPL", s.Bar(0).Symbol)
	})

	t.Run("duplicate timestamp", func(t *testing.T) {
		_, err := NewSeries("AAPL", []Bar{bar(0, 10), bar(0, 11)})
		require.Error(t, err)
		var ie *IntegrityError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "AAPL", ie.Symbol)
		assert.Contains(t, ie.Reason, "duplicate")
	})

	t.Run("out of order", func(t *testing.T) {
		_, err := NewSeries("AAPL", []Bar{bar(2, 10), bar(1, 11)})
		var ie *IntegrityError
		require.ErrorAs(t, err, &ie)
		assert.Contains(t, ie.Reason, "out of order")
	})

	t.Run("high below low", func(t *testing.T) {
		b := bar(0, 10)
		b.High = 5
		b.Low = 8
		_, err := NewSeries("AAPL", []Bar{b})
		require.Error(t, err)
	})

	t.Run("wrong symbol on bar", func(t *testing.T) {
		b := bar(0, 10)
		b.Symbol = "MSFT"
		_, err := NewSeries("AAPL", []Bar{b})
		require.Error(t, err)
	})
}

func TestSeriesInputNotAliased(t *testing.T) {
	in := []Bar{bar(0, 10), bar(1, 11)}
	s, err := NewSeries("AAPL", in)
	require.NoError(t, err)

	in[0].Close = 999
	assert.Equal(t, 10.0, s.Bar(0).Close)
}

func TestSeriesUpto(t *testing.T) {
	s, err := NewSeries("AAPL", []Bar{bar(0, 10), bar(2, 11), bar(4, 12)})
	require.NoError(t, err)

	assert.Len(t, s.Upto(day(2)), 2)
	assert.Len(t, s.Upto(day(3)), 2)
	assert.Len(t, s.Upto(day(4)), 3)
	assert.Empty(t, s.Upto(day(-1)))

	idx, ok := s.IndexAt(day(2))
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = s.IndexAt(day(3))
	assert.False(t, ok)
}
