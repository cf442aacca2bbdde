package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioyy900205/quantL/market"
)

func mkBars(closes ...float64) []market.Bar {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Symbol: "TEST",
			Time:   start.AddDate(0, 0, i),
			Open:   c, High: c + 1, Low: c - 1, Close: c,
			Volume: 100,
		}
	}
	return bars
}

func TestSMA(t *testing.T) {
	bars := mkBars(1, 2, 3, 4, 5)

	v, err := SMA(bars, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	// Warmup: mean of what is available.
	v, err = SMA(bars[:2], 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, v, 1e-12)

	_, err = SMA(nil, 3)
	assert.Error(t, err)

	_, err = SMA(bars, 0)
	assert.Error(t, err)
}

func TestEMA(t *testing.T) {
	bars := mkBars(1, 2, 3, 4, 5)

	// Seeded with SMA(1,2,3)=2, then 4 and 5 applied with multiplier 0.5.
	v, err := EMA(bars, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	// Warmup equals SMA of available history.
	v, err = EMA(bars[:2], 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, v, 1e-12)
}

func TestROC(t *testing.T) {
	bars := mkBars(10, 11, 12, 13, 14)

	v, err := ROC(bars, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, v, 1e-12)

	// Warmup: earliest close is the base.
	v, err = ROC(bars[:3], 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, v, 1e-12)
}

func TestStreamingMatchesBatch(t *testing.T) {
	bars := mkBars(10, 12, 11, 13, 15, 14, 16, 18, 17, 19)

	sma := NewSMA(4)
	ema := NewEMA(4)

	for i, b := range bars {
		sma.Update(b)
		ema.Update(b)

		wantSMA, err := SMA(bars[:i+1], 4)
		require.NoError(t, err)
		assert.InDelta(t, wantSMA, sma.Value(), 1e-12, "sma at bar %d", i)

		wantEMA, err := EMA(bars[:i+1], 4)
		require.NoError(t, err)
		assert.InDelta(t, wantEMA, ema.Value(), 1e-12, "ema at bar %d", i)
	}

	assert.True(t, sma.Ready())
	assert.True(t, ema.Ready())

	sma.Reset()
	assert.False(t, sma.Ready())
}

func TestBuildTable(t *testing.T) {
	s, err := market.NewSeries("TEST", mkBars(1, 2, 3, 4, 5, 6))
	require.NoError(t, err)

	tbl, err := BuildTable(s,
		ColumnSpec{Name: "sma_fast", Kind: KindSMA, Period: 2},
		ColumnSpec{Name: "roc", Kind: KindROC, Period: 3},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"roc", "sma_fast"}, tbl.Names())

	col, ok := tbl.Column("sma_fast")
	require.True(t, ok)
	require.Len(t, col, 6)
	assert.InDelta(t, 1.0, col[0], 1e-12)
	assert.InDelta(t, 5.5, col[5], 1e-12)

	view := tbl.Slice(3)
	assert.Len(t, view["sma_fast"], 3)

	t.Run("unknown kind", func(t *testing.T) {
		_, err := BuildTable(s, ColumnSpec{Name: "x", Kind: "bogus", Period: 2})
		require.Error(t, err)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := BuildTable(s,
			ColumnSpec{Name: "x", Kind: KindSMA, Period: 2},
			ColumnSpec{Name: "x", Kind: KindEMA, Period: 3},
		)
		require.Error(t, err)
	})

	t.Run("bad period", func(t *testing.T) {
		_, err := BuildTable(s, ColumnSpec{Name: "x", Kind: KindSMA, Period: 0})
		require.Error(t, err)
	})
}

// Table columns are produced by the streaming indicators; every value must
// agree with the batch helpers computed over the same prefix.
func TestBuildTableMatchesBatch(t *testing.T) {
	bars := mkBars(10, 12, 11, 13, 15, 14, 16, 18, 17, 19)
	s, err := market.NewSeries("TEST", bars)
	require.NoError(t, err)

	tbl, err := BuildTable(s,
		ColumnSpec{Name: "sma", Kind: KindSMA, Period: 4},
		ColumnSpec{Name: "ema", Kind: KindEMA, Period: 4},
		ColumnSpec{Name: "roc", Kind: KindROC, Period: 3},
	)
	require.NoError(t, err)

	smaCol, _ := tbl.Column("sma")
	emaCol, _ := tbl.Column("ema")
	rocCol, _ := tbl.Column("roc")

	for i := range bars {
		prefix := bars[:i+1]

		want, err := SMA(prefix, 4)
		require.NoError(t, err)
		assert.InDelta(t, want, smaCol[i], 1e-12, "sma at bar %d", i)

		want, err = EMA(prefix, 4)
		require.NoError(t, err)
		assert.InDelta(t, want, emaCol[i], 1e-12, "ema at bar %d", i)

		want, err = ROC(prefix, 3)
		require.NoError(t, err)
		assert.InDelta(t, want, rocCol[i], 1e-12, "roc at bar %d", i)
	}
}

func TestStreamingROC(t *testing.T) {
	roc := NewROC(4)
	for _, b := range mkBars(10, 11, 12, 13, 14) {
		roc.Update(b)
	}
	assert.True(t, roc.Ready())
	assert.InDelta(t, 0.4, roc.Value(), 1e-12)

	roc.Reset()
	assert.False(t, roc.Ready())
	assert.InDelta(t, 0, roc.Value(), 1e-12)
}

func TestRSI(t *testing.T) {
	t.Run("all gains", func(t *testing.T) {
		rsi := NewRSI(3)
		for _, b := range mkBars(10, 11, 12, 13) {
			rsi.Update(b)
		}
		assert.True(t, rsi.Ready())
		assert.InDelta(t, 100, rsi.Value(), 1e-12)
	})

	t.Run("all losses", func(t *testing.T) {
		rsi := NewRSI(3)
		for _, b := range mkBars(10, 9, 8, 7) {
			rsi.Update(b)
		}
		assert.InDelta(t, 0, rsi.Value(), 1e-12)
	})

	t.Run("balanced", func(t *testing.T) {
		// Changes +1 and -1: average gain equals average loss.
		rsi := NewRSI(2)
		for _, b := range mkBars(10, 11, 10) {
			rsi.Update(b)
		}
		assert.InDelta(t, 50, rsi.Value(), 1e-12)
	})

	t.Run("neutral before data", func(t *testing.T) {
		assert.InDelta(t, 50, NewRSI(3).Value(), 1e-12)
	})
}

func TestATR(t *testing.T) {
	// mkBars sets High=close+1, Low=close-1.
	// TR(12 after 10) = max(2, |13-10|, |11-10|) = 3
	// TR(11 after 12) = max(2, |12-12|, |10-12|) = 2
	// TR(14 after 11) = max(2, |15-11|, |13-11|) = 4
	bars := mkBars(10, 12, 11, 14)

	atr := NewATR(2)
	atr.Update(bars[0])
	assert.False(t, atr.Ready())
	assert.InDelta(t, 0, atr.Value(), 1e-12)

	atr.Update(bars[1])
	assert.InDelta(t, 3, atr.Value(), 1e-12)

	atr.Update(bars[2])
	assert.True(t, atr.Ready())
	assert.InDelta(t, 2.5, atr.Value(), 1e-12)

	// Wilder smoothing: (2.5*1 + 4) / 2.
	atr.Update(bars[3])
	assert.InDelta(t, 3.25, atr.Value(), 1e-12)
}
