package indicators

import (
	"fmt"
	"sort"

	"github.com/ioyy900205/quantL/market"
)

// Kind identifies a signal column computation.
type Kind string

const (
	KindSMA Kind = "sma"
	KindEMA Kind = "ema"
	KindROC Kind = "roc"
	KindRSI Kind = "rsi"
	KindATR Kind = "atr"
)

// ColumnSpec describes one signal column to pre-compute for a series.
type ColumnSpec struct {
	Name   string
	Kind   Kind
	Period int
}

// Table holds pre-computed signal columns aligned index-for-index with one
// symbol's bar series. Built once before a run; read-only afterwards.
type Table struct {
	symbol string
	length int
	cols   map[string][]float64
}

// New constructs the streaming indicator for a column spec.
func (cs ColumnSpec) New() (Indicator, error) {
	if cs.Period <= 0 {
		return nil, fmt.Errorf("indicators: period must be positive, got %d", cs.Period)
	}
	switch cs.Kind {
	case KindSMA:
		return NewSMA(cs.Period), nil
	case KindEMA:
		return NewEMA(cs.Period), nil
	case KindROC:
		return NewROC(cs.Period), nil
	case KindRSI:
		return NewRSI(cs.Period), nil
	case KindATR:
		return NewATR(cs.Period), nil
	default:
		return nil, fmt.Errorf("indicators: unknown column kind %q", cs.Kind)
	}
}

// BuildTable computes the requested columns over the full series, one
// streaming pass per column. Each column value at index i is derived only
// from bars[0..i], so slicing a column at i never leaks future data.
func BuildTable(s *market.Series, specs ...ColumnSpec) (*Table, error) {
	t := &Table{
		symbol: s.Symbol(),
		length: s.Len(),
		cols:   make(map[string][]float64, len(specs)),
	}

	bars := s.Bars()
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("indicators: column spec without a name")
		}
		if _, dup := t.cols[spec.Name]; dup {
			return nil, fmt.Errorf("indicators: duplicate column %q", spec.Name)
		}
		ind, err := spec.New()
		if err != nil {
			return nil, fmt.Errorf("indicators: column %q: %w", spec.Name, err)
		}

		col := make([]float64, len(bars))
		for i, b := range bars {
			ind.Update(b)
			col[i] = ind.Value()
		}
		t.cols[spec.Name] = col
	}

	return t, nil
}

func (t *Table) Symbol() string { return t.symbol }

func (t *Table) Len() int { return t.length }

// Names returns the sorted column names.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.cols))
	for name := range t.cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column returns the full column by name. Shared backing array; read-only.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.cols[name]
	return col, ok
}

// Slice returns every column truncated to the first n values, the view a
// strategy sees at bar index n-1. Shared backing arrays; read-only.
func (t *Table) Slice(n int) map[string][]float64 {
	if n < 0 {
		n = 0
	}
	if n > t.length {
		n = t.length
	}
	out := make(map[string][]float64, len(t.cols))
	for name, col := range t.cols {
		out[name] = col[:n]
	}
	return out
}
