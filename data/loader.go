// Package data acquires and caches bar tables for the engine. The engine
// itself only ever sees fully materialized market.Series values; everything
// rate-limited or file-shaped lives here.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ioyy900205/quantL/market"
)

// Loader reads and writes bar tables as CSV files, one file per symbol.
// Expected column order: timestamp,open,high,low,close,volume. Timestamps
// are RFC3339 or unix seconds/milliseconds; a header row is optional.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

// LoadCSV reads one symbol's bars from path. Rows are sorted by timestamp
// before series validation, so files with shuffled rows still load; files
// with duplicate timestamps fail with the series' integrity error.
func (l *Loader) LoadCSV(path, symbol string) (*market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("data: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []market.Bar
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("data: read %s: %w", path, err)
		}
		line++

		if len(record) < 6 {
			return nil, fmt.Errorf("data: %s line %d: want 6 columns, got %d", path, line, len(record))
		}
		if line == 1 && looksLikeHeader(record) {
			continue
		}

		bar, err := parseRecord(record, symbol)
		if err != nil {
			return nil, fmt.Errorf("data: %s line %d: %w", path, line, err)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return market.NewSeries(symbol, bars)
}

// LoadDir loads every *.csv file in dir into one MultiSeries, taking the
// symbol from the file name.
func (l *Loader) LoadDir(dir string) (*market.MultiSeries, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("data: no csv files in %s", dir)
	}
	sort.Strings(paths)

	series := make([]*market.Series, 0, len(paths))
	for _, path := range paths {
		symbol := strings.TrimSuffix(filepath.Base(path), ".csv")
		s, err := l.LoadCSV(path, symbol)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return market.NewMultiSeries(series...)
}

// WriteCSV stores a series at path in the loader's format, header included.
func (l *Loader) WriteCSV(s *market.Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("data: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, b := range s.Bars() {
		w.Write([]string{
			b.Time.Format(time.RFC3339),
			fmtFloat(b.Open),
			fmtFloat(b.High),
			fmtFloat(b.Low),
			fmtFloat(b.Close),
			fmtFloat(b.Volume),
		})
	}
	w.Flush()
	return w.Error()
}

func looksLikeHeader(record []string) bool {
	_, err := strconv.ParseFloat(record[1], 64)
	return err != nil
}

func parseRecord(record []string, symbol string) (market.Bar, error) {
	ts, err := parseTimestamp(record[0])
	if err != nil {
		return market.Bar{}, err
	}

	vals := make([]float64, 5)
	names := []string{"open", "high", "low", "close", "volume"}
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("invalid %s %q", names[i], record[i+1])
		}
		vals[i] = v
	}

	return market.Bar{
		Symbol: symbol,
		Time:   ts,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Millisecond timestamps are 13 digits for recent dates.
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
