package journal

import (
	"bytes"
	"text/template"
)

var reportFuncs = template.FuncMap{
	"pct": func(x float64) float64 { return x * 100 },
}

// RenderText formats a stored run as a plain-text report.
func (r RunRecord) RenderText() (string, error) {
	t, err := template.New("run").Funcs(reportFuncs).Parse(runTemplate)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const runTemplate = `BACKTEST RUN {{.RunID}}
  strategy:   {{.Strategy}}
  symbols:    {{.Symbols}}
  range:      {{.Start.Format "2006-01-02"}} .. {{.End.Format "2006-01-02"}} ({{.Steps}} steps)
  created:    {{.Created.Format "2006-01-02 15:04:05"}}

CAPITAL
  initial:    {{printf "%.2f" .InitialCapital}}
  final:      {{printf "%.2f" .FinalEquity}}

PERFORMANCE
  total return:     {{printf "%.2f" (pct .TotalReturn)}}%
  annualized:       {{printf "%.2f" (pct .AnnualizedReturn)}}%
  volatility:       {{printf "%.2f" (pct .AnnualizedVolatility)}}%
  sharpe:           {{printf "%.2f" .Sharpe}}
  max drawdown:     {{printf "%.2f" (pct .MaxDrawdown)}}%

TRADES
  closing trades:   {{.Trades}}
  win rate:         {{printf "%.2f" (pct .WinRate)}}%
`
