// Package report prints paths, Monte Carlo summaries, markets and portfolios
// as terminal tables.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stochwalk/internal/market"
	"stochwalk/internal/portfolio"
	"stochwalk/internal/walk"
)

func NewDefaultTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsYellowWhiteOnBlack,
	}
	style.Color.Row = text.Colors{text.FgHiYellow, text.BgHiBlack}
	style.Color.RowAlternate = text.Colors{text.FgYellow, text.BgBlack}
	return &style
}

// Plain disables colors, for output that is not a terminal.
var Plain = false

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	if Plain {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(*NewDefaultTableStyle())
	}
	return t
}

func f4(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// Path prints the first head and last tail steps of p.
func Path(w io.Writer, title string, p *walk.Path, head, tail int) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Step", "Time", "Value"})

	n := p.Len()
	for i := 0; i < n; i++ {
		if i == head && head+tail < n {
			t.AppendSeparator()
			i = n - tail
		}
		t.AppendRow(table.Row{i, f4(p.Times[i]), f4(p.Values[i])})
	}
	if len(p.Jumps) > 0 {
		t.AppendFooter(table.Row{"Jumps", len(p.Jumps), f4(p.Jumps[len(p.Jumps)-1].Level)})
	}
	t.Render()
}

func Summary(w io.Writer, title string, s *walk.Summary) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRows([]table.Row{
		{"Paths", s.Count},
		{"Mean", f4(s.Mean)},
		{"StdDev", f4(s.StdDev)},
		{"Min", f4(s.Min)},
		{"P05", f4(s.P05)},
		{"Median", f4(s.Median)},
		{"P95", f4(s.P95)},
		{"Max", f4(s.Max)},
	})
	t.Render()

	h := newTable(w, "Terminal value histogram")
	h.AppendHeader(table.Row{"From", "To", "Count"})
	for i, c := range s.Counts {
		h.AppendRow(table.Row{f4(s.Dividers[i]), f4(s.Dividers[i+1]), int(c)})
	}
	h.Render()
}

// Market prints every symbol's first, current and last value and the index.
func Market(w io.Writer, m *market.Market, index *market.Index) error {
	t := newTable(w, fmt.Sprintf("Market at step %d", m.Clock()))
	t.AppendHeader(table.Row{"Symbol", "Weight", "First", "Current", "Last", "Jumps"})

	weights := map[string]float64{}
	if index != nil {
		for _, wt := range index.Weights {
			weights[wt.Symbol] += wt.Weight
		}
	}
	for _, symbol := range m.Symbols() {
		stock, err := m.Stock(symbol)
		if err != nil {
			return err
		}
		price, err := m.Price(symbol)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{
			symbol, weights[symbol],
			f4(stock.Path.At(0)), f4(price), f4(stock.Path.Terminal()),
			len(stock.Path.Jumps),
		})
	}
	if index != nil && len(index.Values) > 0 {
		last := index.Values[len(index.Values)-1]
		t.AppendFooter(table.Row{"INDEX", "", f4(index.Values[0]), f4(index.Values[min(m.Clock(), len(index.Values)-1)]), f4(last), ""})
	}
	t.Render()
	return nil
}

func Portfolio(w io.Writer, m *market.Market, p *portfolio.Portfolio) error {
	t := newTable(w, "Portfolio")
	t.AppendHeader(table.Row{"Type", "Symbol", "Quantity", "Entry", "Current", "PnL"})
	for _, pos := range p.Positions() {
		price, err := pos.CurrentPrice(m)
		if err != nil {
			return err
		}
		pnl := (price - pos.EntryPrice()) * pos.Quantity()
		t.AppendRow(table.Row{pos.Type(), pos.Symbol(), pos.Quantity(), f4(pos.EntryPrice()), f4(price), f4(pnl)})
	}

	value, err := p.Value()
	if err != nil {
		return err
	}
	t.AppendFooter(table.Row{"Cash", f4(p.Cash()), "Value", f4(value), "PnL", f4(value - p.InitialCapital())})
	t.Render()
	return nil
}
