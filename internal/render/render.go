// Package render writes pipeline reports and the market catalog to a
// terminal as tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"stockcast/internal/markets"
	"stockcast/pkg/model"
)

const dateLayout = "2006-01-02"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	buyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	sellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	holdStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6B7280"))
)

// Renderer writes human-readable output
type Renderer struct {
	out io.Writer
}

// New creates a renderer writing to w
func New(w io.Writer) *Renderer {
	return &Renderer{out: w}
}

// JSON writes v as indented JSON
func (r *Renderer) JSON(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// SignalLabel returns the display label for a signal
func SignalLabel(signal model.SignalType) string {
	switch signal {
	case model.SignalBuy:
		return "📈 Buy"
	case model.SignalSell:
		return "📉 Sell"
	default:
		return "🤷 Hold"
	}
}

func styledSignal(signal model.SignalType) string {
	label := SignalLabel(signal)
	switch signal {
	case model.SignalBuy:
		return buyStyle.Render(label)
	case model.SignalSell:
		return sellStyle.Render(label)
	default:
		return holdStyle.Render(label)
	}
}

// Report writes the tail, trend, forecast and recommendation of a run
func (r *Renderer) Report(report *model.Report) error {
	fmt.Fprintln(r.out, titleStyle.Render(fmt.Sprintf("%s (%s) %s to %s",
		report.Stock.Symbol, report.Stock.Exchange,
		report.Range.Start.Format(dateLayout), report.Range.End.Format(dateLayout))))
	fmt.Fprintln(r.out)

	if !report.NoData {
		fmt.Fprintf(r.out, "Last %d of %d bars:\n", len(report.Tail), report.Bars)
		if err := r.bars(report.Tail); err != nil {
			return err
		}
		fmt.Fprintln(r.out)
	}

	for _, w := range report.Warnings {
		fmt.Fprintln(r.out, warningStyle.Render("! "+w))
	}

	if report.Trend != nil {
		fmt.Fprintf(r.out, "Trend: %+.4f per day over %d points (R² %.3f)\n",
			report.Trend.Slope, report.Trend.Points, report.Trend.R2)
	}

	if len(report.Forecast) > 0 {
		fmt.Fprintf(r.out, "\nForecast (%d business days):\n", len(report.Forecast))
		if err := r.forecast(report.Forecast); err != nil {
			return err
		}
	}

	if rec := report.Recommendation; rec != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Recommendation: %s\n", styledSignal(rec.Signal))
		fmt.Fprintf(r.out, "  Recent average:    %s\n", rec.RecentAvgDisplay)
		fmt.Fprintf(r.out, "  Predicted average: %s\n", rec.PredictedAvgDisplay)
	}
	return nil
}

func (r *Renderer) bars(bars []model.Bar) error {
	table := tablewriter.NewTable(r.out,
		tablewriter.WithHeader([]string{"Date", "Open", "High", "Low", "Close", "Volume"}),
	)
	for _, b := range bars {
		table.Append([]string{
			b.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", b.Open),
			fmt.Sprintf("%.2f", b.High),
			fmt.Sprintf("%.2f", b.Low),
			fmt.Sprintf("%.2f", b.Close),
			fmt.Sprintf("%d", b.Volume),
		})
	}
	return table.Render()
}

func (r *Renderer) forecast(points []model.ForecastPoint) error {
	table := tablewriter.NewTable(r.out,
		tablewriter.WithHeader([]string{"Date", "Predicted"}),
	)
	for _, p := range points {
		table.Append([]string{
			p.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", p.Price),
		})
	}
	return table.Render()
}

// Markets writes one row per market with its candidate symbols
func (r *Renderer) Markets(list []markets.Market) error {
	table := tablewriter.NewTable(r.out,
		tablewriter.WithHeader([]string{"Code", "Name", "Suffix", "Symbols"}),
	)
	for _, m := range list {
		code := m.Code
		if m.Home {
			code += " *"
		}
		suffix := m.Suffix
		if suffix == "" {
			suffix = "-"
		}
		table.Append([]string{code, m.Name, suffix, strings.Join(m.Symbols, ", ")})
	}
	return table.Render()
}
