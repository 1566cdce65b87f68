package report

import (
	"fmt"
	"io"
	"strings"

	"abtest/internal/stats"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Palette shared with the interactive form.
var (
	ColorPrimary = lipgloss.Color("#101F38")
	ColorAccent  = lipgloss.Color("#8BC34A")
	ColorMuted   = lipgloss.Color("#6b7280")
	ColorBorder  = lipgloss.Color("#2a3850")
	ColorUp      = lipgloss.Color("#8BC34A")
	ColorDown    = lipgloss.Color("#e53935")
	ColorWarn    = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles of the pretty format.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Up     lipgloss.Style
	Down   lipgloss.Style
	Warn   lipgloss.Style
	Border lipgloss.Style
}

// NewStyles builds styles bound to a renderer, so colour support follows
// the destination writer rather than os.Stdout.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:  r.NewStyle().Bold(true).Foreground(ColorAccent),
		Header: r.NewStyle().Bold(true).Padding(0, 1),
		Cell:   r.NewStyle().Padding(0, 1),
		Label:  r.NewStyle().Foreground(ColorMuted).Width(10),
		Value:  r.NewStyle().Bold(true),
		Up:     r.NewStyle().Foreground(ColorUp).Bold(true),
		Down:   r.NewStyle().Foreground(ColorDown).Bold(true),
		Warn:   r.NewStyle().Foreground(ColorWarn),
		Border: r.NewStyle().Foreground(ColorBorder),
	}
}

// Pretty renders a comparison as a bordered table followed by the test
// statistics.
func Pretty(styles Styles, c stats.Comparison, prec int) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("A/B test (%s)", c.Experiment.Mode())))
	sb.WriteString("\n")

	if in := inputs(c.Experiment); len(in) > 0 {
		parts := make([]string, len(in))
		for i, kv := range in {
			parts[i] = kv[0] + "=" + kv[1]
		}
		sb.WriteString(styles.Label.UnsetWidth().Render(strings.Join(parts, "  ")))
		sb.WriteString("\n")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers("arm", "n", "mean", "std err").
		Rows(
			[]string{"A", FormatFloat(c.Experiment.N1, -1), FormatFloat(c.A.Mean, prec), FormatFloat(c.A.StdDev, prec)},
			[]string{"B", FormatFloat(c.Experiment.N2, -1), FormatFloat(c.B.Mean, prec), FormatFloat(c.B.StdDev, prec)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})
	sb.WriteString(t.String())
	sb.WriteString("\n")

	line := func(label, value string, style lipgloss.Style) {
		sb.WriteString(styles.Label.Render(label))
		sb.WriteString(style.Render(value))
		sb.WriteString("\n")
	}
	line("z", FormatFloat(c.Z, prec), styles.Value)
	line("p-value", FormatFloat(c.Result.PValue, prec), styles.Value)

	upliftStyle := styles.Value
	switch {
	case c.Result.Uplift > 0:
		upliftStyle = styles.Up
	case c.Result.Uplift < 0:
		upliftStyle = styles.Down
	}
	line("uplift", fmt.Sprintf("%s (%s)", FormatFloat(c.Result.Uplift, prec), FormatPercent(c.Result.Uplift)), upliftStyle)

	if c.Result.Degenerate() {
		sb.WriteString(styles.Warn.Render("degenerate input: result contains NaN or infinity"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderPretty(w io.Writer, c stats.Comparison, prec int) error {
	_, err := io.WriteString(w, Pretty(NewStyles(lipgloss.NewRenderer(w)), c, prec))
	return err
}
