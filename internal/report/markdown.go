package report

import (
	"fmt"
	"io"
	"strings"

	"abtest/internal/stats"

	"github.com/charmbracelet/glamour"
)

// Markdown returns the comparison as a markdown document.
func Markdown(c stats.Comparison, prec int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# A/B test: %s\n\n", c.Experiment.Mode())

	if in := inputs(c.Experiment); len(in) > 0 {
		parts := make([]string, len(in))
		for i, kv := range in {
			parts[i] = fmt.Sprintf("`%s=%s`", kv[0], kv[1])
		}
		fmt.Fprintf(&sb, "Inputs: %s\n\n", strings.Join(parts, ", "))
	}

	sb.WriteString("| arm | n | mean | std err |\n")
	sb.WriteString("|-----|---|------|---------|\n")
	fmt.Fprintf(&sb, "| A | %s | %s | %s |\n",
		FormatFloat(c.Experiment.N1, -1), FormatFloat(c.A.Mean, prec), FormatFloat(c.A.StdDev, prec))
	fmt.Fprintf(&sb, "| B | %s | %s | %s |\n\n",
		FormatFloat(c.Experiment.N2, -1), FormatFloat(c.B.Mean, prec), FormatFloat(c.B.StdDev, prec))

	fmt.Fprintf(&sb, "- **z**: %s\n", FormatFloat(c.Z, prec))
	fmt.Fprintf(&sb, "- **p-value** (Φ(z)): %s\n", FormatFloat(c.Result.PValue, prec))
	fmt.Fprintf(&sb, "- **uplift**: %s (%s)\n", FormatFloat(c.Result.Uplift, prec), FormatPercent(c.Result.Uplift))

	if c.Result.Degenerate() {
		sb.WriteString("\n> Degenerate input: the result contains NaN or infinity.\n")
	}
	return sb.String()
}

func newTermRenderer(theme string) (*glamour.TermRenderer, error) {
	style := glamour.WithAutoStyle()
	if theme != "" && theme != ThemeAuto {
		style = glamour.WithStandardStyle(theme)
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
}

func renderReport(w io.Writer, c stats.Comparison, opts Options) error {
	r, err := newTermRenderer(opts.Theme)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(Markdown(c, opts.Precision))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
