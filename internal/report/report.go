// Package report renders comparison results.
//
// The plain format is the one-line "<p-value> <uplift>" contract that
// scripts depend on. The other formats carry the same numbers plus the
// per-arm distributions.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"abtest/internal/stats"
)

// Format selects a renderer.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatJSON     Format = "json"
	FormatPretty   Format = "pretty"
	FormatMarkdown Format = "markdown"
	FormatReport   Format = "report"
)

// Formats lists every supported format.
var Formats = []Format{FormatPlain, FormatJSON, FormatPretty, FormatMarkdown, FormatReport}

// Glamour styles accepted by the report format.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNoTTY = "notty"
)

// Themes lists every accepted theme.
var Themes = []string{ThemeAuto, ThemeDark, ThemeLight, ThemeNoTTY}

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format: %s (valid: %v)", s, Formats)
}

// Options controls rendering.
type Options struct {
	Format Format
	// Precision is the number of digits after the decimal point; -1 picks
	// the shortest representation that round-trips.
	Precision int
	Theme     string
}

// Render writes c to w in the requested format.
func Render(w io.Writer, c stats.Comparison, opts Options) error {
	switch opts.Format {
	case FormatPlain, "":
		return renderPlain(w, c.Result, opts.Precision)
	case FormatJSON:
		return renderJSON(w, c)
	case FormatPretty:
		return renderPretty(w, c, opts.Precision)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(c, opts.Precision))
		return err
	case FormatReport:
		return renderReport(w, c, opts)
	default:
		return fmt.Errorf("invalid output format: %s (valid: %v)", opts.Format, Formats)
	}
}

func renderPlain(w io.Writer, r stats.TestResult, prec int) error {
	_, err := fmt.Fprintf(w, "%s %s\n", FormatFloat(r.PValue, prec), FormatFloat(r.Uplift, prec))
	return err
}

// FormatFloat prints f in positional notation (never an exponent). NaN and
// infinities print as NaN, inf and -inf.
func FormatFloat(f float64, prec int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// FormatPercent prints f as a signed percentage with two decimals.
func FormatPercent(f float64) string {
	s := FormatFloat(f*100, 2)
	if f > 0 && !math.IsInf(f, 1) {
		s = "+" + s
	}
	return s + "%"
}

// inputs pairs the mode's field names with the observed values.
func inputs(exp stats.Experiment) [][2]string {
	spec, err := stats.LookupMode(string(exp.Mode()))
	if err != nil || exp.Observations == nil {
		return nil
	}
	values := exp.Observations.Values()
	out := make([][2]string, 0, len(values))
	for i, f := range spec.Fields {
		if i < len(values) {
			out = append(out, [2]string{f.Name, FormatFloat(values[i], -1)})
		}
	}
	return out
}
