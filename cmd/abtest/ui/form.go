// Package ui provides the interactive experiment form of the abtest CLI.
package ui

import (
	"fmt"
	"strings"

	"abtest/internal/report"
	"abtest/internal/stats"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var sampleSizeFields = []stats.Field{
	{Name: "n1", Help: "sample size of A"},
	{Name: "n2", Help: "sample size of B"},
}

// Options configures the form.
type Options struct {
	Mode      stats.Mode
	Strict    bool
	Precision int
}

// FormModel collects one experiment and shows its result.
type FormModel struct {
	mode   stats.Mode
	fields []stats.Field
	inputs []textinput.Model
	focus  int

	strict    bool
	precision int

	comparison *stats.Comparison
	err        error
	quitting   bool

	styles report.Styles
	hint   lipgloss.Style
	errSty lipgloss.Style
}

// NewFormModel creates a form for opts.Mode, defaulting to binomial.
func NewFormModel(opts Options) FormModel {
	mode := opts.Mode
	if _, err := stats.LookupMode(string(mode)); err != nil {
		mode = stats.ModeBinomial
	}
	r := lipgloss.DefaultRenderer()
	m := FormModel{
		strict:    opts.Strict,
		precision: opts.Precision,
		styles:    report.NewStyles(r),
		hint:      r.NewStyle().Foreground(report.ColorMuted),
		errSty:    r.NewStyle().Foreground(report.ColorDown).Bold(true),
	}
	m.setMode(mode, nil)
	return m
}

// setMode rebuilds the inputs for mode, carrying over values by position
// for the shared sample sizes.
func (m *FormModel) setMode(mode stats.Mode, carry []string) {
	spec, _ := stats.LookupMode(string(mode))
	m.mode = mode
	m.fields = append(append([]stats.Field{}, sampleSizeFields...), spec.Fields...)
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Placeholder = f.Help
		ti.CharLimit = 32
		ti.Width = 24
		ti.Prompt = ""
		if i < len(carry) && i < len(sampleSizeFields) {
			ti.SetValue(carry[i])
		}
		m.inputs[i] = ti
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.comparison = nil
	m.err = nil
}

// Init starts the cursor blinking.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+t":
			next := stats.ModeNormal
			if m.mode == stats.ModeNormal {
				next = stats.ModeBinomial
			}
			m.setMode(next, m.values())
			return m, nil
		case "tab", "down":
			m.move(1)
			return m, nil
		case "shift+tab", "up":
			m.move(-1)
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.move(1)
				return m, nil
			}
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) move(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m FormModel) values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

func (m *FormModel) submit() {
	m.comparison = nil
	v := m.values()
	exp, err := stats.ParseExperiment(m.mode, v[0], v[1], v[2:])
	if err == nil && m.strict {
		err = stats.Validate(exp)
	}
	if err != nil {
		m.err = err
		return
	}
	c, err := stats.Compare(exp)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.comparison = &c
}

// Result returns the last successful comparison.
func (m FormModel) Result() (stats.Comparison, bool) {
	if m.comparison == nil {
		return stats.Comparison{}, false
	}
	return *m.comparison, true
}

// Mode returns the active mode.
func (m FormModel) Mode() stats.Mode { return m.mode }

// Err returns the last submit error.
func (m FormModel) Err() error { return m.err }

// View renders the form.
func (m FormModel) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("abtest"))
	sb.WriteString(m.hint.Render(fmt.Sprintf("  mode: %s (ctrl+t to switch)", m.mode)))
	sb.WriteString("\n\n")

	for i, f := range m.fields {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		sb.WriteString(cursor)
		sb.WriteString(m.styles.Label.Render(f.Name))
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(m.errSty.Render(m.err.Error()))
		sb.WriteString("\n\n")
	}
	if m.comparison != nil {
		sb.WriteString(report.Pretty(m.styles, *m.comparison, m.precision))
		sb.WriteString("\n")
	}

	sb.WriteString(m.hint.Render("tab/↑↓ move • enter next/submit • ctrl+t mode • esc quit"))
	sb.WriteString("\n")
	return sb.String()
}
