package ui

import (
	"testing"

	"abtest/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m FormModel, msgs ...tea.Msg) FormModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(FormModel)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	ctrlT = tea.KeyMsg{Type: tea.KeyCtrlT}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestForm_BinomialSubmit(t *testing.T) {
	m := NewFormModel(Options{Precision: -1})
	if m.Mode() != stats.ModeBinomial {
		t.Fatalf("expected binomial default, got %s", m.Mode())
	}

	m = press(m,
		typeText("100"), tab,
		typeText("100"), enter,
		typeText("10"), enter,
		typeText("10"), enter,
	)

	c, ok := m.Result()
	if !ok {
		t.Fatalf("expected a result, err=%v", m.Err())
	}
	if c.Result.PValue != 0.5 || c.Result.Uplift != 0 {
		t.Errorf("expected (0.5, 0), got (%v, %v)", c.Result.PValue, c.Result.Uplift)
	}
}

func TestForm_ToggleModeKeepsSampleSizes(t *testing.T) {
	m := NewFormModel(Options{Precision: -1})
	m = press(m, typeText("1000"), tab, typeText("1000"), tab, typeText("5"))

	m = press(m, ctrlT)
	if m.Mode() != stats.ModeNormal {
		t.Fatalf("expected normal after ctrl+t, got %s", m.Mode())
	}
	if got := len(m.inputs); got != 6 {
		t.Fatalf("expected 6 inputs in normal mode, got %d", got)
	}
	v := m.values()
	if v[0] != "1000" || v[1] != "1000" || v[2] != "" {
		t.Fatalf("unexpected carried values: %q", v)
	}

	// Jump past n1/n2 and fill x1 x2 v1 v2.
	m = press(m, tab, tab,
		typeText("10"), tab,
		typeText("11"), tab,
		typeText("25"), tab,
		typeText("25"), enter,
	)
	c, ok := m.Result()
	if !ok {
		t.Fatalf("expected a result, err=%v", m.Err())
	}
	if c.Z < 4.47 || c.Z > 4.48 {
		t.Errorf("expected z≈4.472, got %v", c.Z)
	}

	m = press(m, ctrlT)
	if m.Mode() != stats.ModeBinomial {
		t.Fatalf("expected binomial after second ctrl+t, got %s", m.Mode())
	}
	if _, ok := m.Result(); ok {
		t.Error("result should be cleared on mode switch")
	}
}

func TestForm_InvalidInputShowsError(t *testing.T) {
	m := NewFormModel(Options{Precision: -1})
	m = press(m, typeText("abc"), tab, typeText("100"), tab, typeText("1"), tab, typeText("1"), enter)

	if m.Err() == nil {
		t.Fatal("expected parse error")
	}
	if _, ok := m.Result(); ok {
		t.Error("no result expected on error")
	}
}

func TestForm_StrictRejects(t *testing.T) {
	m := NewFormModel(Options{Strict: true, Precision: -1})
	m = press(m, typeText("0"), tab, typeText("100"), tab, typeText("1"), tab, typeText("1"), enter)

	if m.Err() == nil {
		t.Fatal("expected strict rejection for n1=0")
	}
}

func TestForm_DegenerateWithoutStrict(t *testing.T) {
	m := NewFormModel(Options{Precision: -1})
	m = press(m, typeText("0"), tab, typeText("100"), tab, typeText("1"), tab, typeText("1"), enter)

	if _, ok := m.Result(); !ok {
		t.Fatalf("expected a degenerate result, err=%v", m.Err())
	}
}

func TestForm_QuitAndView(t *testing.T) {
	m := NewFormModel(Options{Mode: stats.ModeNormal, Precision: 3})
	if view := m.View(); view == "" {
		t.Fatal("expected non-empty view")
	}

	next, cmd := m.Update(esc)
	m = next.(FormModel)
	if cmd == nil {
		t.Error("expected quit command")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}
