// ABOUTME: Tests for the TUI model
// ABOUTME: Verifies status merging, key routing, and rendering
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updated(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model
}

func TestApplyStatusMerges(t *testing.T) {
	m := NewModel(NewControls())

	m = updated(t, m, StatusMsg{Stage: "identifying"})
	m = updated(t, m, StatusMsg{
		LandmarkName: "Eiffel Tower",
		Location:     "Paris, France",
		Voice:        "Kore",
	})

	if m.stage != "identifying" {
		t.Errorf("expected stage identifying, got %q", m.stage)
	}
	if m.landmark != "Eiffel Tower" {
		t.Errorf("landmark not applied: %q", m.landmark)
	}
	// Empty fields must not erase earlier state
	m = updated(t, m, StatusMsg{Stage: "playing"})
	if m.landmark != "Eiffel Tower" {
		t.Error("empty update erased landmark")
	}
}

func TestStatusErrorClearsOnNewStage(t *testing.T) {
	m := NewModel(NewControls())

	m = updated(t, m, StatusMsg{Error: "Could not play the audio narration"})
	if m.lastError == "" {
		t.Fatal("error not applied")
	}

	m = updated(t, m, StatusMsg{Stage: "identifying"})
	if m.lastError != "" {
		t.Error("stage change should clear the previous error")
	}
}

func TestHistoryCountPointer(t *testing.T) {
	m := NewModel(NewControls())

	three := 3
	m = updated(t, m, StatusMsg{HistoryCount: &three})
	if m.historyCount != 3 {
		t.Errorf("expected 3, got %d", m.historyCount)
	}

	m = updated(t, m, StatusMsg{Stage: "playing"})
	if m.historyCount != 3 {
		t.Error("nil count should not reset history count")
	}

	zero := 0
	m = updated(t, m, StatusMsg{HistoryCount: &zero})
	if m.historyCount != 0 {
		t.Error("explicit zero count should apply")
	}
}

func TestKeySendsAction(t *testing.T) {
	controls := NewControls()
	m := NewModel(controls)

	updated(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	select {
	case a := <-controls.Actions:
		if a != ActionSaveWAV {
			t.Errorf("expected ActionSaveWAV, got %v", a)
		}
	default:
		t.Fatal("no action queued for keypress")
	}
}

func TestQuitKey(t *testing.T) {
	controls := NewControls()
	m := NewModel(controls)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-controls.Quit:
	default:
		t.Error("quit signal not sent")
	}
}

func TestViewRendersLandmark(t *testing.T) {
	m := NewModel(NewControls())
	m = updated(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated(t, m, StatusMsg{
		Stage:        "playing",
		LandmarkName: "Eiffel Tower",
		Location:     "Paris, France",
		HistoryText:  "Built in 1889.",
		Voice:        "Kore",
	})

	view := m.View()
	if !strings.Contains(view, "Eiffel Tower") {
		t.Error("view missing landmark name")
	}
	if !strings.Contains(view, "Kore") {
		t.Error("view missing voice")
	}
}

func TestWrap(t *testing.T) {
	out := wrap("one two three four", 9)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 9 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
}
