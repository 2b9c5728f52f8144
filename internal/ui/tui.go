// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program and action channels for the tour UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a user request sent from the TUI to the orchestrator
type Action int

const (
	ActionReplay Action = iota
	ActionCycleVoice
	ActionCycleVoiceLive
	ActionSaveWAV
	ActionSharePhoto
	ActionGeneratePost
	ActionVideoTour
	ActionClearHistory
)

// QuitMsg signals a user-requested shutdown
type QuitMsg struct{}

// Controls holds channels for TUI-to-app communication
type Controls struct {
	Actions chan Action
	Quit    chan QuitMsg
}

// NewControls creates control channels
func NewControls() *Controls {
	return &Controls{
		Actions: make(chan Action, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// Run starts the TUI
func Run(controls *Controls) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(controls), tea.WithAltScreen())
	return p, nil
}
