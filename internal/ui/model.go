// ABOUTME: Bubbletea model for the tour TUI
// ABOUTME: Defines application state, update logic, and rendering
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusMsg updates the TUI from the orchestrator. Zero-valued fields
// leave the corresponding state untouched.
type StatusMsg struct {
	Stage        string
	Error        string
	LandmarkName string
	Location     string
	HistoryText  string
	Voice        string
	SavedPath    string
	PostText     string
	VideoURI     string
	HistoryCount *int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model represents the TUI state
type Model struct {
	// Analysis
	stage       string
	landmark    string
	location    string
	historyText string
	voice       string

	// Results of user actions
	lastError    string
	savedPath    string
	postText     string
	videoURI     string
	historyCount int

	// Dimensions
	width  int
	height int

	controls *Controls
}

// NewModel creates a new TUI model
func NewModel(controls *Controls) Model {
	return Model{
		stage:    "idle",
		controls: controls,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// handleKey routes keypresses to actions
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		select {
		case m.controls.Quit <- QuitMsg{}:
		default:
		}
		return m, tea.Quit
	case "p":
		m.send(ActionReplay)
	case "v":
		m.send(ActionCycleVoice)
	case "l":
		m.send(ActionCycleVoiceLive)
	case "s":
		m.send(ActionSaveWAV)
	case "o":
		m.send(ActionSharePhoto)
	case "g":
		m.send(ActionGeneratePost)
	case "t":
		m.send(ActionVideoTour)
	case "c":
		m.send(ActionClearHistory)
	}

	return m, nil
}

// send queues an action without blocking the update loop
func (m Model) send(a Action) {
	select {
	case m.controls.Actions <- a:
	default:
	}
}

// applyStatus merges a status update into the model
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Stage != "" {
		m.stage = msg.Stage
		m.lastError = ""
	}
	if msg.Error != "" {
		m.lastError = msg.Error
	}
	if msg.LandmarkName != "" {
		m.landmark = msg.LandmarkName
	}
	if msg.Location != "" {
		m.location = msg.Location
	}
	if msg.HistoryText != "" {
		m.historyText = msg.HistoryText
	}
	if msg.Voice != "" {
		m.voice = msg.Voice
	}
	if msg.SavedPath != "" {
		m.savedPath = msg.SavedPath
	}
	if msg.PostText != "" {
		m.postText = msg.PostText
	}
	if msg.VideoURI != "" {
		m.videoURI = msg.VideoURI
	}
	if msg.HistoryCount != nil {
		m.historyCount = *msg.HistoryCount
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Wayfarer") + "  " + labelStyle.Render(m.stageLine()) + "\n")

	if m.landmark != "" {
		body := fmt.Sprintf("%s\n%s\n\n%s",
			titleStyle.Render(m.landmark),
			labelStyle.Render(m.location),
			wrap(m.historyText, m.width-6))
		b.WriteString(borderStyle.Width(min(m.width-2, 76)).Render(body) + "\n")

		b.WriteString(labelStyle.Render(fmt.Sprintf("Voice: %s   Past analyses: %d", m.voice, m.historyCount)) + "\n")
	}

	if m.savedPath != "" {
		b.WriteString(labelStyle.Render("Saved: "+m.savedPath) + "\n")
	}
	if m.postText != "" {
		b.WriteString(wrap("Post: "+m.postText, m.width-2) + "\n")
	}
	if m.videoURI != "" {
		b.WriteString(labelStyle.Render("Video tour: "+m.videoURI) + "\n")
	}
	if m.lastError != "" {
		b.WriteString(errorStyle.Render(m.lastError) + "\n")
	}

	b.WriteString(helpStyle.Render("p replay · v voice · l live voice · s save wav · o share photo · g post · t video · c clear history · q quit"))

	return b.String()
}

// stageLine describes the current pipeline stage
func (m Model) stageLine() string {
	switch m.stage {
	case "idle":
		return "waiting for a photo"
	case "identifying":
		return "identifying landmark..."
	case "history":
		return "fetching history..."
	case "narrating":
		return "synthesizing narration..."
	case "playing":
		return "playing narration"
	case "video":
		return "generating video tour..."
	default:
		return m.stage
	}
}

// wrap does simple word wrapping for narration text
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line > 0 && line+len(word)+1 > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
