// Package progress is an optional live terminal dashboard for a
// percolation run, shown instead of (not in addition to) structured
// log lines when --tui is passed.
package progress

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)
)

// StageMsg reports the pipeline's current stage, fed into the running
// tea.Program via Program.Send.
type StageMsg struct {
	Stage            string // "enumerating cliques" or "percolating communities"
	VerticesDone     int
	VerticesTotal    int
	CliquesFound     int
	PercolationLevel int
	MaxLevel         int
	CommunitiesFound int
}

// DoneMsg signals the run finished; the program exits after rendering
// one final frame.
type DoneMsg struct{}

type model struct {
	start    time.Time
	bar      progress.Model
	last     StageMsg
	finished bool
}

// NewModel builds the initial dashboard model.
func NewModel() model {
	return model{start: time.Now(), bar: progress.New(progress.WithDefaultGradient())}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case StageMsg:
		m.last = msg
		ratio := 0.0
		if msg.VerticesTotal > 0 {
			ratio = float64(msg.VerticesDone) / float64(msg.VerticesTotal)
		}
		if msg.MaxLevel > msg.PercolationLevel && msg.PercolationLevel > 0 {
			ratio = float64(msg.PercolationLevel) / float64(msg.MaxLevel)
		}
		return m, m.bar.SetPercent(ratio)
	case DoneMsg:
		m.finished = true
		return m, tea.Quit
	case progress.FrameMsg:
		newModel, cmd := m.bar.Update(msg)
		m.bar = newModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	elapsed := time.Since(m.start).Round(time.Second)
	title := titleStyle.Render("percolate")
	stats := fmt.Sprintf(
		"stage:       %s\nvertices:    %d/%d\ncliques:     %d\nlevel:       %d/%d\ncommunities: %d\nelapsed:     %s",
		m.last.Stage, m.last.VerticesDone, m.last.VerticesTotal, m.last.CliquesFound,
		m.last.PercolationLevel, m.last.MaxLevel, m.last.CommunitiesFound, elapsed,
	)
	return title + "\n" + m.bar.View() + "\n" + statsBoxStyle.Render(stats) + "\n"
}

// Run starts the dashboard and returns a send function the caller
// uses to push StageMsg/DoneMsg updates, plus a function to wait for
// the program to exit.
func Run() (send func(tea.Msg), wait func()) {
	p := tea.NewProgram(NewModel())
	done := make(chan struct{})
	go func() {
		_, _ = p.Run()
		close(done)
	}()
	return p.Send, func() { <-done }
}
