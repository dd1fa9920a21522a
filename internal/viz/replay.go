package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
)

const (
	replayWidth  = 70
	replayHeight = 12
)

type TickMsg time.Time

// Replay plays a trajectory back one grid point per tick.
type Replay struct {
	title   string
	times   []float64
	states  []float64
	pos     int
	running bool
	every   time.Duration
}

// NewReplay returns a model positioned at the first point. fps <= 0 uses 30.
func NewReplay(title string, times, states []float64, fps int) Replay {
	if fps <= 0 {
		fps = 30
	}
	return Replay{
		title:   title,
		times:   times,
		states:  states,
		running: true,
		every:   time.Second / time.Duration(fps),
	}
}

func (m Replay) tick() tea.Cmd {
	return tea.Tick(m.every, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd {
	return m.tick()
}

// Pos is the index of the point currently shown.
func (m Replay) Pos() int { return m.pos }

func (m Replay) Running() bool { return m.running }

func (m Replay) last() int { return len(m.states) - 1 }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.pos = 0
			m.running = true
		case "left", "h":
			if !m.running && m.pos > 0 {
				m.pos--
			}
		case "right", "l":
			if !m.running && m.pos < m.last() {
				m.pos++
			}
		}
	case TickMsg:
		if m.running && m.pos < m.last() {
			m.pos++
		}
		if m.pos >= m.last() {
			m.running = false
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Replay) View() string {
	if len(m.states) == 0 {
		return "no data\n"
	}

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(m.title) + "\n")

	status := StatusRunning.Render("PLAYING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
		if m.pos == m.last() {
			status = StatusPaused.Render("DONE")
		}
	}
	s.WriteString(status + "\n\n")

	if data := finite(m.states[:m.pos+1]); len(data) > 1 {
		chart := asciigraph.Plot(data, asciigraph.Height(replayHeight), asciigraph.Width(replayWidth))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(MetricLabel.Render("t") + MetricValue.Render(fmt.Sprintf("%.6g", m.times[m.pos])) + "\n")
	s.WriteString(MetricLabel.Render("x") + MetricValue.Render(fmt.Sprintf("%.6g", m.states[m.pos])) + "\n")
	s.WriteString(MetricLabel.Render("step") + MetricValue.Render(fmt.Sprintf("%d/%d", m.pos, m.last())) + "\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("%.0f points/s", float64(time.Second)/float64(m.every))) + "\n\n")

	progress := 1.0
	if m.last() > 0 {
		progress = float64(m.pos) / float64(m.last())
	}
	s.WriteString(ProgressBar(progress, replayWidth) + "\n\n")
	s.WriteString(KeyHint.Render("space pause · r restart · ←/→ step · q quit") + "\n")
	return s.String()
}
