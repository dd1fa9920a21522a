package viz

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPlot(t *testing.T) {
	out, err := Plot([]float64{0, 1, 2, math.NaN(), 3}, "x vs t", 40, 5)
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(out, "x vs t") {
		t.Error("caption missing from plot")
	}

	if _, err := Plot([]float64{math.NaN()}, "", 40, 5); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
}

func TestPlotMany(t *testing.T) {
	out, err := PlotMany([][]float64{{0, 1, 2}, {0, 0.5, 1, 1.5, 2}}, "compare", 30, 5)
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if out == "" {
		t.Error("empty plot")
	}

	if _, err := PlotMany(nil, "", 30, 5); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.png")
	s := Series{Name: "rk4", Times: []float64{0, 1, 2}, States: []float64{0, 1, math.Inf(1)}}

	if err := SavePNG(path, "test", s); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty png")
	}
}

func TestSavePNGErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.png")
	if err := SavePNG(path, "empty"); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
	bad := Series{Name: "bad", Times: []float64{0, 1}, States: []float64{0}}
	if err := SavePNG(path, "bad", bad); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"method", "final"}, [][]string{{"rk4", "0.367879"}})
	if !strings.Contains(out, "method") || !strings.Contains(out, "rk4") {
		t.Errorf("unexpected table: %s", out)
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReplayPlayback(t *testing.T) {
	var m tea.Model = NewReplay("decay", []float64{0, 1, 2}, []float64{1, 0.5, 0.25}, 60)

	for i := 0; i < 5; i++ {
		m, _ = m.Update(TickMsg{})
	}
	r := m.(Replay)
	if r.Pos() != 2 {
		t.Errorf("expected playback to stop at last point, got %d", r.Pos())
	}
	if r.Running() {
		t.Error("expected playback to stop at the end")
	}
	if !strings.Contains(r.View(), "DONE") {
		t.Error("expected DONE status")
	}

	m, _ = m.Update(key("r"))
	r = m.(Replay)
	if r.Pos() != 0 || !r.Running() {
		t.Error("restart should rewind and resume")
	}
}

func TestReplayPauseAndStep(t *testing.T) {
	var m tea.Model = NewReplay("decay", []float64{0, 1, 2}, []float64{1, 0.5, 0.25}, 0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(TickMsg{})
	if m.(Replay).Pos() != 0 {
		t.Error("paused replay must not advance")
	}
	if !strings.Contains(m.(Replay).View(), "PAUSED") {
		t.Error("expected PAUSED status")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.(Replay).Pos() != 2 {
		t.Errorf("expected pos 2, got %d", m.(Replay).Pos())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.(Replay).Pos() != 1 {
		t.Errorf("expected pos 1, got %d", m.(Replay).Pos())
	}
}

func TestReplayQuit(t *testing.T) {
	m := NewReplay("decay", []float64{0, 1}, []float64{1, 0.5}, 30)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestReplayEmpty(t *testing.T) {
	m := NewReplay("empty", nil, nil, 30)
	if m.View() != "no data\n" {
		t.Error("expected placeholder view")
	}
}

func TestReplayShowsRate(t *testing.T) {
	m := NewReplay("decay", []float64{0, 1}, []float64{1, 0.5}, 20)
	if !strings.Contains(m.View(), "20 points/s") {
		t.Error("expected playback rate in view")
	}
}
