package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/papergraph/internal/layout"
)

func newTestModel(t *testing.T) (*GraphModel[string], *layout.Engine[string]) {
	t.Helper()
	nodes := []layout.NodeInput[string]{
		{ID: "a", Color: "#ff0000", Meta: "first paper"},
		{ID: "b", Color: "#00ff00", Meta: "second paper"},
		{ID: "c", Color: "#0000ff", Meta: "third paper"},
	}
	links := []layout.LinkInput{{Source: "b", Target: "a"}, {Source: "c", Target: "a"}, {Source: "c", Target: "zz"}}

	engine := layout.NewEngine[string](layout.DefaultParams())
	m, err := NewGraphModel(engine, nodes, links, Options[string]{
		Title:    "test graph",
		FPS:      60,
		Seed:     1,
		Describe: func(s string) []string { return []string{"Title: " + s} },
	})
	if err != nil {
		t.Fatal(err)
	}
	return m, engine
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ticks(e *layout.Engine[string]) (n int, elapsed float64) {
	e.View(func(s *layout.State[string]) {
		n, elapsed = s.Ticks(), s.Elapsed()
	})
	return n, elapsed
}

func TestGraphModelTicksWithRealDelta(t *testing.T) {
	m, engine := newTestModel(t)
	start := time.Now()

	m.Update(TickMsg(start))
	m.Update(TickMsg(start.Add(20 * time.Millisecond)))

	n, elapsed := ticks(engine)
	if n != 2 {
		t.Errorf("expected 2 ticks, got %d", n)
	}
	if math.Abs(elapsed-0.02) > 1e-9 {
		t.Errorf("expected elapsed 0.02, got %f", elapsed)
	}

	// a stall is capped
	m.Update(TickMsg(start.Add(5 * time.Second)))
	_, elapsed = ticks(engine)
	if math.Abs(elapsed-(0.02+maxFrameDelta)) > 1e-9 {
		t.Errorf("expected capped delta, elapsed %f", elapsed)
	}
	if len(m.Energy()) != 3 {
		t.Errorf("expected 3 energy samples, got %d", len(m.Energy()))
	}
}

func TestGraphModelPause(t *testing.T) {
	m, engine := newTestModel(t)
	m.Update(key("space"))
	if m.Running() {
		t.Fatal("space should pause")
	}
	m.Update(TickMsg(time.Now()))
	if n, _ := ticks(engine); n != 0 {
		t.Errorf("paused view ticked %d times", n)
	}
}

func TestGraphModelSelection(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Selected() != "" {
		t.Fatal("nothing should be selected initially")
	}

	m.Update(key("tab"))
	if m.Selected() != "a" {
		t.Errorf("expected a, got %q", m.Selected())
	}
	m.Update(key("shift+tab"))
	if m.Selected() != "c" {
		t.Errorf("expected wrap to c, got %q", m.Selected())
	}

	view := m.View()
	for _, want := range []string{"TEST GRAPH", "SELECTED", "Title: third paper", "1 linked"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Selected() != "" {
		t.Error("esc should clear the selection")
	}
}

func TestGraphModelReset(t *testing.T) {
	m, engine := newTestModel(t)
	now := time.Now()
	m.Update(TickMsg(now))
	m.Update(TickMsg(now.Add(10 * time.Millisecond)))

	m.Update(key("r"))
	if m.Seed() != 2 {
		t.Errorf("expected seed 2 after reset, got %d", m.Seed())
	}
	if n, _ := ticks(engine); n != 0 {
		t.Errorf("reset should start a fresh layout, got %d ticks", n)
	}
	if len(m.Energy()) != 0 {
		t.Error("reset should clear the energy trace")
	}
}

func TestGraphModelTuneParams(t *testing.T) {
	m, engine := newTestModel(t)

	// params are sorted: centering, damping, ...
	m.Update(key("]"))
	m.Update(key("up"))
	want := layout.DefaultDamping * tuneUp
	if got := engine.Params().Damping; math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected damping %f, got %f", want, got)
	}

	// one more step would reach 1 and is rejected
	m.Update(key("up"))
	if got := engine.Params().Damping; math.Abs(got-want) > 1e-12 {
		t.Errorf("invalid damping applied: %f", got)
	}
	if m.status == "" {
		t.Error("rejected tuning should be reported")
	}

	m.Update(key("["))
	m.Update(key("["))
	if m.paramKeys[m.paramIdx] != "theta" {
		t.Errorf("expected wrap to theta, got %s", m.paramKeys[m.paramIdx])
	}
}

func TestGraphModelCameraKeys(t *testing.T) {
	m, _ := newTestModel(t)
	cam := m.Camera()
	rotY, zoom := cam.RotY, cam.Zoom

	m.Update(key("y"))
	m.Update(key("+"))
	if cam.RotY <= rotY {
		t.Error("y should orbit")
	}
	if cam.Zoom <= zoom {
		t.Error("+ should zoom in")
	}
}

func TestGraphModelResize(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	if m.canvas.Width != 160-statsWidth-4 || m.canvas.Height != 48 {
		t.Errorf("unexpected canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}
}

func TestGraphModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
