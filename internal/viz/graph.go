package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/papergraph/internal/layout"
)

const (
	defaultWidth    = 72
	defaultHeight   = 24
	historyCapacity = 600
	maxFrameDelta   = 0.1
	tuneUp          = 1.05
	tuneDown        = 0.95
)

type TickMsg time.Time

// Options configure a GraphModel.
type Options[M any] struct {
	Title string
	FPS   int
	// Seed is used for the first Initialize; every reset bumps it by one.
	Seed  int64
	Theme string
	// Describe turns a node's metadata into the lines of the selection
	// panel. Nil prints the metadata with %v.
	Describe func(M) []string
}

// GraphModel is the interactive live view. It owns the frame clock: every
// TickMsg advances the engine by the wall time since the previous tick.
// Node selection exists only here; the engine never sees it.
type GraphModel[M any] struct {
	engine   *layout.Engine[M]
	nodes    []layout.NodeInput[M]
	links    []layout.LinkInput
	opts     Options[M]
	seed     int64
	interval time.Duration

	canvas *Canvas
	camera *Camera
	scene  *Scene
	theme  Theme
	styles styles

	snapshot []layout.Renderable[M]
	edges    [][2]int
	energy   []float64
	kinetic  float64
	ticks    int
	elapsed  float64
	last     time.Time

	running       bool
	autoRotate    bool
	showHelp      bool
	paramKeys     []string
	paramIdx      int
	initialParams layout.Params
	status        string
	err           error
}

// NewGraphModel initializes engine with the given graph and returns the
// view. Reset re-initializes with the next seed and the current params.
func NewGraphModel[M any](engine *layout.Engine[M], nodes []layout.NodeInput[M], links []layout.LinkInput, opts Options[M]) (*GraphModel[M], error) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Title == "" {
		opts.Title = "papergraph"
	}
	if err := engine.Initialize(nodes, links, rand.New(rand.NewSource(opts.Seed))); err != nil {
		return nil, err
	}

	theme := GetTheme(opts.Theme)
	m := &GraphModel[M]{
		engine:        engine,
		nodes:         nodes,
		links:         links,
		opts:          opts,
		seed:          opts.Seed,
		interval:      time.Second / time.Duration(opts.FPS),
		canvas:        NewCanvas(defaultWidth, defaultHeight),
		camera:        NewCamera(),
		scene:         &Scene{Selected: -1},
		theme:         theme,
		styles:        newStyles(theme),
		energy:        make([]float64, 0, historyCapacity),
		running:       true,
		paramKeys:     layout.ParamNames(),
		initialParams: engine.Params(),
	}
	m.capture()
	m.camera.Fit(m.scene.Positions)
	return m, nil
}

func (m *GraphModel[M]) Init() tea.Cmd {
	return m.tick()
}

func (m *GraphModel[M]) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *GraphModel[M]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *GraphModel[M]) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "tab":
		m.selectNext(1)
	case "shift+tab":
		m.selectNext(-1)
	case "esc":
		m.scene.Selected = -1
	case "[":
		m.cycleParam(-1)
	case "]":
		m.cycleParam(1)
	case "up", "k":
		m.adjustParam(tuneUp)
	case "down", "j":
		m.adjustParam(tuneDown)
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "f":
		m.camera.Fit(m.scene.Positions)
		m.camera.Zoom = 1
	case "a":
		m.autoRotate = !m.autoRotate
	case "t":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

// step advances the engine by the wall time since the previous frame,
// capped at maxFrameDelta so a stalled terminal does not fling nodes.
func (m *GraphModel[M]) step(now time.Time) {
	dt := 0.0
	if !m.last.IsZero() {
		dt = math.Max(0, math.Min(now.Sub(m.last).Seconds(), maxFrameDelta))
	}
	m.last = now

	if !m.running {
		return
	}
	if err := m.engine.Tick(dt); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.capture()
	m.camera.Fit(m.scene.Positions)
	if m.autoRotate {
		m.camera.RotateY(0.5 * dt)
	}

	m.energy = append(m.energy, m.kinetic)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// capture copies the engine state into the view under the engine lock.
func (m *GraphModel[M]) capture() {
	m.engine.View(func(s *layout.State[M]) {
		m.snapshot = s.AppendRenderable(m.snapshot[:0])
		m.edges = s.AppendEdges(m.edges[:0])
		m.ticks = s.Ticks()
		m.elapsed = s.Elapsed()
		m.kinetic = s.KineticEnergy()
	})
	LoadScene(m.scene, m.snapshot, m.edges)
}

func (m *GraphModel[M]) reset() {
	m.seed++
	if err := m.engine.Initialize(m.nodes, m.links, rand.New(rand.NewSource(m.seed))); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.energy = m.energy[:0]
	m.last = time.Time{}
	m.capture()
	m.camera.Fit(m.scene.Positions)
	m.status = fmt.Sprintf("reset with seed %d", m.seed)
}

func (m *GraphModel[M]) selectNext(dir int) {
	n := len(m.snapshot)
	if n == 0 {
		return
	}
	switch {
	case m.scene.Selected < 0 && dir > 0:
		m.scene.Selected = 0
	case m.scene.Selected < 0:
		m.scene.Selected = n - 1
	default:
		m.scene.Selected = ((m.scene.Selected+dir)%n + n) % n
	}
}

func (m *GraphModel[M]) cycleParam(dir int) {
	n := len(m.paramKeys)
	if n == 0 {
		return
	}
	m.paramIdx = ((m.paramIdx+dir)%n + n) % n
}

// adjustParam scales the selected param. A value the engine rejects is
// reported in the status line and the old params stay in force.
func (m *GraphModel[M]) adjustParam(factor float64) {
	key := m.paramKeys[m.paramIdx]
	p := m.engine.Params()
	val := p.GetParams()[key]
	if val == 0 && factor > 1 {
		val = 1e-3
	}
	if err := p.SetParam(key, val*factor); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.engine.SetParams(p); err != nil {
		m.status = err.Error()
	}
}

func (m *GraphModel[M]) resize(w, h int) {
	cw := w - statsWidth - 4
	ch := h - 2
	if cw < 20 {
		cw = 20
	}
	if ch < 8 {
		ch = 8
	}
	m.canvas.Resize(cw, ch)
}

// Selected returns the id of the selected node, or "".
func (m *GraphModel[M]) Selected() string {
	if m.scene.Selected < 0 || m.scene.Selected >= len(m.snapshot) {
		return ""
	}
	return m.snapshot[m.scene.Selected].ID
}

func (m *GraphModel[M]) Running() bool     { return m.running }
func (m *GraphModel[M]) Seed() int64       { return m.seed }
func (m *GraphModel[M]) Camera() *Camera   { return m.camera }
func (m *GraphModel[M]) Err() error        { return m.err }
func (m *GraphModel[M]) Energy() []float64 { return m.energy }

func (m *GraphModel[M]) View() string {
	DrawScene(m.canvas, m.camera, m.scene, m.theme.Palette())
	canvasView := m.styles.canvas.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.opts.Title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(m.styles.paused.Render("ERROR: "+m.err.Error()) + "\n")
	case m.running:
		s.WriteString(m.styles.running.Render("RUNNING") + "\n")
	default:
		s.WriteString(m.styles.paused.Render("PAUSED") + "\n")
	}
	if m.status != "" {
		s.WriteString(m.styles.label.Render(m.status) + "\n")
	}
	s.WriteString("\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	s.WriteString(m.styles.label.Render("Nodes") + m.styles.value.Render(fmt.Sprintf("%d", len(m.snapshot))) + "\n")
	s.WriteString(m.styles.label.Render("Links") + m.styles.value.Render(fmt.Sprintf("%d / %d", len(m.edges), len(m.links))) + "\n")
	s.WriteString(m.styles.label.Render("Time") + m.styles.value.Render(fmt.Sprintf("%.2fs (%d ticks)", m.elapsed, m.ticks)) + "\n")
	s.WriteString(m.styles.label.Render("Energy") + m.styles.value.Render(fmt.Sprintf("%.3f", m.kinetic)) + "\n")
	s.WriteString(m.styles.label.Render("Seed") + m.styles.value.Render(fmt.Sprintf("%d", m.seed)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	current := m.engine.Params().GetParams()
	initial := m.initialParams.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-16s %s %.4g", k, paramBar(current[k], initial[k], 8), current[k])
		if i == m.paramIdx {
			s.WriteString(m.styles.activeParam.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + m.styles.label.Render(line) + "\n")
		}
	}

	s.WriteString(m.selectionPanel())
	s.WriteString(m.styles.help.Render("SP:Pause R:Reset Q:Quit ?:Help\nTab:Select [ ]:Param ↑↓:Tune"))

	statsView := m.styles.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m *GraphModel[M]) selectionPanel() string {
	i := m.scene.Selected
	if i < 0 || i >= len(m.snapshot) {
		return ""
	}
	node := m.snapshot[i]

	var s strings.Builder
	s.WriteString("\n" + m.styles.title.Render("SELECTED") + "\n")
	s.WriteString(swatch(node.Color) + " " + m.styles.value.Render(node.ID) + "\n")

	var lines []string
	if m.opts.Describe != nil {
		lines = m.opts.Describe(node.Meta)
	} else {
		lines = []string{fmt.Sprintf("%v", node.Meta)}
	}
	for _, line := range lines {
		for _, w := range wrap(line, statsWidth-6) {
			s.WriteString(m.styles.value.Render(w) + "\n")
		}
	}
	s.WriteString(m.styles.label.Render(fmt.Sprintf("%d linked", len(m.scene.Neighbors(i)))) + "\n")
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space     - Pause/Resume layout     ║
║  R         - Re-seed and restart     ║
║  Q         - Quit                    ║
║  Tab/S-Tab - Select next/prev paper  ║
║  Esc       - Clear selection         ║
║  [ / ]     - Cycle parameters        ║
║  Up/K      - Increase param (+5%)    ║
║  Down/J    - Decrease param (-5%)    ║
║  x y z     - Orbit (shift reverses)  ║
║  + / -     - Zoom                    ║
║  F         - Fit view                ║
║  A         - Auto-rotate             ║
║  T         - Cycle themes            ║
║  ?         - Toggle this help        ║
╚══════════════════════════════════════╝`
