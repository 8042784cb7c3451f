package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/spinnet/internal/config"
	"github.com/san-kum/spinnet/internal/control"
	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/sim"
	"github.com/san-kum/spinnet/internal/spin"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width      = 80
	height     = 24
	panelWidth = 42
	// headerRows is the number of terminal rows above the canvas.
	headerRows = 2
	chartWidth = panelWidth - 12
)

var slotLabels = map[string]string{
	metrics.SlotArea:         "Area",
	metrics.SlotVolume:       "Volume",
	metrics.SlotEnergy:       "Energy",
	metrics.SlotDiscreteness: "Discreteness",
	metrics.SlotCurvature:    "Curvature",
	metrics.SlotEmergence:    "Emergence",
}

type TickMsg time.Time

// Model hosts the render loop in a terminal: frames arrive as ticks on the
// update loop, together with keys, mouse and resizes.
type Model struct {
	cfg     *config.Config
	log     *slog.Logger
	loop    *sim.Loop
	panel   *control.Panel
	primary *Canvas
	derived *Canvas
	theme   Theme
	styles  Styles

	width, height int
	selected      int
	recorder      *Recorder
	recording     bool
	showHelp      bool
	message       string
}

// NewModel builds the simulation described by cfg on braille canvases sized
// for the default terminal.
func NewModel(cfg *config.Config, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock, err := cfg.Clock()
	if err != nil {
		return Model{}, err
	}

	cols, rows := canvasCells(width, height)
	primary := NewCanvas(cols, rows)
	w, h := primary.Size()
	state, err := sim.NewState(clock, spin.Bounds{Width: w, Height: h}, cfg.Seed, logger)
	if err != nil {
		return Model{}, err
	}

	var derived *Canvas
	var derivedPainter sim.Renderer
	if clock.Variant == sim.Extended {
		derived = NewCanvas(cols, rows)
		derivedPainter = NewDerivedPainter(derived, cfg.Seed)
	}
	loop := sim.NewLoop(state, NewPainter(primary, cfg.Seed), derivedPainter)

	theme := GetTheme(cfg.Theme)
	return Model{
		cfg:      cfg,
		log:      logger,
		loop:     loop,
		panel:    control.NewPanel(loop, logger),
		primary:  primary,
		derived:  derived,
		theme:    theme,
		styles:   theme.Styles(),
		width:    width,
		height:   height,
		recorder: NewRecorder(100 / max(cfg.FPS, 1)),
	}, nil
}

func canvasCells(termW, termH int) (int, int) {
	return max(termW-panelWidth-2, 10), max(termH-headerRows-1, 5)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(m.cfg.FPS, 1)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.loop.Frame()
		if m.recording {
			m.recorder.CaptureCanvas(m.live())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		err = m.panel.Fire(control.PlayPause)
	case "r":
		err = m.panel.Fire(control.Reset)
	case "+", "=":
		_, err = m.panel.Nudge(control.Speed, 1)
	case "-", "_":
		_, err = m.panel.Nudge(control.Speed, -1)
	case "]":
		_, err = m.panel.Nudge(control.Nodes, 1)
	case "[":
		_, err = m.panel.Nudge(control.Nodes, -1)
	case "h":
		_, err = m.panel.Nudge(control.Hbar, 1)
	case "H":
		_, err = m.panel.Nudge(control.Hbar, -1)
	case "tab":
		m.cycleParam()
	case "up", "k":
		err = m.adjustParam(1)
	case "down", "j":
		err = m.adjustParam(-1)
	case "m":
		next := sim.Derived
		if m.loop.Clock().Mode == sim.Derived {
			next = sim.Primary
		}
		err = m.panel.Choose(control.Mode, next.String())
	case "u":
		err = m.toggleUnits()
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		m.message = "theme " + m.theme.Name
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	if err != nil {
		m.message = err.Error()
	}
	return m, nil
}

func (m *Model) cycleParam() {
	names := m.panel.Numerics()
	if len(names) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(names)
}

func (m *Model) adjustParam(steps int) error {
	names := m.panel.Numerics()
	if len(names) == 0 {
		return nil
	}
	_, err := m.panel.Nudge(names[m.selected%len(names)], steps)
	return err
}

func (m *Model) toggleUnits() error {
	c := m.loop.Clock()
	if c.Variant != sim.Extended {
		return fmt.Errorf("%w: units", control.ErrNotAvailable)
	}
	if c.Units == spin.Physical {
		c.Units = spin.Natural
	} else {
		c.Units = spin.Physical
	}
	m.loop.MarkDirty()
	return nil
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recorder.Reset()
		m.recording = true
		m.message = "recording"
		return
	}
	m.recording = false
	path := filepath.Join(m.cfg.DataDir, "recordings", time.Now().Format("20060102_150405")+".gif")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		m.message = err.Error()
		return
	}
	if err := m.recorder.Save(path); err != nil {
		if errors.Is(err, ErrNoFrames) {
			m.message = "nothing recorded"
			return
		}
		m.log.Error("save recording", "path", path, "error", err)
		m.message = err.Error()
		return
	}
	m.log.Info("recording saved", "path", path, "frames", m.recorder.Len())
	m.message = "saved " + path
}

// canvasTop is the terminal row the canvas starts on. The help overlay sits
// between the header and the canvas.
func (m Model) canvasTop() int {
	if m.showHelp {
		return headerRows + helpRows
	}
	return headerRows
}

// toWorld maps the terminal cell at column x, row y to the world point at
// its centre, for a canvas starting on row top.
func toWorld(x, y, top int) r2.Vec {
	return r2.Vec{
		X: (float64(x) + 0.5) * 2 * DotScale,
		Y: (float64(y-top) + 0.5) * 4 * DotScale,
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := toWorld(msg.X, msg.Y, m.canvasTop())
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.loop.State().Click(p)
	case msg.Action == tea.MouseActionMotion:
		m.loop.State().Pointer(p)
	}
}

func (m *Model) resize(termW, termH int) {
	m.width, m.height = termW, termH
	cols, rows := canvasCells(termW, termH)
	m.primary.Resize(cols, rows)
	if m.derived != nil {
		m.derived.Resize(cols, rows)
	}
	w, h := m.primary.Size()
	if err := m.loop.Resize(spin.Bounds{Width: w, Height: h}); err != nil {
		m.message = err.Error()
	}
}

func (m Model) live() *Canvas {
	if m.loop.Clock().Mode == sim.Derived && m.derived != nil {
		return m.derived
	}
	return m.primary
}

// View renders the TUI interface.
func (m Model) View() string {
	s := m.styles
	c := m.loop.Clock()

	status := s.Paused.Render("PAUSED")
	if c.Running {
		status = s.Running.Render(AnimatedSpinner(c.Frame) + " RUNNING")
	}
	if m.recording {
		status += "  " + s.Recording.Render(fmt.Sprintf("● REC %d", m.recorder.Len()))
	}
	title := GradientText("SPIN NETWORK", m.theme.Primary, m.theme.Secondary)
	header := fmt.Sprintf("%s  %s  %s\n", title, s.Subtle.Render(c.Variant.String()+" · "+c.Mode.String()), status)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Canvas.Render(m.live().String()),
		s.Panel.Render(m.panelView()),
	)
	if m.showHelp {
		return header + helpText + "\n" + mainView
	}
	return header + "\n" + mainView
}

func (m Model) panelView() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Header.Render("READOUT") + "\n")
	for _, slot := range m.panel.Slots() {
		b.WriteString(s.Label.Render(slotLabels[slot.Name]) + s.Value.Render(slot.Text) + "\n")
	}
	r := m.loop.Readout()
	if r.Extended {
		b.WriteString(s.Label.Render("") + s.ProgressBar(r.Emergence/100, 20) + "\n")
	}

	if areas := m.loop.History().Areas(); len(areas) > 1 {
		if len(areas) > chartWidth*4 {
			areas = areas[len(areas)-chartWidth*4:]
		}
		chart := asciigraph.Plot(areas, asciigraph.Height(4), asciigraph.Width(chartWidth), asciigraph.Caption("total area"))
		b.WriteString(s.Chart.Render(chart) + "\n")
	}

	st := m.loop.State().Graph.Stats()
	b.WriteString("\n" + s.Header.Render("NETWORK") + "\n")
	b.WriteString(s.Label.Render("Nodes") + s.Value.Render(fmt.Sprint(st.Nodes)) + "\n")
	b.WriteString(s.Label.Render("Edges") + s.Value.Render(fmt.Sprint(st.Edges)) + "\n")
	b.WriteString(s.Label.Render("Components") + s.Value.Render(fmt.Sprint(st.Components)) + "\n")
	b.WriteString(s.Label.Render("Valency") + s.Value.Render(fmt.Sprintf("%.2f", st.MeanValency)) + "\n")
	b.WriteString(s.Label.Render("Frame") + s.Value.Render(fmt.Sprint(m.loop.Clock().Frame)) + "\n")

	b.WriteString("\n" + s.Header.Render("CONTROLS") + "\n")
	for i, name := range m.panel.Numerics() {
		line := fmt.Sprintf("%-10s %s", name, m.panel.Label(name))
		if i == m.selected%len(m.panel.Numerics()) {
			b.WriteString(s.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + s.Subtle.Render(line) + "\n")
		}
	}

	if m.message != "" {
		b.WriteString("\n" + s.Hint.Render(m.message) + "\n")
	}
	b.WriteString("\n" + s.Separator(panelWidth-4) + "\n")
	b.WriteString(s.Hint.Render("SP:Play R:Reset Q:Quit ?:Help"))
	return b.String()
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  R        - Rebuild the network      ║
║  + / -    - Speed up / slow down     ║
║  ] / [    - More / fewer nodes       ║
║  h / H    - Raise / lower ħ scale    ║
║  Tab      - Cycle controls           ║
║  Up/Down  - Adjust selected control  ║
║  M        - Network / area display   ║
║  U        - Natural / Planck units   ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  Mouse    - Attract, click to burst  ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

var helpRows = strings.Count(helpText, "\n")

// RunLive runs the interactive display until the user quits.
func RunLive(cfg *config.Config, logger *slog.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
