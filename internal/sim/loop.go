package sim

import (
	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/spin"
)

const (
	// TrailAlpha is the opacity of the black wash laid over each frame
	// before drawing, which leaves fading trails behind moving entities.
	TrailAlpha      = 0.2
	historyCapacity = 600
)

// Loop is the per-frame driver: it advances the state when running, paints
// the live display and refreshes the readout.
type Loop struct {
	state   *State
	primary Renderer
	derived Renderer
	dirty   bool
	readout metrics.Readout
	history *metrics.History
	sinks   []metrics.Sink
}

// NewLoop paints the initial graph on the primary surface. derived may be
// nil when there is no second display.
func NewLoop(state *State, primary, derived Renderer) *Loop {
	l := &Loop{
		state:   state,
		primary: primary,
		derived: derived,
		dirty:   true,
		history: metrics.NewHistory(historyCapacity),
	}
	l.repaint(primary)
	l.refresh(false)
	return l
}

func (l *Loop) State() *State             { return l.state }
func (l *Loop) Clock() *Clock             { return l.state.Clock }
func (l *Loop) Readout() metrics.Readout  { return l.readout }
func (l *Loop) History() *metrics.History { return l.history }
func (l *Loop) HasDerived() bool          { return l.derived != nil }

// AddSink registers a receiver for the formatted readout of every frame.
func (l *Loop) AddSink(s metrics.Sink) {
	l.sinks = append(l.sinks, s)
	l.readout.Publish(s)
}

// MarkDirty forces the next paused frame to repaint.
func (l *Loop) MarkDirty() { l.dirty = true }

func (l *Loop) target() Renderer {
	if l.state.Clock.Mode == Derived && l.derived != nil {
		return l.derived
	}
	return l.primary
}

// static reports whether a paused display is left alone between explicit
// repaints. Only the extended variant, with its two surfaces, does that.
func (l *Loop) static() bool {
	return l.state.Clock.Variant == Extended
}

// Frame runs one frame of the loop and returns the refreshed readout.
func (l *Loop) Frame() metrics.Readout {
	c := l.state.Clock
	r := l.target()

	switch {
	case c.Running:
		r.Compose(TrailAlpha, c)
		l.state.advance(
			func(e *spin.Edge) { r.DrawEdge(e, c) },
			func(n *spin.Node) { r.DrawNode(n, c) },
		)
	case l.static():
		if l.dirty {
			l.repaint(r)
		}
	default:
		r.Compose(TrailAlpha, c)
		l.draw(r)
	}

	ticked := c.Running || l.dirty
	l.dirty = false
	l.refresh(ticked)
	return l.readout
}

// Rebuild replaces the graph and repaints the live display.
func (l *Loop) Rebuild() {
	l.state.Rebuild()
	l.afterRebuild()
}

// Resize replaces the bounds, rebuilds and repaints.
func (l *Loop) Resize(b spin.Bounds) error {
	if err := l.state.Resize(b); err != nil {
		return err
	}
	l.afterRebuild()
	return nil
}

// SetDensity changes the node count, rebuilds and repaints.
func (l *Loop) SetDensity(n int) {
	l.state.SetDensity(n)
	l.afterRebuild()
}

// ToggleMode switches the live display and schedules a repaint.
func (l *Loop) ToggleMode() bool {
	if l.derived == nil || !l.state.Clock.ToggleMode() {
		return false
	}
	l.dirty = true
	return true
}

func (l *Loop) afterRebuild() {
	l.history.Reset()
	l.repaint(l.target())
	l.dirty = false
	l.refresh(true)
}

func (l *Loop) repaint(r Renderer) {
	r.Compose(1, l.state.Clock)
	l.draw(r)
}

func (l *Loop) draw(r Renderer) {
	c := l.state.Clock
	for _, e := range l.state.Graph.Edges {
		r.DrawEdge(e, c)
	}
	for _, n := range l.state.Graph.Nodes {
		r.DrawNode(n, c)
	}
}

func (l *Loop) refresh(record bool) {
	l.readout = l.state.Readout()
	if record {
		l.history.Add(l.state.Clock.Frame, l.readout)
	}
	for _, s := range l.sinks {
		l.readout.Publish(s)
	}
}
