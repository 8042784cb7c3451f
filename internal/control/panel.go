package control

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/sim"
)

var (
	ErrUnknownInput = errors.New("unknown input")
	ErrKindMismatch = errors.New("input kind mismatch")
	ErrNotAvailable = errors.New("input not available")
)

// Input names.
const (
	PlayPause = "playPause"
	Reset     = "reset"
	Speed     = "speed"
	Nodes     = "nodes"
	Hbar      = "hbar"
	Mode      = "mode"
)

type Kind int

const (
	Trigger Kind = iota
	Numeric
	Choice
)

// Input describes one named control.
type Input struct {
	Name     string
	Label    string
	Kind     Kind
	Min, Max float64
	Step     float64
	Format   string
	Choices  []string
}

var inputs = []Input{
	{Name: PlayPause, Label: "Play/Pause", Kind: Trigger},
	{Name: Reset, Label: "Reset", Kind: Trigger},
	{Name: Speed, Label: "Speed", Kind: Numeric, Min: 0.1, Max: 3, Step: 0.1, Format: "%.1fx"},
	{Name: Nodes, Label: "Nodes", Kind: Numeric, Min: 5, Max: 50, Step: 1, Format: "%.0f"},
	{Name: Hbar, Label: "ħ scale", Kind: Numeric, Min: 0.1, Max: 2, Step: 0.1, Format: "%.1f"},
	{Name: Mode, Label: "Display", Kind: Choice, Choices: []string{sim.Primary.String(), sim.Derived.String()}},
}

func extendedOnly(name string) bool { return name == Hbar || name == Mode }

// Panel binds named inputs to a loop and collects the formatted readout.
// Extended-only inputs are absent when the loop runs the baseline variant.
type Panel struct {
	loop   *sim.Loop
	log    *slog.Logger
	inputs []Input
	index  map[string]int

	mu    sync.RWMutex
	slots map[string]string
	order []string
}

func NewPanel(loop *sim.Loop, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Panel{
		loop:  loop,
		log:   logger,
		index: make(map[string]int),
		slots: make(map[string]string),
	}
	extended := loop.Clock().Variant == sim.Extended
	for _, in := range inputs {
		if extendedOnly(in.Name) && !extended {
			continue
		}
		p.index[in.Name] = len(p.inputs)
		p.inputs = append(p.inputs, in)
	}
	loop.AddSink(p)
	return p
}

// Inputs lists the bound inputs in display order.
func (p *Panel) Inputs() []Input { return p.inputs }

// Numerics lists the names of the adjustable numeric inputs.
func (p *Panel) Numerics() []string {
	var out []string
	for _, in := range p.inputs {
		if in.Kind == Numeric {
			out = append(out, in.Name)
		}
	}
	return out
}

func (p *Panel) lookup(name string, kind Kind) (Input, error) {
	i, ok := p.index[name]
	if !ok {
		p.log.Warn("control not bound", "input", name)
		return Input{}, fmt.Errorf("%w: %s", ErrUnknownInput, name)
	}
	in := p.inputs[i]
	if in.Kind != kind {
		return Input{}, fmt.Errorf("%w: %s", ErrKindMismatch, name)
	}
	return in, nil
}

// Fire activates a trigger input.
func (p *Panel) Fire(name string) error {
	if _, err := p.lookup(name, Trigger); err != nil {
		return err
	}
	switch name {
	case PlayPause:
		p.loop.Clock().Toggle()
		p.log.Debug("play/pause", "running", p.loop.Clock().Running)
	case Reset:
		p.loop.Rebuild()
		p.log.Debug("reset", "nodes", p.loop.Clock().Density)
	}
	return nil
}

// Set assigns a numeric input, clamped to its range and snapped to its step.
// It returns the value actually applied.
func (p *Panel) Set(name string, v float64) (float64, error) {
	in, err := p.lookup(name, Numeric)
	if err != nil {
		return 0, err
	}
	v = clamp(math.Round(v/in.Step)*in.Step, in.Min, in.Max)

	c := p.loop.Clock()
	switch name {
	case Speed:
		c.SetSpeed(v)
	case Nodes:
		if int(v) != c.Density {
			p.loop.SetDensity(int(v))
		}
	case Hbar:
		c.SetScale(v)
		p.loop.MarkDirty()
	}
	p.log.Debug("control changed", "input", name, "value", v)
	return v, nil
}

// Nudge moves a numeric input by steps increments.
func (p *Panel) Nudge(name string, steps int) (float64, error) {
	in, err := p.lookup(name, Numeric)
	if err != nil {
		return 0, err
	}
	cur, _ := p.Value(name)
	return p.Set(name, cur+float64(steps)*in.Step)
}

// Value reports the current value of a numeric input.
func (p *Panel) Value(name string) (float64, error) {
	if _, err := p.lookup(name, Numeric); err != nil {
		return 0, err
	}
	c := p.loop.Clock()
	switch name {
	case Speed:
		return c.Speed, nil
	case Nodes:
		return float64(c.Density), nil
	default:
		return c.Scale, nil
	}
}

// Label formats the current value of a numeric input for display.
func (p *Panel) Label(name string) string {
	v, err := p.Value(name)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(p.inputs[p.index[name]].Format, v)
}

// Choose selects a value of a choice input.
func (p *Panel) Choose(name, choice string) error {
	if _, err := p.lookup(name, Choice); err != nil {
		return err
	}
	m, err := sim.ParseMode(choice)
	if err != nil {
		return err
	}
	if p.loop.Clock().Mode == m {
		return nil
	}
	if !p.loop.ToggleMode() {
		return fmt.Errorf("%w: %s display", ErrNotAvailable, choice)
	}
	p.log.Debug("display mode", "mode", m)
	return nil
}

// Write implements metrics.Sink.
func (p *Panel) Write(slot, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.slots[slot]; !ok {
		p.order = append(p.order, slot)
	}
	p.slots[slot] = text
}

// Slot returns the last text written to slot.
func (p *Panel) Slot(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.slots[name]
	return s, ok
}

// Slots returns the readout slots in the order they were first written.
func (p *Panel) Slots() []metrics.Slot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]metrics.Slot, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, metrics.Slot{Name: name, Text: p.slots[name]})
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
