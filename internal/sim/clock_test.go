package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/spinnet/internal/metrics"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewClockDefaults(t *testing.T) {
	c := NewClock(Baseline)
	if c.Running {
		t.Error("expected clock to start paused")
	}
	if c.Speed != 1 || c.Density != 15 || c.Scale != 1 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.Mode != Primary {
		t.Errorf("expected primary mode, got %v", c.Mode)
	}
}

func TestSetScaleFloor(t *testing.T) {
	c := NewClock(Extended)
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{0.5, 0.5},
		{0, metrics.MinScale},
		{-3, metrics.MinScale},
	}
	for _, tt := range tests {
		c.SetScale(tt.in)
		if c.Scale != tt.want {
			t.Errorf("SetScale(%v): expected %v, got %v", tt.in, tt.want, c.Scale)
		}
	}
}

func TestEffectiveScale(t *testing.T) {
	b := NewClock(Baseline)
	b.SetScale(3)
	if b.EffectiveScale() != 1 {
		t.Errorf("baseline should ignore scale, got %v", b.EffectiveScale())
	}

	e := NewClock(Extended)
	e.SetScale(3)
	if e.EffectiveScale() != 3 {
		t.Errorf("expected 3, got %v", e.EffectiveScale())
	}
}

func TestParseVariantAndMode(t *testing.T) {
	if v, err := ParseVariant("extended"); err != nil || v != Extended {
		t.Errorf("ParseVariant(extended) = %v, %v", v, err)
	}
	if _, err := ParseVariant("quantum"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
	if m, err := ParseMode("derived"); err != nil || m != Derived {
		t.Errorf("ParseMode(derived) = %v, %v", m, err)
	}
	if _, err := ParseMode("both"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestPointerOnlyWhileRunning(t *testing.T) {
	s, err := NewState(NewClock(Baseline), testBounds, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	n := s.Graph.Nodes[0]
	before := n.Vel
	s.Pointer(r2.Add(n.Pos, r2.Vec{X: 50}))
	if n.Vel != before {
		t.Error("pointer moved a node while paused")
	}

	s.Clock.Toggle()
	s.Pointer(r2.Add(n.Pos, r2.Vec{X: 50}))
	if n.Vel == before {
		t.Error("expected pointer to pull the node while running")
	}
}
