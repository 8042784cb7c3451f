package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/spinnet/internal/spin"
)

func edges(spins ...float64) []*spin.Edge {
	out := make([]*spin.Edge, len(spins))
	for i, j := range spins {
		out[i] = &spin.Edge{A: &spin.Node{}, B: &spin.Node{}, Spin: j}
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func TestRefreshEmpty(t *testing.T) {
	r := Refresh(nil, Params{Density: 15, Scale: 1, Extended: true})

	if r.TotalArea != 0 {
		t.Errorf("expected zero area, got %f", r.TotalArea)
	}
	if r.Curvature != 1 {
		t.Errorf("expected guarded curvature 1, got %f", r.Curvature)
	}
	for name, v := range map[string]float64{
		"volume": r.Volume, "energy": r.Energy, "discreteness": r.Discreteness,
		"curvature": r.Curvature, "emergence": r.Emergence,
	} {
		if !finite(v) {
			t.Errorf("%s not finite: %f", name, v)
		}
	}
}

func TestRefreshBaseline(t *testing.T) {
	es := edges(1, 2)
	r := Refresh(es, Params{Density: 15, Scale: 1, Frame: 10})

	area := spin.AreaOf(1) + spin.AreaOf(2)
	if math.Abs(r.TotalArea-area) > 1e-9 {
		t.Errorf("expected area %f, got %f", area, r.TotalArea)
	}
	if math.Abs(r.Volume-math.Pow(area, 1.5)*0.1) > 1e-9 {
		t.Errorf("unexpected volume %f", r.Volume)
	}
	energy := area * (1 + math.Sin(0.5)*0.2)
	if math.Abs(r.Energy-energy) > 1e-9 {
		t.Errorf("expected energy %f, got %f", energy, r.Energy)
	}
}

func TestRefreshExtended(t *testing.T) {
	es := edges(0.5, 0.5, 2.5)
	r := Refresh(es, Params{Density: 20, Scale: 0.5, Extended: true})

	if math.Abs(r.Discreteness-2.5) > 1e-12 {
		t.Errorf("expected discreteness 2.5, got %f", r.Discreteness)
	}
	if math.Abs(r.Curvature-1/math.Sqrt(r.TotalArea)) > 1e-12 {
		t.Errorf("unexpected curvature %f", r.Curvature)
	}
	if math.Abs(r.Emergence-20) > 1e-12 {
		t.Errorf("expected emergence 20, got %f", r.Emergence)
	}
}

func TestRefreshDegenerateScale(t *testing.T) {
	for _, scale := range []float64{0, -1, math.NaN()} {
		r := Refresh(edges(1), Params{Density: 15, Scale: scale, Extended: true})
		if !finite(r.Emergence) || r.Emergence > 100 {
			t.Errorf("scale %v: emergence %f", scale, r.Emergence)
		}
		if !finite(r.Discreteness) {
			t.Errorf("scale %v: discreteness %f", scale, r.Discreteness)
		}
	}

	r := Refresh(edges(1), Params{Density: 0, Scale: 1, Extended: true})
	if r.Discreteness != 0 {
		t.Errorf("expected zero discreteness at zero density, got %f", r.Discreteness)
	}
}

func TestRefreshPhysicalUnits(t *testing.T) {
	es := edges(1)
	nat := Refresh(es, Params{Density: 15, Scale: 1, Extended: true})
	phys := Refresh(es, Params{Density: 15, Scale: 1, Units: spin.Physical, Extended: true})

	l2 := spin.PlanckLength * spin.PlanckLength
	if math.Abs(phys.TotalArea/l2-nat.TotalArea) > 1e-9 {
		t.Errorf("physical area %e mismatch", phys.TotalArea)
	}
	if math.Abs(phys.Volume/(l2*spin.PlanckLength)-nat.Volume) > 1e-6 {
		t.Errorf("physical volume %e mismatch", phys.Volume)
	}
}

func TestRefreshEnergyIgnoresUnits(t *testing.T) {
	es := edges(1, 2.5)
	nat := Refresh(es, Params{Density: 15, Scale: 1, Frame: 7, Extended: true})
	phys := Refresh(es, Params{Density: 15, Scale: 1, Frame: 7, Units: spin.Physical, Extended: true})
	if math.Abs(nat.Energy-phys.Energy) > 1e-9 {
		t.Errorf("energy changed with units: %f vs %e", nat.Energy, phys.Energy)
	}
}

func TestRefreshBaselineStaysNatural(t *testing.T) {
	es := edges(1, 2.5)
	nat := Refresh(es, Params{Density: 15, Scale: 1, Frame: 7})
	phys := Refresh(es, Params{Density: 15, Scale: 1, Frame: 7, Units: spin.Physical})
	if phys != nat {
		t.Errorf("baseline readout changed with physical units: %+v vs %+v", phys, nat)
	}
	if phys.Units != spin.Natural {
		t.Errorf("expected natural units on baseline, got %v", phys.Units)
	}
	for _, s := range phys.Slots() {
		if s.Text == "0.00" {
			t.Errorf("slot %s collapsed to zero", s.Name)
		}
	}
}

func TestRefreshPure(t *testing.T) {
	es := edges(1, 1.5, 2)
	p := Params{Density: 15, Scale: 1, Frame: 3}
	a := Refresh(es, p)
	b := Refresh(es, p)
	if a != b {
		t.Errorf("refresh not repeatable: %+v vs %+v", a, b)
	}
	if es[0].Spin != 1 {
		t.Error("refresh mutated edges")
	}
}

type mapSink map[string]string

func (m mapSink) Write(slot, text string) { m[slot] = text }

func TestSlotsBaseline(t *testing.T) {
	r := Refresh(edges(1), Params{Density: 15, Scale: 1})
	sink := mapSink{}
	r.Publish(sink)

	if len(sink) != 3 {
		t.Fatalf("expected 3 slots, got %v", sink)
	}
	if sink[SlotArea] != "8.44" {
		t.Errorf("expected area 8.44, got %q", sink[SlotArea])
	}
	if _, ok := sink[SlotCurvature]; ok {
		t.Error("baseline should not publish curvature")
	}
}

func TestSlotsExtended(t *testing.T) {
	r := Refresh(edges(1), Params{Density: 10, Scale: 1, Extended: true, Units: spin.Physical})
	sink := mapSink{}
	r.Publish(sink)

	if _, ok := sink[SlotEnergy]; ok {
		t.Error("extended should not publish energy")
	}
	if sink[SlotDiscreteness] != "10.00" {
		t.Errorf("expected discreteness 10.00, got %q", sink[SlotDiscreteness])
	}
	if sink[SlotEmergence] != "5.0%" {
		t.Errorf("expected emergence 5.0%%, got %q", sink[SlotEmergence])
	}
	if sink[SlotArea] != "2.20e-69" {
		t.Errorf("expected exponent notation, got %q", sink[SlotArea])
	}

	r.Publish(nil)
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Add(i, Readout{TotalArea: float64(i)})
	}

	if h.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", h.Len())
	}
	areas := h.Areas()
	if areas[0] != 3 || areas[2] != 5 {
		t.Errorf("unexpected series %v", areas)
	}
	if h.Samples()[0].Frame != 3 {
		t.Errorf("expected oldest frame 3, got %d", h.Samples()[0].Frame)
	}

	h.Reset()
	if h.Len() != 0 {
		t.Error("reset should empty history")
	}
}
