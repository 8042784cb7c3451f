package metrics

import (
	"fmt"

	"github.com/san-kum/spinnet/internal/spin"
)

// Readout slot names.
const (
	SlotArea         = "quantumArea"
	SlotVolume       = "quantumVolume"
	SlotEnergy       = "energy"
	SlotDiscreteness = "discreteness"
	SlotCurvature    = "curvature"
	SlotEmergence    = "emergence"
)

// Sink receives formatted readout values by slot name.
type Sink interface {
	Write(slot, text string)
}

// Slot is one formatted readout value.
type Slot struct {
	Name string
	Text string
}

// Slots formats the readout for display. Baseline readouts show area,
// volume and energy in fixed point; extended readouts replace energy with
// discreteness, curvature and emergence and switch to exponent notation for
// quantities that carry Planck factors.
func (r Readout) Slots() []Slot {
	if !r.Extended {
		return []Slot{
			{SlotArea, fmt.Sprintf("%.2f", r.TotalArea)},
			{SlotVolume, fmt.Sprintf("%.2f", r.Volume)},
			{SlotEnergy, fmt.Sprintf("%.2f", r.Energy)},
		}
	}

	small, curv := "%.2f", "%.4f"
	if r.Units == spin.Physical {
		small, curv = "%.2e", "%.2e"
	}
	return []Slot{
		{SlotArea, fmt.Sprintf(small, r.TotalArea)},
		{SlotVolume, fmt.Sprintf(small, r.Volume)},
		{SlotDiscreteness, fmt.Sprintf("%.2f", r.Discreteness)},
		{SlotCurvature, fmt.Sprintf(curv, r.Curvature)},
		{SlotEmergence, fmt.Sprintf("%.1f%%", r.Emergence)},
	}
}

// Publish writes every slot to s. A nil sink is skipped.
func (r Readout) Publish(s Sink) {
	if s == nil {
		return
	}
	for _, slot := range r.Slots() {
		s.Write(slot.Name, slot.Text)
	}
}
