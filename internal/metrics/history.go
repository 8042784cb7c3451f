package metrics

// Sample is a readout taken at a given frame.
type Sample struct {
	Frame int
	Readout
}

// History keeps the most recent samples up to a fixed capacity.
type History struct {
	samples  []Sample
	capacity int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		samples:  make([]Sample, 0, capacity),
		capacity: capacity,
	}
}

func (h *History) Add(frame int, r Readout) {
	h.samples = append(h.samples, Sample{Frame: frame, Readout: r})
	if len(h.samples) > h.capacity {
		h.samples = h.samples[1:]
	}
}

func (h *History) Len() int { return len(h.samples) }

func (h *History) Reset() { h.samples = h.samples[:0] }

// Samples returns a copy of the retained samples, oldest first.
func (h *History) Samples() []Sample {
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Series extracts one value per sample.
func (h *History) Series(f func(Readout) float64) []float64 {
	out := make([]float64, len(h.samples))
	for i, s := range h.samples {
		out[i] = f(s.Readout)
	}
	return out
}

// Areas is the total area series.
func (h *History) Areas() []float64 {
	return h.Series(func(r Readout) float64 { return r.TotalArea })
}
