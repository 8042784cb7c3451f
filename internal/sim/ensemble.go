package sim

import (
	"context"
	"sync"

	"github.com/san-kum/spinnet/internal/metrics"
	"github.com/san-kum/spinnet/internal/spin"
)

// Run is the outcome of one headless simulation.
type Run struct {
	Seed    int64
	Frames  int
	Readout metrics.Readout
	Stats   spin.Stats
	History *metrics.History
}

// RunHeadless ticks a fresh state for frames steps with no surface attached.
// The clock is copied, so the caller's value is left untouched.
func RunHeadless(ctx context.Context, clock Clock, b spin.Bounds, seed int64, frames int) (*Run, error) {
	clock.Running = true
	s, err := NewState(&clock, b, seed, nil)
	if err != nil {
		return nil, err
	}

	h := metrics.NewHistory(frames + 1)
	h.Add(0, s.Readout())
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Tick()
		h.Add(clock.Frame, s.Readout())
	}

	return &Run{
		Seed:    seed,
		Frames:  clock.Frame,
		Readout: s.Readout(),
		Stats:   s.Graph.Stats(),
		History: h,
	}, nil
}

// Ensemble runs independent headless simulations on consecutive seeds.
type Ensemble struct {
	clock     Clock
	bounds    spin.Bounds
	numRuns   int
	seedStart int64
}

func NewEnsemble(clock Clock, b spin.Bounds, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{clock: clock, bounds: b, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Run, error) {
	results := make([]*Run, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = RunHeadless(ctx, e.clock, e.bounds, e.seedStart+int64(idx), frames)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
