package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// FrameSource delivers the display-synced frame signal the loop runs on.
type FrameSource interface {
	C() <-chan time.Time
	Stop()
}

type ticker struct{ t *time.Ticker }

// NewTicker returns a frame source firing fps times per second.
func NewTicker(fps int) FrameSource {
	if fps <= 0 {
		fps = 60
	}
	return &ticker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *ticker) C() <-chan time.Time { return t.t.C }
func (t *ticker) Stop()               { t.t.Stop() }

type unpaced struct{ c chan time.Time }

// Unpaced returns a frame source that is always ready, for headless runs.
func Unpaced() FrameSource {
	c := make(chan time.Time)
	close(c)
	return &unpaced{c: c}
}

func (u *unpaced) C() <-chan time.Time { return u.c }
func (u *unpaced) Stop()               {}

// Handle controls a running schedule.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	frames atomic.Int64
	once   sync.Once
	err    error
}

// Start runs task once per frame signal, serially, until ctx is done, the
// handle is cancelled, or task returns false. The next frame is re-armed
// after every frame whatever the task did.
func Start(ctx context.Context, src FrameSource, task func() bool) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer src.Stop()
		for {
			select {
			case <-ctx.Done():
				h.err = ctx.Err()
				return
			default:
			}

			select {
			case <-ctx.Done():
				h.err = ctx.Err()
				return
			case <-src.C():
			}

			h.frames.Add(1)
			if !task() {
				return
			}
		}
	}()

	return h
}

// Cancel stops the schedule. The frame in flight, if any, completes.
func (h *Handle) Cancel() { h.once.Do(h.cancel) }

// Wait blocks until the schedule has stopped. It returns the context error
// when the schedule was cancelled, nil when the task asked to stop.
func (h *Handle) Wait() error {
	<-h.done
	h.Cancel()
	return h.err
}

func (h *Handle) Frames() int64 { return h.frames.Load() }
