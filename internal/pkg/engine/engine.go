// Package engine owns the capture state machine and the periodic tick that
// drives data generation. All buffer mutation happens inside Tick, never
// concurrently with itself, so a chart or export read sees either the state
// before a tick or after it, never a torn append.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sensorscope/sensorscope/internal/pkg/logger"
	"github.com/sensorscope/sensorscope/internal/pkg/metrics"
	"github.com/sensorscope/sensorscope/internal/pkg/settings"
	"github.com/sensorscope/sensorscope/internal/pkg/simulate"
	"github.com/sensorscope/sensorscope/internal/pkg/store"
)

// Options configure an Engine.
type Options struct {
	Store    *store.SampleStore
	Registry *settings.Registry
	Metrics  *metrics.Metrics

	// Rand seeds the signal generator; defaults to a time-seeded source.
	Rand *rand.Rand

	// Now is the clock used to stamp samples; defaults to time.Now.
	Now func() time.Time
}

// Engine is the capture state machine. It starts paused; an explicit toggle
// flips it unconditionally and there is no terminal state.
type Engine struct {
	mu        sync.RWMutex
	running   bool
	sessionID string
	ticks     uint64

	store     *store.SampleStore
	registry  *settings.Registry
	metrics   *metrics.Metrics
	generator *simulate.Generator
	now       func() time.Time
}

// New creates an engine in the paused state.
func New(opts Options) *Engine {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:     opts.Store,
		registry:  opts.Registry,
		metrics:   opts.Metrics,
		generator: simulate.NewGenerator(rng),
		now:       now,
	}
}

// IsRunning reports whether capture is active.
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// SessionID returns the ID of the current or most recent capture session,
// or "" before the first start.
func (e *Engine) SessionID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessionID
}

// Ticks returns the number of ticks fired since process start.
func (e *Engine) Ticks() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ticks
}

// Toggle flips the capture state unconditionally and returns the new state.
// Entering Running mints a fresh session ID and drops every context's
// captured axis overlay: the visible window moves forward on the next tick,
// so a range frozen for old data would be stale.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	e.running = !e.running
	running := e.running
	if running {
		e.sessionID = uuid.NewString()
	}
	sessionID := e.sessionID
	e.mu.Unlock()

	if running {
		e.registry.ClearOverlays()
		logger.Info("capture started", "session_id", sessionID)
	} else {
		logger.Info("capture paused", "session_id", sessionID, "buffered", e.store.Len())
	}
	if e.metrics != nil {
		if running {
			e.metrics.CaptureRunning.Set(1)
		} else {
			e.metrics.CaptureRunning.Set(0)
		}
	}
	return running
}

// Tick advances the logical timeline by one step. While running it appends
// one generated sample across every channel as a single atomic store
// mutation; while paused it only advances the counter.
func (e *Engine) Tick() {
	e.mu.Lock()
	e.ticks++
	running := e.running
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.TicksTotal.Inc()
	}
	if !running {
		return
	}

	last, ok := e.store.Latest()
	values := make([]float64, len(e.store.Channels()))
	for ch := range values {
		prev := simulate.Seed()
		if ok {
			prev = last.Values[ch]
		}
		values[ch] = e.generator.Next(prev)
	}
	e.store.Append(e.now(), values)

	if e.metrics != nil {
		e.metrics.SamplesTotal.Inc()
		e.metrics.BufferLength.Set(float64(e.store.Len()))
	}
}

// Run drives Tick on the given cadence until the context is canceled. The
// cadence is a soft periodic tick; missed ticks are not compensated.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("tick loop started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("tick loop stopped", "ticks", e.Ticks())
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Status is the state snapshot surfaced by the status API.
type Status struct {
	Running   bool   `json:"running"`
	SessionID string `json:"sessionId,omitempty"`
	Buffered  int    `json:"buffered"`
	Capacity  int    `json:"capacity"`
	Ticks     uint64 `json:"ticks"`
}

// Status returns the current state snapshot.
func (e *Engine) Status() Status {
	e.mu.RLock()
	running := e.running
	sessionID := e.sessionID
	ticks := e.ticks
	e.mu.RUnlock()

	return Status{
		Running:   running,
		SessionID: sessionID,
		Buffered:  e.store.Len(),
		Capacity:  e.store.Capacity(),
		Ticks:     ticks,
	}
}
