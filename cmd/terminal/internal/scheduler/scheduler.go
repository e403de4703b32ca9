// Package scheduler drives the fetch-and-process cycle of a view. Cycles run
// on a worker goroutine, their results are applied on the UI loop, and the
// next cycle is armed only after that.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/clock"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/uiloop"
)

type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrNotIdle         = errors.New("scheduler: already started")
	ErrInvalidInterval = errors.New("scheduler: interval must be positive")
)

// Cycle does the blocking part of one tick off the UI loop. It returns the
// work to apply on the UI loop, or nil when there is nothing to show.
type Cycle func(ctx context.Context) (apply func())

// cycleTimeout bounds one fetch so a hung provider cannot wedge the loop.
const cycleTimeout = 10 * time.Second

type Scheduler struct {
	clock  clock.Clock
	ui     uiloop.Poster
	cycle  Cycle
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	interval time.Duration
	timer    clock.Timer
	ticks    int
}

func New(clk clock.Clock, ui uiloop.Poster, cycle Cycle, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{clock: clk, ui: ui, cycle: cycle, logger: logger}
}

// Start moves Idle to Running and dispatches the first cycle right away.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return ErrNotIdle
	}
	s.state = Running
	s.interval = interval
	go s.tick()
	return nil
}

// Stop is terminal. A cycle already in flight completes, but its result is
// dropped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		return
	}
	s.state = Stopped
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) running() bool { return s.State() == Running }

func (s *Scheduler) tick() {
	if !s.running() {
		return
	}
	s.mu.Lock()
	s.timer = nil
	s.ticks++
	n := s.ticks
	s.mu.Unlock()

	apply := s.runCycle(n)

	posted := s.ui.Post(func() {
		if !s.running() {
			return
		}
		if apply != nil {
			s.runApply(n, apply)
		}
		s.arm()
	})
	if !posted {
		// render target is gone; its results are dropped but polling goes on
		// until the owner stops us
		s.arm()
	}
}

func (s *Scheduler) runCycle(n int) (apply func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Poll cycle panicked", zap.Int("tick", n), zap.Any("panic", r))
			apply = nil
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()
	return s.cycle(ctx)
}

func (s *Scheduler) runApply(n int, apply func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Applying poll result panicked", zap.Int("tick", n), zap.Any("panic", r))
		}
	}()
	apply()
}

func (s *Scheduler) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return
	}
	s.timer = s.clock.AfterFunc(s.interval, s.tick)
}
