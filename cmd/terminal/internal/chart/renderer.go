// Package chart draws the candlestick panel of a view. Resize bursts are
// coalesced into one full redraw after a quiet period.
package chart

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/clock"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/uiloop"
	"github.com/shubham-shewale/fx-terminal/pkg/market"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

type Config struct {
	Series      SeriesSpec
	QuietPeriod time.Duration
	Width       int
	Height      int
}

// Sink receives every new surface. Redraws deliver on the UI loop.
type Sink func(*Surface)

type Renderer struct {
	clock  clock.Clock
	ui     uiloop.Poster
	rnd    market.Rand
	cfg    Config
	sink   Sink
	logger *zap.Logger

	mu            sync.Mutex
	width, height int
	timer         clock.Timer
	pendingSeq    uint64
	closed        bool
	surface       *Surface
	generation    uint64
}

// NewRenderer draws the first surface before returning.
func NewRenderer(clk clock.Clock, ui uiloop.Poster, rnd market.Rand, cfg Config, sink Sink, logger *zap.Logger) *Renderer {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{
		clock:  clk,
		ui:     ui,
		rnd:    rnd,
		cfg:    cfg,
		sink:   sink,
		logger: logger,
		width:  cfg.Width,
		height: cfg.Height,
	}
	r.RenderNow(r.freshSeries())
	return r
}

// OnResize records the new viewport and restarts the quiet period. Only
// the last call of a burst leads to a redraw.
func (r *Renderer) OnResize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.pendingSeq++
	seq := r.pendingSeq
	r.timer = r.clock.AfterFunc(r.cfg.QuietPeriod, func() { r.fire(seq) })
}

func (r *Renderer) fire(seq uint64) {
	r.mu.Lock()
	if r.closed || seq != r.pendingSeq {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.mu.Unlock()

	if !r.ui.Post(func() { r.RenderNow(r.freshSeries()) }) {
		r.logger.Debug("Chart redraw dropped, view closed")
	}
}

// RenderNow throws the current surface away and builds a new one from bars.
func (r *Renderer) RenderNow(bars []models.Bar) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.generation++
	s := layout(r.cfg.Series.Symbol, bars, r.width, r.height)
	s.Generation = r.generation
	r.surface = s
	r.mu.Unlock()

	if r.sink != nil {
		r.sink(s)
	}
}

// Surface returns the current drawing.
func (r *Renderer) Surface() *Surface {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface
}

// Close cancels a pending redraw. Later resizes are ignored.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Renderer) freshSeries() []models.Bar {
	return Series(r.rnd, r.cfg.Series, r.clock.Now())
}
