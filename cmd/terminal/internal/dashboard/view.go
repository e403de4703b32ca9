// Package dashboard assembles one live quote screen per connection: the
// polling cycle, the differential display cache and the chart panel, all
// mutated on the view's own UI loop.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/chart"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/clock"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/crossrate"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/display"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/protocol"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/scheduler"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/uiloop"
	"github.com/shubham-shewale/fx-terminal/pkg/market"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// Target is the render target of a view.
type Target interface {
	SendJSON(v interface{})
}

// Fetcher yields one quote batch per call. *source.Adapter implements it.
type Fetcher interface {
	Fetch(ctx context.Context) models.QuoteBatch
}

// Deps are shared by every view of the process.
type Deps struct {
	Clock        clock.Clock
	Fetcher      Fetcher
	Pairs        []crossrate.Pair
	Formatter    *display.Formatter
	Rand         market.Rand
	PollInterval time.Duration
	Chart        chart.Config
	Logger       *zap.Logger
}

type View struct {
	id     string
	target Target
	deps   Deps
	logger *zap.Logger

	loop  *uiloop.Loop
	sched *scheduler.Scheduler
	chart *chart.Renderer

	// owned by loop
	cache   *display.Cache
	watched map[string]bool
}

// NewView starts polling right away and paints the first chart before it
// returns.
func NewView(target Target, deps Deps) (*View, error) {
	if deps.Fetcher == nil {
		return nil, fmt.Errorf("dashboard: no quote fetcher")
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Formatter == nil {
		deps.Formatter = display.NewFormatter(display.DefaultOverrides)
	}
	if deps.Pairs == nil {
		deps.Pairs = crossrate.DefaultPairs
	}
	if deps.Rand == nil {
		deps.Rand = market.NewRand(deps.Clock.Now().UnixNano())
	}

	v := &View{
		id:      uuid.NewString(),
		target:  target,
		deps:    deps,
		loop:    uiloop.New(64),
		cache:   display.NewCache(deps.Formatter),
		watched: make(map[string]bool),
	}
	v.logger = deps.Logger.With(zap.String("view", v.id))
	go v.loop.Run()

	v.chart = chart.NewRenderer(deps.Clock, v.loop, deps.Rand, deps.Chart, v.sendChart, v.logger)
	v.sched = scheduler.New(deps.Clock, v.loop, v.cycle, v.logger)
	if err := v.sched.Start(deps.PollInterval); err != nil {
		v.Close()
		return nil, fmt.Errorf("dashboard: start polling: %w", err)
	}

	v.logger.Debug("View opened")
	return v, nil
}

func (v *View) ID() string { return v.id }

// cycle runs off the UI loop. Only the returned func touches view state.
func (v *View) cycle(ctx context.Context) func() {
	batch := v.deps.Fetcher.Fetch(ctx)
	if batch.Empty() {
		return nil
	}
	derived := crossrate.Derive(batch.FX, batch.Crypto, v.deps.Pairs)

	quotes := make([]models.Quote, 0, len(batch.FX)+len(batch.Crypto)+len(derived))
	quotes = append(quotes, batch.FX...)
	quotes = append(quotes, batch.Crypto...)
	quotes = append(quotes, derived...)

	return func() { v.apply(quotes) }
}

func (v *View) apply(quotes []models.Quote) {
	changed := v.cache.Apply(quotes)

	visible := changed[:0]
	for _, u := range changed {
		if v.watched[u.Symbol] {
			visible = append(visible, u)
		}
	}
	v.sendQuotes(visible)
}

// Watch adds symbols to the view and sends their last known cells.
func (v *View) Watch(symbols []string) {
	v.loop.Post(func() {
		for _, s := range symbols {
			v.watched[s] = true
		}
		v.sendQuotes(v.cache.Snapshot(symbols))
	})
}

func (v *View) Unwatch(symbols []string) {
	v.loop.Post(func() {
		for _, s := range symbols {
			delete(v.watched, s)
		}
	})
}

func (v *View) UnwatchAll() {
	v.loop.Post(func() {
		v.watched = make(map[string]bool)
	})
}

func (v *View) Resize(width, height int) {
	v.chart.OnResize(width, height)
}

// Close tears the view down. Results still in flight are dropped.
func (v *View) Close() {
	if v.sched != nil {
		v.sched.Stop()
	}
	if v.chart != nil {
		v.chart.Close()
	}
	v.loop.Close()
	v.logger.Debug("View closed")
}

func (v *View) sendQuotes(updates []models.Update) {
	if len(updates) == 0 {
		return
	}
	v.target.SendJSON(protocol.WSResponse{Type: protocol.TypeQuotes, Data: updates})
}

func (v *View) sendChart(s *chart.Surface) {
	v.target.SendJSON(protocol.WSResponse{Type: protocol.TypeChart, Data: s})
}
