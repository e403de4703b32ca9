// Package source hides where quotes come from: a live rate provider when one
// is configured, the synthetic generator otherwise.
package source

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/pkg/market"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// RateProvider is a live market-data module.
type RateProvider interface {
	FetchFXRates(ctx context.Context) ([]models.Quote, error)
	FetchCryptoRates(ctx context.Context) ([]models.Quote, error)
}

type Adapter struct {
	live   RateProvider
	synth  *market.Synthesizer
	logger *zap.Logger
}

// NewAdapter wraps live, or synth when live is nil.
func NewAdapter(live RateProvider, synth *market.Synthesizer, logger *zap.Logger) *Adapter {
	return &Adapter{live: live, synth: synth, logger: logger}
}

// Fetch returns one batch. A failing live fetch yields an empty batch, never
// an error: callers skip the round.
func (a *Adapter) Fetch(ctx context.Context) models.QuoteBatch {
	if a.live == nil {
		if a.synth == nil {
			return models.QuoteBatch{}
		}
		return a.synth.Batch()
	}

	batch, err := a.fetchLive(ctx)
	if err != nil {
		a.logger.Warn("Rate fetch failed, skipping tick", zap.Error(err))
		return models.QuoteBatch{}
	}
	return batch
}

func (a *Adapter) fetchLive(ctx context.Context) (batch models.QuoteBatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rate provider panic: %v", r)
		}
	}()

	fx, err := a.live.FetchFXRates(ctx)
	if err != nil {
		return models.QuoteBatch{}, fmt.Errorf("fx rates: %w", err)
	}
	crypto, err := a.live.FetchCryptoRates(ctx)
	if err != nil {
		return models.QuoteBatch{}, fmt.Errorf("crypto rates: %w", err)
	}

	return models.QuoteBatch{
		FX:     a.normalize(fx, models.ClassFX),
		Crypto: a.normalize(crypto, models.ClassCrypto),
	}, nil
}

// normalize stamps the batch class and drops instruments with unusable prices.
func (a *Adapter) normalize(in []models.Quote, class models.Class) []models.Quote {
	out := make([]models.Quote, 0, len(in))
	for _, q := range in {
		if q.Symbol == "" || !q.Valid() {
			a.logger.Debug("Dropping malformed quote", zap.String("symbol", q.Symbol))
			continue
		}
		q.Class = class
		q.High = finiteOrNil(q.High)
		q.Low = finiteOrNil(q.Low)
		out = append(out, q)
	}
	return out
}

func finiteOrNil(v *float64) *float64 {
	if v == nil || !models.Finite(*v) {
		return nil
	}
	return v
}
