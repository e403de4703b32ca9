package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/repository"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

var ErrMalformedQuote = errors.New("malformed quote")

// Compile-time check to ensure RedisProvider implements RateProvider
var _ RateProvider = (*RedisProvider)(nil)

// RedisProvider serves the latest quotes the processor stored.
type RedisProvider struct {
	store  repository.RateStore
	logger *zap.Logger
}

func NewRedisProvider(store repository.RateStore, logger *zap.Logger) *RedisProvider {
	return &RedisProvider{store: store, logger: logger}
}

func (p *RedisProvider) FetchFXRates(ctx context.Context) ([]models.Quote, error) {
	return p.fetch(ctx, models.ClassFX)
}

func (p *RedisProvider) FetchCryptoRates(ctx context.Context) ([]models.Quote, error) {
	return p.fetch(ctx, models.ClassCrypto)
}

func (p *RedisProvider) fetch(ctx context.Context, class models.Class) ([]models.Quote, error) {
	payloads, err := p.store.GetSnapshots(ctx, class)
	if err != nil {
		return nil, err
	}
	out := make([]models.Quote, 0, len(payloads))
	for _, raw := range payloads {
		q, err := DecodeQuote([]byte(raw))
		if err != nil {
			// one bad instrument does not spoil the batch
			p.logger.Debug("Skipping stored quote", zap.String("class", string(class)), zap.Error(err))
			continue
		}
		q.Class = class
		out = append(out, q)
	}
	return out, nil
}

// wireQuote accepts prices as JSON numbers or numeric strings.
type wireQuote struct {
	Symbol string          `json:"symbol"`
	Bid    json.RawMessage `json:"bid"`
	Ask    json.RawMessage `json:"ask"`
	High   json.RawMessage `json:"high"`
	Low    json.RawMessage `json:"low"`
}

// DecodeQuote parses a stored quote, converting every price to float64.
// Missing or non-numeric bid/ask is ErrMalformedQuote; a high/low that does
// not parse is treated as absent.
func DecodeQuote(b []byte) (models.Quote, error) {
	var w wireQuote
	if err := json.Unmarshal(b, &w); err != nil {
		return models.Quote{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	if w.Symbol == "" {
		return models.Quote{}, fmt.Errorf("%w: missing symbol", ErrMalformedQuote)
	}
	bid, err := parseNumber(w.Bid)
	if err != nil {
		return models.Quote{}, fmt.Errorf("%w: %s bid: %v", ErrMalformedQuote, w.Symbol, err)
	}
	ask, err := parseNumber(w.Ask)
	if err != nil {
		return models.Quote{}, fmt.Errorf("%w: %s ask: %v", ErrMalformedQuote, w.Symbol, err)
	}

	q := models.Quote{Symbol: w.Symbol, Bid: bid, Ask: ask}
	if v, err := parseNumber(w.High); err == nil {
		q.High = models.Float(v)
	}
	if v, err := parseNumber(w.Low); err == nil {
		q.Low = models.Float(v)
	}
	if !q.Valid() {
		return models.Quote{}, fmt.Errorf("%w: %s non-finite price", ErrMalformedQuote, w.Symbol)
	}
	return q, nil
}

func parseNumber(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New("missing")
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
	}
	return strconv.ParseFloat(s, 64)
}
