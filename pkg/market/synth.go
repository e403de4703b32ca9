package market

import (
	"math/rand"
	"sync"

	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// Rand is the randomness the synthesizer and chart draw from.
// for deterministic values in tests
type Rand interface {
	Intn(n int) int
	Float64() float64
	NormFloat64() float64
}

// lockedRand is a seeded *rand.Rand safe for use from several goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a goroutine-safe Rand seeded with seed.
func NewRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) NormFloat64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.NormFloat64()
}

// Instrument describes how to synthesize quotes for one symbol.
type Instrument struct {
	Symbol string
	Class  models.Class
	Base   float64
	// Noise bounds the bid perturbation around Base and the high/low offsets.
	Noise  float64
	Spread float64
	// Proportional makes Spread a fraction of bid instead of an absolute amount.
	Proportional bool
}

// Synthesizer produces quote batches from instrument tables.
type Synthesizer struct {
	rand   Rand
	fx     []Instrument
	crypto []Instrument
}

func NewSynthesizer(rnd Rand, fx, crypto []Instrument) *Synthesizer {
	return &Synthesizer{rand: rnd, fx: fx, crypto: crypto}
}

// Quote synthesizes one quote: bid within Base±Noise, ask above bid by the
// spread, high and low within Noise above and below bid.
func (s *Synthesizer) Quote(in Instrument) models.Quote {
	bid := in.Base + (s.rand.Float64()*2-1)*in.Noise
	spread := in.Spread
	if in.Proportional {
		spread = bid * in.Spread
	}
	high := bid + s.rand.Float64()*in.Noise
	low := bid - s.rand.Float64()*in.Noise
	return models.Quote{
		Symbol: in.Symbol,
		Class:  in.Class,
		Bid:    bid,
		Ask:    bid + spread,
		High:   models.Float(high),
		Low:    models.Float(low),
	}
}

// Batch synthesizes every configured instrument once.
func (s *Synthesizer) Batch() models.QuoteBatch {
	return models.QuoteBatch{FX: s.quotes(s.fx), Crypto: s.quotes(s.crypto)}
}

// Instruments returns the FX and crypto tables followed in order.
func (s *Synthesizer) Instruments() []Instrument {
	out := make([]Instrument, 0, len(s.fx)+len(s.crypto))
	out = append(out, s.fx...)
	return append(out, s.crypto...)
}

func (s *Synthesizer) quotes(ins []Instrument) []models.Quote {
	out := make([]models.Quote, 0, len(ins))
	for _, in := range ins {
		out = append(out, s.Quote(in))
	}
	return out
}
