package models

import "math"

// Class tells which batch a quote came from and drives its display precision.
type Class string

const (
	ClassFX      Class = "fx"
	ClassCrypto  Class = "crypto"
	ClassDerived Class = "derived"
)

// Quote is a priced instrument snapshot. High and Low are nil when the
// field does not apply (derived quotes never carry them).
type Quote struct {
	Symbol string   `json:"symbol"`
	Class  Class    `json:"class"`
	Bid    float64  `json:"bid"`
	Ask    float64  `json:"ask"`
	High   *float64 `json:"high,omitempty"`
	Low    *float64 `json:"low,omitempty"`
}

// Valid reports whether bid and ask are finite numbers. Ordering of bid and
// ask is not checked.
func (q Quote) Valid() bool {
	return Finite(q.Bid) && Finite(q.Ask)
}

// QuoteBatch is the result of one fetch. An empty side means that source
// produced nothing this tick.
type QuoteBatch struct {
	FX     []Quote `json:"fx"`
	Crypto []Quote `json:"crypto"`
}

func (b QuoteBatch) Empty() bool { return len(b.FX) == 0 && len(b.Crypto) == 0 }

// Field names a rendered quote column.
type Field string

const (
	FieldBid  Field = "bid"
	FieldAsk  Field = "ask"
	FieldHigh Field = "high"
	FieldLow  Field = "low"
)

// Update is one changed cell of the quote table.
type Update struct {
	Symbol string `json:"symbol"`
	Field  Field  `json:"field"`
	Text   string `json:"text"`
}

// RateUpdate is the feed envelope written to Kafka by the generator.
type RateUpdate struct {
	Quote     Quote `json:"quote"`
	Timestamp int64 `json:"timestamp"` // unix micro
	SeqID     int64 `json:"seq_id"`    // monotonic counter per symbol
}

// Float returns a pointer to v, for optional quote fields.
func Float(v float64) *float64 { return &v }

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
