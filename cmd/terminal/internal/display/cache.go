// Package display turns quote batches into the minimal set of cell updates
// a view has to repaint.
package display

import (
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

type key struct {
	symbol string
	field  models.Field
}

// Cache remembers the last text rendered per (symbol, field) and emits an
// update only when the formatted text changes. It is owned by one view and
// must only be used from that view's UI loop.
type Cache struct {
	format *Formatter
	texts  map[key]string
}

func NewCache(format *Formatter) *Cache {
	return &Cache{format: format, texts: make(map[key]string)}
}

// Apply formats bid, ask, high and low of every quote and returns the cells
// whose text differs from the last rendered one. Absent fields are neither
// compared nor emitted. A quote with a non-finite bid or ask is skipped for
// this round.
func (c *Cache) Apply(quotes []models.Quote) []models.Update {
	var out []models.Update
	for _, q := range quotes {
		if q.Symbol == "" || !q.Valid() {
			continue
		}
		out = c.put(out, q, models.FieldBid, &q.Bid)
		out = c.put(out, q, models.FieldAsk, &q.Ask)
		out = c.put(out, q, models.FieldHigh, q.High)
		out = c.put(out, q, models.FieldLow, q.Low)
	}
	return out
}

func (c *Cache) put(out []models.Update, q models.Quote, field models.Field, v *float64) []models.Update {
	if v == nil || !models.Finite(*v) {
		return out
	}
	text := c.format.Format(q, *v)
	k := key{symbol: q.Symbol, field: field}
	if prev, ok := c.texts[k]; ok && prev == text {
		return out
	}
	c.texts[k] = text
	return append(out, models.Update{Symbol: q.Symbol, Field: field, Text: text})
}

// Snapshot returns the current text of every cached cell of symbols, in
// field order. It is used to paint a view that starts watching a symbol.
func (c *Cache) Snapshot(symbols []string) []models.Update {
	var out []models.Update
	for _, s := range symbols {
		for _, f := range fieldOrder {
			if text, ok := c.texts[key{symbol: s, field: f}]; ok {
				out = append(out, models.Update{Symbol: s, Field: f, Text: text})
			}
		}
	}
	return out
}

// Text returns the cached text of one cell.
func (c *Cache) Text(symbol string, field models.Field) (string, bool) {
	t, ok := c.texts[key{symbol: symbol, field: field}]
	return t, ok
}

var fieldOrder = []models.Field{models.FieldBid, models.FieldAsk, models.FieldHigh, models.FieldLow}
