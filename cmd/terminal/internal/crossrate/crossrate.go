// Package crossrate derives synthetic instruments from two fetched quotes.
package crossrate

import (
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// Pair declares Symbol = Crypto / FX, where Crypto is priced in the FX
// quote currency (BTC_JPY / USD_JPY = BTC_USD).
type Pair struct {
	Symbol string
	Crypto string
	FX     string
}

// DefaultPairs are the crosses shown on the dashboard.
var DefaultPairs = []Pair{
	{Symbol: "BTC_USD", Crypto: "BTC_JPY", FX: "USD_JPY"},
	{Symbol: "ETH_USD", Crypto: "ETH_JPY", FX: "USD_JPY"},
}

// Symbols lists the derived symbols of pairs.
func Symbols(pairs []Pair) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Symbol)
	}
	return out
}

// Derive computes every pair whose legs are both present. Bid divides by the
// FX ask and ask by the FX bid, so the derived spread is never narrower than
// the inputs allow. Pairs with a missing leg or a non-positive FX side are
// skipped. Derived quotes carry no high or low.
func Derive(fx, crypto []models.Quote, pairs []Pair) []models.Quote {
	if len(fx) == 0 || len(crypto) == 0 {
		return nil
	}
	fxBySym := index(fx)
	cryptoBySym := index(crypto)

	out := make([]models.Quote, 0, len(pairs))
	for _, p := range pairs {
		c, ok := cryptoBySym[p.Crypto]
		if !ok {
			continue
		}
		f, ok := fxBySym[p.FX]
		if !ok || f.Bid <= 0 || f.Ask <= 0 {
			continue
		}
		q := models.Quote{
			Symbol: p.Symbol,
			Class:  models.ClassDerived,
			Bid:    c.Bid / f.Ask,
			Ask:    c.Ask / f.Bid,
		}
		if !q.Valid() {
			continue
		}
		out = append(out, q)
	}
	return out
}

func index(qs []models.Quote) map[string]models.Quote {
	m := make(map[string]models.Quote, len(qs))
	for _, q := range qs {
		m[q.Symbol] = q
	}
	return m
}
