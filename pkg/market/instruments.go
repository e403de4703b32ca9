package market

import "github.com/shubham-shewale/fx-terminal/pkg/models"

// DefaultFX is the FX table of the demo feed.
var DefaultFX = []Instrument{
	{Symbol: "USD_JPY", Class: models.ClassFX, Base: 150.00, Noise: 0.2, Spread: 0.003},
	{Symbol: "EUR_JPY", Class: models.ClassFX, Base: 162.50, Noise: 0.25, Spread: 0.005},
	{Symbol: "EUR_USD", Class: models.ClassFX, Base: 1.085, Noise: 0.002, Spread: 0.00002},
	{Symbol: "GBP_JPY", Class: models.ClassFX, Base: 190.20, Noise: 0.3, Spread: 0.009},
}

// DefaultCrypto is the crypto table of the demo feed, priced in JPY.
var DefaultCrypto = []Instrument{
	{Symbol: "BTC_JPY", Class: models.ClassCrypto, Base: 14_000_000, Noise: 20_000, Spread: 100},
	{Symbol: "ETH_JPY", Class: models.ClassCrypto, Base: 520_000, Noise: 1_500, Spread: 20},
}

// Symbols lists the symbols of the given tables.
func Symbols(tables ...[]Instrument) []string {
	var out []string
	for _, t := range tables {
		for _, in := range t {
			out = append(out, in.Symbol)
		}
	}
	return out
}
