package display

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// Formatter renders prices with thousands separators and a fixed number of
// decimals chosen per symbol, falling back to the instrument class.
type Formatter struct {
	classDecimals  map[models.Class]int
	symbolDecimals map[string]int
	printer        *message.Printer

	mu      sync.Mutex
	layouts map[int]string
}

// NewFormatter uses 0 decimals for crypto and 3 for FX and derived crosses;
// overrides pins individual symbols.
func NewFormatter(overrides map[string]int) *Formatter {
	sym := make(map[string]int, len(overrides))
	for k, v := range overrides {
		sym[k] = v
	}
	return &Formatter{
		classDecimals: map[models.Class]int{
			models.ClassCrypto:  0,
			models.ClassFX:      3,
			models.ClassDerived: 3,
		},
		symbolDecimals: sym,
		printer:        message.NewPrinter(language.English),
		layouts:        make(map[int]string),
	}
}

// DefaultOverrides are the crypto-in-second-fiat crosses shown to cents.
var DefaultOverrides = map[string]int{
	"BTC_USD": 2,
	"ETH_USD": 2,
}

// Decimals returns the precision used for q.
func (f *Formatter) Decimals(q models.Quote) int {
	if d, ok := f.symbolDecimals[q.Symbol]; ok {
		return d
	}
	if d, ok := f.classDecimals[q.Class]; ok {
		return d
	}
	return 3
}

// Format renders v for q, e.g. 93331.4667 at 2 decimals is "93,331.47".
func (f *Formatter) Format(q models.Quote, v float64) string {
	return f.printer.Sprintf(f.layout(f.Decimals(q)), v)
}

func (f *Formatter) layout(decimals int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.layouts[decimals]
	if !ok {
		l = fmt.Sprintf("%%.%df", decimals)
		f.layouts[decimals] = l
	}
	return l
}
