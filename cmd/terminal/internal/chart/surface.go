package chart

import (
	"math"

	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// Candle is one bar laid out in viewport pixels, origin top-left.
type Candle struct {
	X          float64 `json:"x"`
	Width      float64 `json:"w"`
	BodyTop    float64 `json:"body_top"`
	BodyBottom float64 `json:"body_bottom"`
	WickTop    float64 `json:"wick_top"`
	WickBottom float64 `json:"wick_bottom"`
	Up         bool    `json:"up"`
}

// Surface is a complete chart drawing. A redraw always replaces it whole.
type Surface struct {
	Generation uint64       `json:"generation"`
	Symbol     string       `json:"symbol"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Min        float64      `json:"min"`
	Max        float64      `json:"max"`
	Bars       []models.Bar `json:"bars"`
	Candles    []Candle     `json:"candles"`
}

const bodyRatio = 0.7

func layout(symbol string, bars []models.Bar, width, height int) *Surface {
	s := &Surface{Symbol: symbol, Width: width, Height: height, Bars: bars}
	if len(bars) == 0 {
		return s
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range bars {
		lo = math.Min(lo, b.Low)
		hi = math.Max(hi, b.High)
	}
	if hi <= lo {
		hi = lo + 1
	}
	s.Min, s.Max = lo, hi

	y := func(p float64) float64 {
		return (hi - p) / (hi - lo) * float64(height)
	}
	slot := float64(width) / float64(len(bars))

	s.Candles = make([]Candle, len(bars))
	for i, b := range bars {
		s.Candles[i] = Candle{
			X:          float64(i)*slot + slot*(1-bodyRatio)/2,
			Width:      slot * bodyRatio,
			BodyTop:    y(math.Max(b.Open, b.Close)),
			BodyBottom: y(math.Min(b.Open, b.Close)),
			WickTop:    y(b.High),
			WickBottom: y(b.Low),
			Up:         b.Close >= b.Open,
		}
	}
	return s
}
