package chart

import (
	"time"

	"github.com/shubham-shewale/fx-terminal/pkg/market"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// SeriesSpec describes the trailing window a chart shows.
type SeriesSpec struct {
	Symbol   string
	Base     float64
	Bars     int
	Interval time.Duration
}

// Series builds spec.Bars candles ending at end as a random walk from
// spec.Base. Each close moves by N(0,1)*0.05, open sits half a move back,
// and the wicks reach up to 0.03 past the close.
func Series(rnd market.Rand, spec SeriesSpec, end time.Time) []models.Bar {
	if spec.Bars <= 0 {
		return nil
	}
	start := end.Add(-time.Duration(spec.Bars) * spec.Interval)

	bars := make([]models.Bar, spec.Bars)
	price := spec.Base
	for i := range bars {
		change := rnd.NormFloat64() * 0.05
		price += change
		bars[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * spec.Interval).UnixMilli(),
			Open:      price - change*0.5,
			High:      price + rnd.Float64()*0.03,
			Low:       price - rnd.Float64()*0.03,
			Close:     price,
			Volume:    int64(100 + rnd.Intn(900)),
		}
	}
	return bars
}
