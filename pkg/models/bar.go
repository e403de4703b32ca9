package models

// Bar is one OHLCV candle.
type Bar struct {
	Timestamp int64   `json:"t"` // unix millis of the bar open
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}
