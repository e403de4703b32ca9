package generator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/pkg/market"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// RateGenerator publishes one synthetic quote per instrument every interval.
type RateGenerator struct {
	logger      *zap.Logger
	writer      KafkaWriter
	synth       *market.Synthesizer
	clock       Clock
	interval    time.Duration
	seqCounters map[string]int64
}

func NewRateGenerator(
	logger *zap.Logger,
	writer KafkaWriter,
	synth *market.Synthesizer,
	clock Clock,
	interval time.Duration,
) *RateGenerator {
	if interval <= 0 {
		interval = time.Second
	}
	return &RateGenerator{
		logger:      logger,
		writer:      writer,
		synth:       synth,
		clock:       clock,
		interval:    interval,
		seqCounters: make(map[string]int64),
	}
}

func (g *RateGenerator) Run(ctx context.Context) {
	g.logger.Info("Generator Started",
		zap.Strings("symbols", market.Symbols(g.synth.Instruments())),
		zap.Duration("interval", g.interval))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			msgs := g.tick()
			if len(msgs) == 0 {
				g.clock.Sleep(g.interval)
				continue
			}

			if err := g.writer.WriteMessages(ctx, msgs...); err != nil {
				g.logger.Error("Kafka Write Error", zap.Error(err))
			} else {
				g.logger.Debug("Sent rates", zap.Int("count", len(msgs)))
			}

			g.clock.Sleep(g.interval)
		}
	}
}

func (g *RateGenerator) tick() []kafka.Message {
	batch := g.synth.Batch()
	now := g.clock.Now().UnixMicro()

	quotes := append(batch.FX, batch.Crypto...)
	msgs := make([]kafka.Message, 0, len(quotes))
	for _, q := range quotes {
		g.seqCounters[q.Symbol]++
		update := models.RateUpdate{
			Quote:     q,
			Timestamp: now,
			SeqID:     g.seqCounters[q.Symbol],
		}

		payload, err := json.Marshal(update)
		if err != nil {
			g.logger.Error("JSON Marshal Error", zap.Error(err), zap.String("symbol", q.Symbol))
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(q.Symbol), // Key ensures partition ordering
			Value: payload,
		})
	}
	return msgs
}
