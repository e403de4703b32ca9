package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/generator/internal/generator"
	"github.com/shubham-shewale/fx-terminal/pkg/config"
	"github.com/shubham-shewale/fx-terminal/pkg/market"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize Zap Logger
	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Create Topic (Ensure it exists)
	dialer := &generator.RealKafkaDialer{Dialer: &kafka.Dialer{Timeout: 5 * time.Second}}
	topics := generator.NewTopicCreator(logger, dialer, generator.RealClock{})
	if err := topics.Ensure(ctx, cfg.Kafka.Brokers, generator.TopicSpec{Name: cfg.Kafka.Topic, Partitions: 4}); err != nil {
		logger.Warn("Topic not confirmed, continuing", zap.Error(err))
	}

	// 4. Setup Kafka Writer
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.Hash{}, // same symbol, same partition
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}

	synth := market.NewSynthesizer(market.NewRand(time.Now().UnixNano()), market.DefaultFX, market.DefaultCrypto)
	gen := generator.NewRateGenerator(logger, writer, synth, generator.RealClock{}, cfg.Generator.Interval)

	// 5. Main Generator Loop
	gen.Run(ctx)
	logger.Info("Shutdown signal received")

	// 6. Flush Kafka Buffer
	if err := writer.Close(); err != nil {
		logger.Error("Error closing Kafka writer", zap.Error(err))
	} else {
		logger.Info("Kafka writer closed cleanly")
	}
}
