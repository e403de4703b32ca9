package processor_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/cmd/processor/internal/processor"
	"github.com/shubham-shewale/fx-terminal/cmd/processor/internal/testutils"
	"github.com/shubham-shewale/fx-terminal/pkg/config"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

func encode(t *testing.T, updates ...models.RateUpdate) []kafka.Message {
	t.Helper()
	var msgs []kafka.Message
	for _, u := range updates {
		val, err := json.Marshal(u)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(u.Quote.Symbol), Value: val})
	}
	return msgs
}

func fx(sym string, bid float64, seq int64) models.RateUpdate {
	return models.RateUpdate{Quote: models.Quote{Symbol: sym, Class: models.ClassFX, Bid: bid, Ask: bid + 0.003}, SeqID: seq}
}

func TestProcessor_WorkerLogic(t *testing.T) {
	btc := models.RateUpdate{Quote: models.Quote{Symbol: "BTC_JPY", Class: models.ClassCrypto, Bid: 14000000, Ask: 14000100}, SeqID: 1}
	msgs := encode(t,
		fx("USD_JPY", 150.0, 1),
		fx("USD_JPY", 150.0, 1), // duplicate
		fx("USD_JPY", 150.1, 2),
		btc,
	)

	mockReader := &testutils.MockKafkaReader{Messages: msgs}
	mockRedis := testutils.NewMockRedisClient()

	cfg := &config.Config{}
	cfg.Processor.NumWorkers = 2

	proc := processor.NewProcessor(cfg, zap.NewNop(), mockRedis, mockReader)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := proc.Run(ctx); err != nil {
		t.Logf("Processor stopped: %v", err)
	}

	pipeline := mockRedis.PipelineSpy
	pipeline.Mu.Lock()
	execs := pipeline.ExecCount
	pipeline.Mu.Unlock()

	if execs != 3 {
		t.Errorf("Expected 3 pipeline executions, got %d", execs)
	}
	if n := pipeline.Count("SET quote:fx:USD_JPY"); n != 2 {
		t.Errorf("Expected 2 USD_JPY writes, got %d", n)
	}
	if n := pipeline.Count("SET quote:crypto:BTC_JPY"); n != 1 {
		t.Errorf("Expected 1 BTC_JPY write, got %d", n)
	}
	if n := pipeline.Count("SADD quotes:crypto BTC_JPY"); n != 1 {
		t.Errorf("Expected BTC_JPY indexed under crypto, got %d", n)
	}
}

func TestProcessor_InvalidJSON(t *testing.T) {
	msgs := []kafka.Message{
		{Key: []byte("USD_JPY"), Value: []byte("{broken-json")},
	}

	mockReader := &testutils.MockKafkaReader{Messages: msgs}
	mockRedis := testutils.NewMockRedisClient()

	proc := processor.NewProcessor(&config.Config{Processor: config.ProcessorConfig{NumWorkers: 1}}, zap.NewNop(), mockRedis, mockReader)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	proc.Run(ctx)

	if mockRedis.PipelineSpy.ExecCount > 0 {
		t.Error("Should not execute Redis commands for invalid JSON")
	}
}

func TestProcessor_RejectsDerivedClass(t *testing.T) {
	derived := models.RateUpdate{Quote: models.Quote{Symbol: "BTC_USD", Class: models.ClassDerived, Bid: 1, Ask: 2}, SeqID: 1}
	mockReader := &testutils.MockKafkaReader{Messages: encode(t, derived)}
	mockRedis := testutils.NewMockRedisClient()

	proc := processor.NewProcessor(&config.Config{Processor: config.ProcessorConfig{NumWorkers: 1}}, zap.NewNop(), mockRedis, mockReader)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	proc.Run(ctx)

	if mockRedis.PipelineSpy.ExecCount > 0 {
		t.Error("Derived quotes are computed by the terminal and must not be stored")
	}
}

func TestProcessor_FailedWriteIsRetriedBySameSeq(t *testing.T) {
	// A failed pipeline does not advance lastSeq, so a redelivery of the same SeqID is written.
	msgs := encode(t, fx("USD_JPY", 150.0, 1), fx("USD_JPY", 150.0, 1))
	mockReader := &testutils.MockKafkaReader{Messages: msgs}
	mockRedis := testutils.NewMockRedisClient()
	mockRedis.PipelineSpy.FailExec = true

	proc := processor.NewProcessor(&config.Config{Processor: config.ProcessorConfig{NumWorkers: 1}}, zap.NewNop(), mockRedis, mockReader)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	proc.Run(ctx)

	if mockRedis.PipelineSpy.ExecCount != 2 {
		t.Errorf("Expected both deliveries attempted, got %d", mockRedis.PipelineSpy.ExecCount)
	}
}
