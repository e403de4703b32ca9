package processor

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shubham-shewale/fx-terminal/pkg/config"
	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// quoteTTL bounds how long a quote survives once its feed goes quiet.
const quoteTTL = 1 * time.Hour

type Processor struct {
	cfg        *config.Config
	logger     Logger
	rdb        RedisClient
	reader     KafkaReader
	numWorkers int
}

func NewProcessor(cfg *config.Config, logger Logger, rdb RedisClient, reader KafkaReader) *Processor {
	n := cfg.Processor.NumWorkers
	if n <= 0 {
		n = 1
	}
	return &Processor{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		reader:     reader,
		numWorkers: n,
	}
}

func (p *Processor) Run(ctx context.Context) error {
	workerChans := make([]chan []byte, p.numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < p.numWorkers; i++ {
		workerChans[i] = make(chan []byte, 100)
		wg.Add(1)
		go p.worker(i, workerChans[i], &wg)
	}

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		p.logger.Info("Processor Started", zap.Int("workers", p.numWorkers))
		for {
			m, err := p.reader.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				p.logger.Error("Kafka Read Error", zap.Error(err))
				continue
			}

			// Deterministic Sharding: Same symbol always goes to same worker
			workerID := getWorkerID(m.Key, p.numWorkers)

			select {
			case workerChans[workerID] <- m.Value:
			case <-ctx.Done():
				return
			default:
				// Only the latest rate matters; a newer tick will follow.
				p.logger.Warn("Dropping slow packet", zap.String("key", string(m.Key)), zap.Int("worker_id", workerID))
			}
		}
	}()

	<-ctx.Done()
	p.logger.Info("Shutdown signal received, stopping processor...")
	<-readerDone

	for _, ch := range workerChans {
		close(ch)
	}
	p.logger.Info("Waiting for workers to drain...")
	wg.Wait()

	return nil
}

func (p *Processor) worker(id int, msgs <-chan []byte, wg *sync.WaitGroup) {
	defer wg.Done()
	ctx := context.Background()

	// Local state for deduplication (only works because of deterministic sharding)
	lastSeq := make(map[string]int64)

	for payload := range msgs {
		var update models.RateUpdate
		if err := json.Unmarshal(payload, &update); err != nil {
			p.logger.Error("JSON Unmarshal Error", zap.Error(err))
			continue
		}

		q := update.Quote
		if q.Symbol == "" || (q.Class != models.ClassFX && q.Class != models.ClassCrypto) {
			p.logger.Warn("Rejecting update without symbol or source class", zap.String("symbol", q.Symbol), zap.String("class", string(q.Class)))
			continue
		}

		if update.SeqID <= lastSeq[q.Symbol] {
			p.logger.Debug("Skipping duplicate update", zap.String("symbol", q.Symbol), zap.Int64("seq_id", update.SeqID))
			continue
		}

		body, err := json.Marshal(q)
		if err != nil {
			p.logger.Error("JSON Marshal Error", zap.Error(err), zap.String("symbol", q.Symbol))
			continue
		}

		// Latest quote plus class index in one round trip
		pipe := p.rdb.Pipeline()
		pipe.Set(ctx, models.QuoteKey(q.Class, q.Symbol), body, quoteTTL)
		pipe.SAdd(ctx, models.IndexKey(q.Class), q.Symbol)

		if _, err := pipe.Exec(ctx); err != nil {
			p.logger.Error("Redis Pipeline Error", zap.Error(err), zap.String("symbol", q.Symbol))
		} else {
			p.logger.Debug("Processed", zap.String("symbol", q.Symbol), zap.Int("worker_id", id))
			lastSeq[q.Symbol] = update.SeqID
		}
	}
}

func getWorkerID(key []byte, numWorkers int) int {
	h := fnv.New32a()
	h.Write(key)
	return int(h.Sum32() % uint32(numWorkers))
}
