package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/auth"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/chart"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/clock"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/crossrate"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/dashboard"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/display"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/gateway"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/hub"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/repository"
	"github.com/shubham-shewale/fx-terminal/cmd/terminal/internal/source"
	"github.com/shubham-shewale/fx-terminal/pkg/config"
	"github.com/shubham-shewale/fx-terminal/pkg/market"
)

// chartSeed keeps the chart's random walk reproducible across restarts.
const chartSeed = 42

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Quote source: the processor's Redis keyspace when live, else in-process synthesis
	var live source.RateProvider
	if cfg.Source.Live {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		store := repository.NewRedisStore(rdb)
		defer store.Close()
		live = source.NewRedisProvider(store, logger)
	}
	synth := market.NewSynthesizer(market.NewRand(time.Now().UnixNano()), market.DefaultFX, market.DefaultCrypto)
	adapter := source.NewAdapter(live, synth, logger)

	deps := dashboard.Deps{
		Clock:        clock.Real{},
		Fetcher:      adapter,
		Pairs:        crossrate.DefaultPairs,
		Formatter:    display.NewFormatter(display.DefaultOverrides),
		Rand:         market.NewRand(chartSeed),
		PollInterval: cfg.Poll.Interval,
		Chart: chart.Config{
			Series: chart.SeriesSpec{
				Symbol:   "USD_JPY",
				Base:     150.00,
				Bars:     cfg.Chart.Bars,
				Interval: cfg.Chart.BarInterval,
			},
			QuietPeriod: cfg.Chart.QuietPeriod,
		},
		Logger: logger,
	}

	validSymbols := cfg.Gateway.ValidSymbols
	if len(validSymbols) == 0 {
		validSymbols = append(market.Symbols(market.DefaultFX, market.DefaultCrypto), crossrate.Symbols(crossrate.DefaultPairs)...)
	}

	// Dependency Injection: Hub opens one dashboard view per client
	wsHub := hub.NewHub(func(c hub.ClientInterface) (hub.View, error) {
		v, err := dashboard.NewView(c, deps)
		if err != nil {
			return nil, err
		}
		return v, nil
	}, validSymbols, logger)

	accounts := auth.NewHandler(auth.NewStore(cfg.Auth.CredentialsFile), logger)
	srv := &http.Server{
		Addr:              cfg.App.Port,
		Handler:           gateway.Routes(wsHub, accounts, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server Started",
			zap.String("port", cfg.App.Port),
			zap.Bool("live", cfg.Source.Live),
			zap.Duration("poll_interval", cfg.Poll.Interval))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		wsHub.Shutdown()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Terminal stopped with error", zap.Error(err))
	}
	logger.Info("Shutdown Complete")
}
