// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/config"
	httptransport "fieldops/internal/http"
	"fieldops/internal/infra"
	"fieldops/internal/logging"
	"fieldops/internal/modules/contractor"
	"fieldops/internal/modules/geo"
	"fieldops/internal/modules/jobtype"
	"fieldops/internal/modules/notify"
	"fieldops/internal/modules/ranking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer func() { _ = redisClient.Close() }()

	var distanceProvider geo.Provider = geo.HaversineProvider{}
	if cfg.Maps.APIKey != "" {
		routes, err := geo.NewRoutesProvider(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps init", zap.Error(err))
		}
		distanceProvider = routes
		logger.Info("using routing-backed distance provider")
	}

	var publisher notify.Publisher = notify.Nop{}
	if cfg.Ranking.PublishTopAssignment {
		publisher = notify.NewRedisPublisher(redisClient, cfg.Ranking.AssignmentChannel)
	}

	contractorStore := contractor.NewStore(dbPool, redisClient)
	contractorSvc := contractor.NewService(contractorStore, logger)

	jobTypeStore := jobtype.NewStore(dbPool)

	rankingSvc := ranking.NewService(
		contractorSvc,
		jobTypeStore,
		distanceProvider,
		publisher,
		logger,
		ranking.Config{
			Workers: cfg.Ranking.Workers,
			DefaultWeights: ranking.Weights{
				Availability: cfg.Ranking.AvailabilityWeight,
				Rating:       cfg.Ranking.RatingWeight,
				Distance:     cfg.Ranking.DistanceWeight,
			},
		},
	)

	handler := httptransport.NewRouter(rankingSvc, contractorSvc, logger)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}
