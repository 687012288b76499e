package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"github.com/rxprasetya/sebaran-penjualan/internal/application/coverage"
	"github.com/rxprasetya/sebaran-penjualan/internal/application/mapview"
	"github.com/rxprasetya/sebaran-penjualan/internal/config"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/boundary"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/database/postgres"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/database/redis"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/rxprasetya/sebaran-penjualan/internal/interfaces/http"
	"github.com/rxprasetya/sebaran-penjualan/internal/interfaces/http/handlers"
	"github.com/rxprasetya/sebaran-penjualan/internal/interfaces/http/middleware"
	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	return cmd
}

func serve(cfg *config.Config) error {
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	logger.Info("starting sebaran-penjualan server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	defer conn.Close()

	redisClient, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	defer redisClient.Close()

	var minioClient *minio.Client
	if cfg.Boundary.Mode == config.BoundaryModeMinIO {
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("minio client failed: %w", err)
		}
	}

	boundaryStore, err := boundary.NewStore(cfg, minioClient)
	if err != nil {
		return fmt.Errorf("boundary store setup failed: %w", err)
	}

	var metrics *prometheus.Metrics
	if cfg.Metrics.Enabled {
		metrics = prometheus.NewMetrics(cfg.Metrics.Namespace)
	}

	cache := redis.NewCache(redisClient, cfg.Redis.CacheTTL, logger)
	themeStore := redis.NewThemeStore(redisClient, logger)

	var serviceOpts []coverage.Option
	if metrics != nil {
		serviceOpts = append(serviceOpts, coverage.WithMetrics(metrics))
	}
	coverageService := coverage.NewService(postgres.NewCoverageRepo(conn, logger), cache, logger, serviceOpts...)

	sampler := geo.NewSampler(geo.WithAttempts(cfg.Map.SampleAttempts))
	boundaryLoader := boundary.NewInstrumentedLoader(boundary.NewLoader(boundaryStore, sampler, logger), metrics)
	renderer := mapview.NewRenderer(
		mapview.TerritorySourceFunc(coverageService.MapData),
		boundaryLoader,
		cfg.Map.BoundaryConcurrency,
		logger,
	)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		MapHandler:      handlers.NewMapHandler(coverageService),
		RegionsHandler:  handlers.NewRegionsHandler(renderer),
		CoverageHandler: handlers.NewCoverageHandler(coverageService),
		BoundaryHandler: handlers.NewBoundaryHandler(boundaryStore),
		ThemeHandler:    handlers.NewThemeHandler(themeStore),
		HealthHandler: handlers.NewHealthHandler(map[string]handlers.HealthChecker{
			"postgres": handlers.HealthCheckerFunc(conn.HealthCheck),
			"redis": handlers.HealthCheckerFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx)
			}),
		}),
		CORS: httpserver.CORSOption{
			Enabled: true,
			Config: middleware.CORSConfig{
				AllowedOrigins: cfg.Server.CORSOrigins,
			},
		},
		Logging: httpserver.LoggingOption{
			Enabled: true,
			Config:  middleware.DefaultLoggingConfig(),
		},
		Logger:  logger,
		Metrics: metrics,
	})

	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("received shutdown signal", logging.String("signal", sig.String()))
	}

	if err := server.Stop(context.Background()); err != nil {
		logger.Error("shutdown failed", logging.Err(err))
		return err
	}
	return nil
}
