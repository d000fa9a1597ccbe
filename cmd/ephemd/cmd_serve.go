package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"gitlab.com/rt2-ephem.net/internal/adapter/astrometry"
	"gitlab.com/rt2-ephem.net/internal/adapter/horizons"
	"gitlab.com/rt2-ephem.net/internal/adapter/interp"
	"gitlab.com/rt2-ephem.net/internal/adapter/logging"
	"gitlab.com/rt2-ephem.net/internal/adapter/outfile"
	"gitlab.com/rt2-ephem.net/internal/adapter/postgres/catalogrepo"
	"gitlab.com/rt2-ephem.net/internal/adapter/redis/coordcache"
	"gitlab.com/rt2-ephem.net/internal/adapter/sesame"
	"gitlab.com/rt2-ephem.net/internal/config"
	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/core/services/conversion"
	"gitlab.com/rt2-ephem.net/internal/core/services/resolution"
	"gitlab.com/rt2-ephem.net/internal/domain"
	httpserver "gitlab.com/rt2-ephem.net/internal/http"
	"gitlab.com/rt2-ephem.net/internal/tcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pointing server",
	Long:  "Start the TCP pointing listener and the HTTP status endpoint",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.NewZapLogger()
	if cfg.DebugMode {
		logger = logging.NewDebugZapLogger()
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting pointing server", "service", cfg.Status.ServiceName)

	// SECONDARY PORTS
	catalog, cleanup, err := buildCatalogResolver(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ephemeris := horizons.NewClient(cfg.Horizons, logger)
	resampler := interp.NewLinearResampler()
	frames := astrometry.NewTransformer()
	store := outfile.NewWriter(cfg.Output, logger)

	observer := domain.ObserverLocation{
		LatitudeDeg:  cfg.Observer.LatitudeDeg,
		LongitudeDeg: cfg.Observer.LongitudeDeg,
		AltitudeM:    cfg.Observer.AltitudeM,
	}

	//services
	resolutionSvc := resolution.NewResolutionService(catalog, ephemeris, resampler, store, cfg.Horizons.MaxSamples, logger)
	conversionSvc := conversion.NewConversionService(frames, store, observer, logger)

	//server
	tcpServer := tcp.NewTCPServer(resolutionSvc, conversionSvc, logger,
		tcp.WithAddress(cfg.Server.Address),
		tcp.WithMaxConnections(cfg.Server.MaxConnections))
	if err := tcpServer.Start(); err != nil {
		return err
	}

	httpServer := httpserver.NewServer(cfg.Status.Port, cfg.Status.ServiceName, tcpServer, logger)
	if err := httpServer.Init(); err != nil {
		return err
	}
	ctx := context.Background()
	httpServer.Start(ctx)

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := tcpServer.Stop(stopCtx); err != nil {
		logger.Error("Failed to stop TCP server", "error", err)
	}
	if err := httpServer.Stop(stopCtx); err != nil {
		logger.Error("Failed to stop status server", "error", err)
	}

	logger.Info("successfully shutdown server")
	return nil
}

// buildCatalogResolver picks the configured catalog backend and optionally
// puts the redis coordinate cache in front of it. The returned cleanup
// closes whatever connections the backend opened.
func buildCatalogResolver(cfg *config.AppConfig, logger primary.Logger) (secondary.CatalogResolver, func(), error) {
	cleanup := func() {}

	var catalog secondary.CatalogResolver
	switch cfg.CatalogDB.Backend {
	case "sesame":
		catalog = sesame.NewClient(cfg.Sesame, logger)
	case "postgres":
		db, err := setupDatabase(cfg.CatalogDB.Url)
		if err != nil {
			return nil, cleanup, err
		}
		catalog = catalogrepo.NewCatalogRepository(db, logger, cfg.CatalogDB.Schema)
		cleanup = func() { _ = db.Close() }
	default:
		return nil, cleanup, fmt.Errorf("unknown catalog backend %q", cfg.CatalogDB.Backend)
	}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Url,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := time.Duration(cfg.Redis.CacheTTLSec) * time.Second
		catalog = coordcache.NewCachingResolver(catalog, coordcache.NewRedisStore(redisClient), ttl, logger)
		backendCleanup := cleanup
		cleanup = func() {
			_ = redisClient.Close()
			backendCleanup()
		}
	}

	return catalog, cleanup, nil
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach catalog database: %w", err)
	}

	return db, nil
}
