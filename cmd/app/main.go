package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiptrack/cmd"
	httpin "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/metrics"
	"shiptrack/internal/adapters/out/postgres/migrations"
	"shiptrack/internal/generated/servers"
	"shiptrack/internal/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: configs.LogLevel, Format: configs.LogFormat})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	gormDB, err := openDatabase(configs, zapLogger)
	if err != nil {
		zapLogger.Fatal("open database", zap.Error(err))
	}

	if configs.RunMigrations {
		if err = migrate(configs, gormDB); err != nil {
			zapLogger.Fatal("apply migrations", zap.Error(err))
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	app, err := cmd.NewCompositionRoot(configs, gormDB, zapLogger, m)
	if err != nil {
		zapLogger.Fatal("build composition root", zap.Error(err))
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		zapLogger.Fatal("start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = startWebServer(ctx, app, configs.HTTPPort, zapLogger, m); err != nil {
		zapLogger.Error("web server", zap.Error(err))
	}
}

func openDatabase(configs cmd.Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.NewGormLogger(zapLogger, logger.DefaultGormLoggerConfig())}

	var dialector gorm.Dialector
	switch configs.DBType {
	case cmd.DBTypeSQLite:
		dialector = sqlite.Open(configs.DBSQLitePath)
	default:
		dialector = postgres.Open(configs.PostgresDSN())
	}

	gormDB, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", configs.DBType, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	maxOpen := configs.DBMaxOpenConns
	if configs.DBType == cmd.DBTypeSQLite {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)

	return gormDB, nil
}

func migrate(configs cmd.Config, gormDB *gorm.DB) error {
	if configs.DBType == cmd.DBTypeSQLite {
		return migrations.AutoMigrate(gormDB)
	}
	return migrations.Up(configs.PostgresDSN())
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	port string,
	zapLogger *zap.Logger,
	m *metrics.Metrics,
) error {
	var server servers.ServerInterface = httpin.NewServer(app.CreateHTTPHandlers())
	e, err := httpin.NewRouter(server, httpin.RouterConfig{
		Logger:   zapLogger,
		Observer: m,
		Gatherer: prometheus.DefaultGatherer,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("http server started", zap.String("port", port))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
