package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"checkout/cmd"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Level:    configs.LogLevel,
		Output:   configs.LogOutput,
		FilePath: configs.LogFile,
		Format:   configs.LogFormat,
	})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync(zl) }()

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, zl)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			zl.Warn("close outbound clients", zap.Error(closeErr))
		}
	}()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter(ctx)
	if err != nil {
		log.Fatalf("Error creating router: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort, zl)
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, zl *zap.Logger) {
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		zl.Info("http server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("http server shutdown", zap.Error(err))
	}
}
