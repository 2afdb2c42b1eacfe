package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gdpdash/internal/api"
	"gdpdash/internal/config"
	"gdpdash/internal/engine"
	"gdpdash/internal/metrics"
	"gdpdash/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		logger.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// 1. Initialize Echo (Starts Instantly)
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.HTTP.CORSOrigins}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// 2. Initialize Handler with NIL data
	// The API is now "live" but will return 503 (Loading) if hit
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	// 3. Load and reshape in the background; a bad dataset is fatal
	go func() {
		t0 := time.Now()
		ds, err := engine.LoadDataset(cfg.Data.Path)
		if err != nil {
			metrics.LoadErrors.Inc()
			logger.Fatalf("dataset load failed: %v", err)
		}
		metrics.RecordLoad(time.Since(t0), ds.Series().Len())
		h.SetData(ds)
		logger.Infof("Dataset ready in %v. API is fully ready.", time.Since(t0))
	}()

	// 4. Start Server
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server ready on %s (data loading in background...)", cfg.HTTP.Addr)
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("shutdown signal received: %s", sig)
	case err := <-errCh:
		logger.Errorf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Errorf("http shutdown error: %v", err)
	}
	logger.Info("server stopped")
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			kv := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				kv = append(kv, "error", v.Error)
			}
			logger.Infow("request", kv...)
			return nil
		},
	})
}
