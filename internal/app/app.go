// Package app runs one mock service process: config, logging, HTTP server,
// optional gRPC health server and signal-driven shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yungtweek/llm-mockserver/internal/config"
	"github.com/yungtweek/llm-mockserver/internal/grpc"
	"github.com/yungtweek/llm-mockserver/internal/httpapi"
	"github.com/yungtweek/llm-mockserver/internal/logger"
	"github.com/yungtweek/llm-mockserver/internal/metrics"
)

// Main is the body of a mock binary's main function.
func Main(d config.Defaults, register func(gin.IRoutes)) {
	_ = godotenv.Load()

	cfg := config.LoadConfig(d)

	if err := logger.Init(cfg.Profile, cfg.Service, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] logger init: %v\n", cfg.Service, err)
		os.Exit(1)
	}
	defer logger.Sync()

	config.ApplyPresetOverrides(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg, register); err != nil {
		logger.Log.Errorw("["+cfg.Service+"] server error", "err", err)
		logger.Sync()
		os.Exit(1)
	}
}

// Run listens on cfg.Addr() and serves the mock until ctx is done.
func Run(ctx context.Context, cfg config.Config, register func(gin.IRoutes)) error {
	lis, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}
	return Serve(ctx, lis, cfg, register)
}

// Serve serves the mock on lis until ctx is done or a server fails, then
// shuts everything down within cfg.ShutdownTimeout.
func Serve(ctx context.Context, lis net.Listener, cfg config.Config, register func(gin.IRoutes)) error {
	if cfg.Profile == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Log.Infow(
		"starting mock server",
		"addr", lis.Addr().String(),
		"profile", cfg.Profile,
		"preset", cfg.Preset,
		"baseDelayMs", cfg.BaseDelayMs,
		"jitterMs", cfg.JitterMs,
		"metricsEnabled", cfg.MetricsEnabled,
		"healthGrpcPort", cfg.HealthGRPCPort,
	)

	m := metrics.NewHTTP(cfg.Service)
	srv := httpapi.NewHTTPServer(lis.Addr().String(), httpapi.NewRouter(cfg, m, register))

	var hs *grpc.HealthServer
	if cfg.HealthGRPCPort != 0 {
		hs = grpc.NewHealthServer(healthAddr(cfg), cfg.Service)
	}

	httpDone := make(chan error, 1)
	healthErr := make(chan error, 1)
	go func() { httpDone <- srv.Serve(lis) }()
	if hs != nil {
		go func() {
			if err := hs.Run(); err != nil {
				healthErr <- fmt.Errorf("health server: %w", err)
			}
		}()
		hs.SetServing()
	}

	var cause error
	select {
	case <-ctx.Done():
		logger.Log.Info("[" + cfg.Service + "] shutting down...")
	case err := <-httpDone:
		if hs != nil {
			hs.Stop()
		}
		if err == nil {
			err = errors.New("http server exited unexpectedly")
		}
		return err
	case cause = <-healthErr:
	}

	if hs != nil {
		hs.SetNotServing()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if hs != nil {
		hs.GracefulStop()
	}
	if err := <-httpDone; err != nil {
		return err
	}
	return cause
}

// healthAddr binds the health server to the same host as the HTTP listener.
func healthAddr(cfg config.Config) string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.HealthGRPCPort))
}
