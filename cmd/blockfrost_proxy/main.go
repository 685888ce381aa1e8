package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blockfrost_proxy/internal/config"
	networkdefinition "blockfrost_proxy/internal/infrastructure/network/definition"
	"blockfrost_proxy/internal/infrastructure/redirect"
	"blockfrost_proxy/internal/infrastructure/restapi"
	"blockfrost_proxy/internal/pkg/logger"
	"blockfrost_proxy/internal/pkg/metrics"
	"blockfrost_proxy/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", utils.GetEnv("CONFIG_PATH", "config/config.yml"), "path to the proxy config (empty: env only)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zapLogger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.InitSlog(zapLogger)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	endpoints, projectIDs := cfg.Blockfrost.NetworkMaps(networkdefinition.DefaultEndpoints())
	if len(projectIDs) == 0 {
		zapLogger.Fatal("No usable Blockfrost project ids after validation")
	}
	for network := range projectIDs {
		zapLogger.Info("Network enabled", zap.String("network", network.String()), zap.String("endpoint", endpoints[network]))
	}

	reg := prometheus.NewRegistry()
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	proxyMetrics := metrics.NewProxyMetrics(reg)

	redirector := redirect.NewHTTPRedirector(redirect.Config{
		Timeout:      time.Duration(cfg.Blockfrost.RequestTimeoutMillis) * time.Millisecond,
		MaxBodyBytes: cfg.Blockfrost.MaxBodyBytes,
	}, zapLogger)
	handler := restapi.NewBlockfrostHandler(redirector, endpoints, projectIDs, proxyMetrics, zapLogger)
	limiter := restapi.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
		time.Duration(cfg.RateLimit.ClientTTLMinutes)*time.Minute,
		proxyMetrics,
	)
	if limiter == nil {
		zapLogger.Info("Rate limiting disabled")
	}

	router := restapi.SetupRouter(handler, limiter, restapi.RouterOptions{
		BasePath:       cfg.Blockfrost.BasePath,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		MetricsHandler: metricsHandler,
	}, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("basePath", cfg.Blockfrost.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
