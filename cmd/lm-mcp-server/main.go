// Command lm-mcp-server runs the LogicMonitor tool server: an HTTP
// surface exposing alert, device, and ingestion tools backed by the
// LogicMonitor REST and ingestion APIs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/auth"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/config"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/health"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/logger"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/observability"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/resilience"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/server"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/tools"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/version"
)

const serviceName = "lm-mcp-server"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	loaderOpts := []config.LoaderOption{config.WithEnvFile(".env")}
	if path := os.Getenv("LM_CONFIG_FILE"); path != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(path))
	}
	cfg, err := config.Get(loaderOpts...)
	if err != nil {
		return err
	}

	logger.Init(cfg.LoggerConfig())
	log := logger.GetGlobalLogger()

	log.Info("Starting", map[string]interface{}{
		"version":       version.GetShortVersion(),
		"portal":        cfg.Portal,
		"write_enabled": cfg.EnableWriteOperations,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.OtelEndpoint != "" {
		shutdown, m, err := initTelemetry(ctx, cfg)
		if err != nil {
			return err
		}
		defer shutdown()
		metrics = m
	}

	provider, err := auth.NewProvider(cfg.Credentials())
	if err != nil {
		return err
	}

	clientCfg := lmapi.Config{
		BaseURL:    cfg.BaseURL(),
		IngestURL:  cfg.IngestURL(),
		Timeout:    cfg.RequestTimeout(),
		MaxRetries: cfg.MaxRetries,
		APIVersion: strconv.Itoa(cfg.APIVersion),
	}
	if cfg.RateLimit > 0 {
		clientCfg.RateLimiter = &resilience.RateLimiterConfig{
			Name:  "lm-api",
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		}
	}
	clientOpts := []lmapi.Option{lmapi.WithLogger(log)}
	if metrics != nil {
		clientOpts = append(clientOpts, lmapi.WithMetrics(metrics))
	}
	client, err := lmapi.New(clientCfg, provider, clientOpts...)
	if err != nil {
		return err
	}

	registryOpts := []tools.RegistryOption{
		tools.WithWriteEnabled(cfg.EnableWriteOperations),
		tools.WithLogger(log.WithComponent("tools")),
	}
	if metrics != nil {
		registryOpts = append(registryOpts, tools.WithMetrics(metrics))
	}
	registry := tools.NewRegistry(registryOpts...)
	if err := tools.NewSet(client).Register(registry); err != nil {
		return err
	}

	checker := health.NewChecker(client, func() error {
		_, err := config.Get()
		return err
	})

	srvCfg := server.Config{Addr: cfg.ServerAddr}
	srvCfg.ApplyDefaults()
	if err := srvCfg.Validate(); err != nil {
		return err
	}
	srv := server.New(srvCfg, registry, checker, log)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// initTelemetry wires OTLP trace and metric export. The returned
// shutdown flushes both providers.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(), *observability.Metrics, error) {
	otelCfg := observability.DefaultConfig(serviceName)
	otelCfg.ServiceVersion = version.GetShortVersion()
	otelCfg.Endpoint = cfg.OtelEndpoint

	tp, err := observability.InitTracer(ctx, otelCfg)
	if err != nil {
		return nil, nil, err
	}
	mp, err := observability.InitMeter(ctx, otelCfg)
	if err != nil {
		return nil, nil, err
	}
	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, nil, err
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
		}
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn("Meter shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return shutdown, metrics, nil
}
