package app

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/chartscope/chartscope/internal/api"
	"github.com/chartscope/chartscope/internal/cache"
	"github.com/chartscope/chartscope/internal/config"
	"github.com/chartscope/chartscope/internal/filtering"
	"github.com/chartscope/chartscope/internal/github"
	"github.com/chartscope/chartscope/internal/registry"
	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/internal/telemetry"
	"github.com/chartscope/chartscope/internal/tools"
	"github.com/chartscope/chartscope/pkg/httpclient"
	"github.com/chartscope/chartscope/pkg/logger"
)

const (
	defaultRequestTimeout  = 10 * time.Second
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultGracefulTimeout = 30 * time.Second
)

// Options is a function that configures the app builder
type Options func(*appConfig) error

// appConfig collects everything the builder needs before wiring
// components. It supports dependency injection for testing while
// providing sensible defaults for production.
type appConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	httpClient httpclient.Client
	readiness  api.ReadinessCheck

	// Operational HTTP server options
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	gracefulTimeout time.Duration
}

func baseConfig(opts ...Options) (*appConfig, error) {
	cfg := &appConfig{
		requestTimeout:  defaultRequestTimeout,
		readTimeout:     defaultReadTimeout,
		writeTimeout:    defaultWriteTimeout,
		idleTimeout:     defaultIdleTimeout,
		gracefulTimeout: defaultGracefulTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// New wires the full application from configuration: telemetry, the
// upstream HTTP client, the cache backend, the chart service, the MCP
// tool server and, when an ops address is configured, the operational
// HTTP server.
func New(ctx context.Context, opts ...Options) (*App, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	if cfg.config == nil {
		cfg.config = config.Default()
	}

	telem, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(cfg.config.Telemetry))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	store, sweeper, redisClient := buildCacheStore(cfg.config)

	// Ensure cleanup happens when a later step fails.
	var cleanupNeeded = true
	defer func() {
		if !cleanupNeeded {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.gracefulTimeout)
		defer cancel()
		_ = telem.Shutdown(shutdownCtx)
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	toolMetrics, err := telemetry.NewToolMetrics(telem.MeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create tool metrics: %w", err)
	}

	upstream := cfg.httpClient
	if upstream == nil {
		upstream = httpclient.NewDefaultClient(0, nil)
	}
	upstream = toolMetrics.InstrumentHTTPClient(upstream)

	svc, err := buildChartService(cfg.config, upstream, store, toolMetrics)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart service: %w", err)
	}

	toolsServer, err := buildToolsServer(svc, telem, toolMetrics)
	if err != nil {
		return nil, fmt.Errorf("failed to build MCP server: %w", err)
	}

	opsServer, err := buildOpsServer(cfg, telem, redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to build operational server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)
	cleanupNeeded = false

	return &App{
		config:          cfg.config,
		service:         svc,
		tools:           toolsServer,
		opsServer:       opsServer,
		telemetry:       telem,
		sweeper:         sweeper,
		redisClient:     redisClient,
		gracefulTimeout: cfg.gracefulTimeout,
		ctx:             appCtx,
		cancelFunc:      cancel,
	}, nil
}

// WithConfig sets the application configuration
func WithConfig(c *config.Config) Options {
	return func(cfg *appConfig) error {
		cfg.config = c
		return nil
	}
}

// WithHTTPClient injects the upstream HTTP client (for testing)
func WithHTTPClient(client httpclient.Client) Options {
	return func(cfg *appConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithReadinessCheck overrides the readiness probe on the ops server
func WithReadinessCheck(check api.ReadinessCheck) Options {
	return func(cfg *appConfig) error {
		cfg.readiness = check
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares for the ops server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Options {
	return func(cfg *appConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// buildCacheStore creates the configured cache backend. For the memory
// backend the returned MemoryStore doubles as the sweeper the app runs;
// for redis the returned client must be closed on shutdown.
func buildCacheStore(c *config.Config) (cache.Store, *cache.MemoryStore, *redis.Client) {
	if c.Cache.Backend == config.CacheBackendRedis && c.Cache.Redis != nil {
		client := redis.NewClient(&redis.Options{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		})
		store := cache.NewRedisStore(client,
			cache.WithRedisTTL(c.Cache.TTL()),
			cache.WithKeyPrefix(c.Cache.Redis.KeyPrefix),
		)
		logger.Infof("Using redis cache at %s", c.Cache.Redis.Addr)
		return store, nil, client
	}

	store := cache.NewMemoryStore(
		cache.WithTTL(c.Cache.TTL()),
		cache.WithMaxBytes(c.Cache.MaxSizeBytes),
	)
	return store, store, nil
}

// buildChartService assembles the lookup pipeline around the upstream
// clients and the cache store.
func buildChartService(
	c *config.Config,
	upstream httpclient.Client,
	store cache.Store,
	metrics *telemetry.ToolMetrics,
) (service.ChartService, error) {
	charts := registry.New(
		registry.WithBaseURL(c.Registry.BaseURL),
		registry.WithHTTPClient(upstream),
	)
	readmes := github.New(
		github.WithBaseURL(c.GitHub.BaseURL),
		github.WithHTTPClient(upstream),
		github.WithToken(c.GitHub.Token),
	)

	svcOpts := []service.Option{
		service.WithReadmeSource(readmes),
		service.WithDependencySource(c.Compat.DependencySource),
		service.WithDefaultSearchLimit(c.Search.DefaultLimit),
	}
	if filter := filtering.NewRefFilter(c.Search.Include, c.Search.Exclude); !filter.Empty() {
		svcOpts = append(svcOpts, service.WithRefFilter(filter))
		logger.Infof("Search filtering enabled: %d include, %d exclude patterns",
			len(c.Search.Include), len(c.Search.Exclude))
	}
	if metrics != nil {
		svcOpts = append(svcOpts, service.WithRecorder(metrics))
	}

	return service.New(charts, store, svcOpts...)
}

// buildToolsServer creates the MCP server with telemetry attached.
func buildToolsServer(
	svc service.ChartService,
	telem *telemetry.Telemetry,
	metrics *telemetry.ToolMetrics,
) (*tools.Server, error) {
	opts := []tools.Option{
		tools.WithTracerProvider(telem.TracerProvider()),
	}
	if metrics != nil {
		opts = append(opts, tools.WithMetrics(metrics))
	}
	return tools.NewServer(svc, opts...)
}

// buildOpsServer creates the operational HTTP server, or nil when no ops
// address is configured.
func buildOpsServer(b *appConfig, telem *telemetry.Telemetry, redisClient *redis.Client) (*http.Server, error) {
	addr := b.config.Server.OpsAddr
	if addr == "" {
		return nil, nil
	}
	if err := validateAddress(addr); err != nil {
		return nil, err
	}

	// Use default middlewares if not provided
	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	// Prepend observability middlewares so every request is captured,
	// including ones rejected further down the chain.
	metricsMiddleware, err := telemetry.MetricsMiddleware(telem.MeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
	}
	if metricsMiddleware != nil {
		b.middlewares = append([]func(http.Handler) http.Handler{metricsMiddleware}, b.middlewares...)
	}
	if tracingMiddleware := telemetry.TracingMiddleware(telem.TracerProvider()); tracingMiddleware != nil {
		b.middlewares = append([]func(http.Handler) http.Handler{tracingMiddleware}, b.middlewares...)
	}

	readiness := b.readiness
	if readiness == nil && redisClient != nil {
		readiness = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	serverOpts := []api.ServerOption{
		api.WithMiddlewares(b.middlewares...),
		api.WithReadinessCheck(readiness),
	}
	if h := telem.MetricsHandler(); h != nil {
		serverOpts = append(serverOpts, api.WithMetricsHandler(h))
	}

	router := api.NewServer(serverOpts...)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	logger.Infof("Operational server configured on %s", addr)
	return server, nil
}

// validateAddress checks that addr is a usable host:port listen address.
func validateAddress(addr string) error {
	parts := strings.SplitN(addr, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return fmt.Errorf("address %q does not include a port", addr)
	}

	host, port := parts[0], parts[1]
	if host == "localhost" {
		host = "127.0.0.1"
	}
	if host == "" {
		host = "0.0.0.0"
	}

	if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	return nil
}
