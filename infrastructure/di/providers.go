package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/application/services"
	"graphboard-backend/infrastructure/config"
	"graphboard-backend/infrastructure/persistence/decorators"
	"graphboard-backend/infrastructure/persistence/memory"
	"graphboard-backend/interfaces/http/rest"
	"graphboard-backend/interfaces/websocket"
	"graphboard-backend/pkg/observability"
)

const serviceName = "graphboard"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector(serviceName)
}

// ProvideTracer creates the tracer provider; a no-op one when tracing is off
func ProvideTracer(ctx context.Context, cfg *config.Config) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return observability.NewNoopTracerProvider(serviceName), nil
	}
	return observability.InitTracing(ctx, serviceName, cfg.Environment, cfg.OTLPEndpoint)
}

// ProvideMemoryStore creates the in-process graph store
func ProvideMemoryStore() *memory.GraphStore {
	return memory.NewGraphStore()
}

// ProvideChangeFeed exposes the memory store's change notifications
func ProvideChangeFeed(store *memory.GraphStore) ports.ChangeFeed {
	return store
}

// ProvideGraphStore wraps the memory store with the enabled decorators.
// Logging is outermost so its entries cover the whole call.
func ProvideGraphStore(
	base *memory.GraphStore,
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Collector,
	tracer *observability.TracerProvider,
) ports.GraphStore {
	var store ports.GraphStore = base

	if cfg.EnableMetrics {
		store = decorators.NewMetricsStore(store, metrics)
	}
	if cfg.EnableTracing {
		store = decorators.NewTracingStore(store, tracer.Tracer())
	}
	return decorators.NewLoggingStore(store, logger)
}

// ProvideInteractionService creates the gesture layer
func ProvideInteractionService(store ports.GraphStore, cfg *config.Config, logger *zap.Logger) *services.InteractionService {
	return services.NewInteractionService(store, logger,
		services.WithDefaultViewport(cfg.Viewport()),
	)
}

// ProvideConfigWatcher hot-reloads the config file in development and feeds
// viewport changes to the interaction service.
func ProvideConfigWatcher(cfg *config.Config, logger *zap.Logger, svc *services.InteractionService) (*config.Watcher, error) {
	watcher, err := config.NewWatcher(cfg, logger)
	if err != nil {
		return nil, err
	}
	watcher.OnChange(func(next *config.Config) {
		svc.SetDefaultViewport(next.Viewport())
	})
	return watcher, nil
}

// ProvideHub creates the render feed hub
func ProvideHub(
	feed ports.ChangeFeed,
	interactions ports.Interactions,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *websocket.Hub {
	if !cfg.EnableMetrics {
		metrics = nil
	}
	return websocket.NewHub(feed, interactions, metrics, logger)
}

// ProvideWebSocketServer creates the /ws endpoint
func ProvideWebSocketServer(hub *websocket.Hub, cfg *config.Config, logger *zap.Logger) *websocket.Server {
	wsCfg := websocket.DefaultServerConfig()
	wsCfg.AllowedOrigins = cfg.AllowedOrigins
	return websocket.NewServer(hub, wsCfg, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	interactions ports.Interactions,
	wsServer *websocket.Server,
	metrics *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(interactions, wsServer, metrics, rest.RouterConfig{
		AllowedOrigins:       cfg.AllowedOrigins,
		EnableCORS:           cfg.EnableCORS,
		EnableMetrics:        cfg.EnableMetrics,
		EnableCircuitBreaker: cfg.EnableCircuitBreaker,
		Debug:                cfg.IsDevelopment(),
	}, logger)
}
