package rest

import (
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/interfaces/http/rest/handlers"
	"graphboard-backend/interfaces/http/rest/middleware"
	"graphboard-backend/interfaces/websocket"
	apperrors "graphboard-backend/pkg/errors"
	"graphboard-backend/pkg/observability"
)

// RouterConfig selects the optional parts of the router.
type RouterConfig struct {
	AllowedOrigins       []string
	EnableCORS           bool
	EnableMetrics        bool
	EnableCircuitBreaker bool
	Debug                bool
}

// Router creates and configures the HTTP router
type Router struct {
	interactions ports.Interactions
	wsServer     *websocket.Server
	metrics      *observability.Collector
	config       RouterConfig
	logger       *zap.Logger

	ready atomic.Bool
}

// NewRouter creates a new router instance. wsServer and metrics may be nil.
func NewRouter(
	interactions ports.Interactions,
	wsServer *websocket.Server,
	metrics *observability.Collector,
	config RouterConfig,
	logger *zap.Logger,
) *Router {
	rt := &Router{
		interactions: interactions,
		wsServer:     wsServer,
		metrics:      metrics,
		config:       config,
		logger:       logger,
	}
	rt.ready.Store(true)
	return rt
}

// SetReady flips the readiness probe, e.g. to drain before shutdown.
func (rt *Router) SetReady(ready bool) {
	rt.ready.Store(ready)
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()
	errorHandler := apperrors.NewErrorHandler(rt.logger, rt.config.Debug)

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(errorHandler.Middleware)
	if rt.config.EnableMetrics && rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.config.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.config.EnableMetrics && rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	if rt.wsServer != nil {
		router.Get("/ws", rt.wsServer.HandleWebSocket)
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.config.EnableCircuitBreaker {
			r.Use(middleware.CircuitBreaker(middleware.DefaultCircuitBreakerConfig("graph-api"), errorHandler, rt.logger))
		}

		r.Get("/graph", handlers.NewGraphHandler(rt.interactions, rt.logger).GetGraph)

		r.Route("/nodes", func(r chi.Router) {
			nodeHandler := handlers.NewNodeHandler(rt.interactions, errorHandler, rt.logger)
			r.Post("/", nodeHandler.CreateNode)
			r.Delete("/{nodeID}", nodeHandler.DeleteNode)
			r.Put("/{nodeID}/label", nodeHandler.UpdateLabel)
		})

		r.Route("/edges", func(r chi.Router) {
			edgeHandler := handlers.NewEdgeHandler(rt.interactions, errorHandler, rt.logger)
			r.Post("/", edgeHandler.Connect)
			r.Delete("/{edgeID}", edgeHandler.DeleteEdge)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !rt.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"draining"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
