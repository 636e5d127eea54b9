package di

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/application/services"
	"graphboard-backend/infrastructure/config"
	"graphboard-backend/infrastructure/persistence/memory"
	"graphboard-backend/interfaces/http/rest"
	"graphboard-backend/interfaces/websocket"
	"graphboard-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Metrics      *observability.Collector
	Tracer       *observability.TracerProvider
	MemoryStore  *memory.GraphStore
	Store        ports.GraphStore
	Interactions *services.InteractionService
	Hub          *websocket.Hub
	WSServer     *websocket.Server
	Router       *rest.Router
	Watcher      *config.Watcher
}

// Shutdown releases what the container started. The hub stops with the
// context passed to its Run.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	if err := c.Tracer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	// Syncing stderr fails on some platforms; not worth reporting.
	_ = c.Logger.Sync()

	return errors.Join(errs...)
}
