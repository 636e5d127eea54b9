//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"graphboard-backend/application/ports"
	"graphboard-backend/application/services"
	"graphboard-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideTracer,
	ProvideMemoryStore,
	ProvideChangeFeed,
	ProvideGraphStore,
	ProvideInteractionService,
	wire.Bind(new(ports.Interactions), new(*services.InteractionService)),
	ProvideConfigWatcher,
	ProvideHub,
	ProvideWebSocketServer,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
