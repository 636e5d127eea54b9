package scripts

import (
	"context"

	"go.uber.org/zap"

	"graphboard-backend/application/ports"
	"graphboard-backend/application/services"
	"graphboard-backend/domain/core/aggregates"
	"graphboard-backend/domain/core/entities"
)

// Runner applies scripts through the same interaction layer the API uses,
// so generated ids and collisions behave exactly as for live gestures.
type Runner struct {
	store        ports.GraphStore
	interactions *services.InteractionService
	logger       *zap.Logger

	// position for the create_node step being applied, if fixed
	fixed *entities.Position
}

// NewRunner creates a runner on top of store. position places nodes whose
// step has no fixed coordinates; nil means uniform random placement.
func NewRunner(store ports.GraphStore, position services.PositionFunc, logger *zap.Logger) *Runner {
	if position == nil {
		position = services.UniformPosition
	}
	r := &Runner{
		store:  store,
		logger: logger.Named("replay"),
	}
	r.interactions = services.NewInteractionService(store, logger,
		services.WithPositionFunc(func(vp entities.Viewport) entities.Position {
			if r.fixed != nil {
				return *r.fixed
			}
			return position(vp)
		}),
	)
	return r
}

// Run applies every step in order and returns the resulting graph.
func (r *Runner) Run(ctx context.Context, script *Script) aggregates.Snapshot {
	if script.Viewport != nil {
		r.interactions.SetDefaultViewport(*script.Viewport)
	}

	for i, step := range script.Steps {
		r.apply(ctx, step)
		r.logger.Debug("Step applied",
			zap.Int("step", i+1),
			zap.String("op", step.Op),
		)
	}

	snap := r.store.Snapshot(ctx)
	r.logger.Info("Script replayed",
		zap.Int("steps", len(script.Steps)),
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
		zap.Uint64("revision", snap.Revision),
	)
	return snap
}

func (r *Runner) apply(ctx context.Context, step Step) {
	switch step.Op {
	case OpCreateNode:
		r.fixed = nil
		if step.X != nil && step.Y != nil {
			r.fixed = &entities.Position{X: *step.X, Y: *step.Y}
		}
		r.interactions.CreateNode(ctx, step.Viewport)
		r.fixed = nil
	case OpConnect:
		r.interactions.Connect(ctx, step.Source, step.Target)
	case OpDeleteNode:
		r.interactions.DeleteNode(ctx, step.NodeID)
	case OpDeleteEdge:
		r.interactions.DeleteEdge(ctx, step.EdgeID)
	case OpUpdateNodeLabel:
		r.interactions.UpdateNodeLabel(ctx, step.NodeID, *step.Label)
	case OpAddNode:
		r.store.AddNode(ctx, *step.Node)
	case OpAddEdge:
		r.store.AddEdge(ctx, *step.Edge)
	}
}
