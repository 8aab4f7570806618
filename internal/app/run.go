package app

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/vk/plancreator/internal/ctxlog"
	"github.com/vk/plancreator/internal/dag"
	"github.com/vk/plancreator/internal/yamlfield"
)

// Run reads the pipeline, creates its plan, validates the resulting graph
// and writes the plan as JSON.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.startHealthCheckServer(ctx)
	defer a.closeHealthCheckServer(ctx)

	data, err := os.ReadFile(a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to read pipeline: %w", err)
	}
	root, err := yamlfield.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse pipeline %s: %w", a.config.PipelinePath, err)
	}
	a.logger.Debug("Pipeline parsed.", "path", a.config.PipelinePath, "root", root.FQN())

	resp, err := a.engine.CreatePlan(ctx, a.planContext(), map[string]*yamlfield.Field{root.ID(): root})
	if err != nil {
		return fmt.Errorf("plan creation failed: %w", err)
	}

	if len(resp.Dependencies) > 0 {
		paths := make([]string, 0, len(resp.Dependencies))
		for _, f := range resp.Dependencies {
			paths = append(paths, f.FQN())
		}
		slices.Sort(paths)
		return fmt.Errorf("%w: no creator for %s", ErrIncompletePlan, strings.Join(paths, ", "))
	}

	graph, err := dag.Validate(resp)
	if err != nil {
		return fmt.Errorf("invalid plan graph: %w", err)
	}
	order, err := graph.TopologicalOrder()
	if err != nil {
		return fmt.Errorf("invalid plan graph: %w", err)
	}
	a.logger.Debug("Plan graph validated.", "node_count", graph.Len())

	if err := writePlan(a.outW, resp, order); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	a.logger.Info("Plan written.", "nodes", len(resp.Nodes), "startingNodeID", resp.StartingNodeID)
	return nil
}
