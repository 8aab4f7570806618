package engine

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/ctxlog"
	"github.com/vk/plancreator/internal/metrics"
	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/workpool"
	"github.com/vk/plancreator/internal/yamlfield"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vk/plancreator/internal/engine"

// DefaultRoundTimeout bounds a single round unless WithRoundTimeout is used.
const DefaultRoundTimeout = 60 * time.Second

// Service drives plan creation over a fixed registry of creators.
type Service struct {
	registry     *creator.Registry
	pool         *workpool.Pool
	workers      int
	roundTimeout time.Duration
	maxRounds    int
	metrics      *metrics.Collector
	tracer       trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers sets how many creators may run at once within a round.
func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = n }
}

// WithRoundTimeout sets how long a round may take before CreatePlan fails.
func WithRoundTimeout(d time.Duration) Option {
	return func(s *Service) { s.roundTimeout = d }
}

// WithMaxRounds caps the number of rounds. Zero means no cap.
func WithMaxRounds(n int) Option {
	return func(s *Service) { s.maxRounds = n }
}

// WithMetrics records rounds and field outcomes into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// New creates a Service. The registry must not be modified afterwards.
func New(reg *creator.Registry, opts ...Option) *Service {
	s := &Service{
		registry:     reg,
		workers:      workpool.DefaultWorkers,
		roundTimeout: DefaultRoundTimeout,
		tracer:       otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pool = workpool.New(s.workers, s.roundTimeout)
	return s
}

// CreatePlan expands the initial fields, keyed by field id, until no new
// dependency is discovered. Fields that no creator supports are returned in
// the response's Dependencies. Any creator failure, starting node conflict or
// round timeout aborts the call.
func (s *Service) CreatePlan(ctx context.Context, pctx creator.Context, initial map[string]*yamlfield.Field) (resp *plan.Response, err error) {
	final := plan.NewResponse()
	if len(initial) == 0 || s.registry.Len() == 0 {
		return final, nil
	}

	ctx, span := s.tracer.Start(ctx, "CreatePlan", trace.WithAttributes(
		attribute.Int("plan.initial_fields", len(initial)),
		attribute.String("plan.pipeline_id", pctx.PipelineID),
	))
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.metrics.PlanFinished(err, time.Since(start))
	}()

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Plan creation started.", "initialFields", len(initial), "creators", s.registry.Len())

	pending := maps.Clone(initial)
	dispatched := make(map[string]struct{}, len(initial))
	round := 0

	for len(pending) > 0 {
		round++
		if s.maxRounds > 0 && round > s.maxRounds {
			return nil, fmt.Errorf("%w: limit is %d, %d fields still pending", ErrMaxRoundsExceeded, s.maxRounds, len(pending))
		}

		batch := snapshot(pending)
		pending = make(map[string]*yamlfield.Field)
		for _, f := range batch {
			dispatched[f.ID()] = struct{}{}
		}

		logger.Debug("Round started.", "round", round, "fields", len(batch))
		results, err := s.runRound(ctx, pctx, round, batch)
		if err != nil {
			return nil, err
		}

		// Nodes of the whole round are merged before any dependency is
		// queued, so a sibling resolved in this round is filtered like any
		// other known node.
		for i, f := range batch {
			res := results[i]
			if res == nil {
				logger.Debug("Field left unresolved.", "round", round, "fieldID", f.ID(), "field", f.FQN())
				s.metrics.FieldOutcome(metrics.OutcomeUnresolved)
				final.AddDependency(f)
				continue
			}
			s.metrics.FieldOutcome(metrics.OutcomeResolved)
			final.AddNodes(res.Nodes)
			if err := final.SetStartingNodeID(res.StartingNodeID); err != nil {
				return nil, &CreationError{Round: round, FieldID: f.ID(), FieldPath: f.FQN(), Err: err}
			}
		}

		for i, f := range batch {
			res := results[i]
			if res == nil {
				continue
			}
			for _, key := range res.DependencyIDs() {
				dep := res.Dependencies[key]
				if dep == nil || dep.Node == nil {
					return nil, &CreationError{
						Round:     round,
						FieldID:   f.ID(),
						FieldPath: f.FQN(),
						Err:       fmt.Errorf("%w: entry %q", ErrInvalidDependency, key),
					}
				}
				id := dep.ID()
				if _, ok := final.Nodes[id]; ok {
					continue
				}
				if _, ok := final.Dependencies[id]; ok {
					continue
				}
				if _, ok := dispatched[id]; ok {
					if id == f.ID() {
						return nil, &CreationError{
							Round:     round,
							FieldID:   f.ID(),
							FieldPath: f.FQN(),
							Err:       fmt.Errorf("%w: %s", ErrDependencyReemitted, dep),
						}
					}
					// Resolved earlier into nodes under other ids.
					continue
				}
				pending[id] = dep
			}
		}
		logger.Debug("Round finished.", "round", round, "nodes", len(final.Nodes), "next", len(pending))
	}

	for id := range initial {
		if _, ok := final.Nodes[id]; ok {
			delete(final.Dependencies, id)
		}
	}

	span.SetAttributes(
		attribute.Int("plan.rounds", round),
		attribute.Int("plan.nodes", len(final.Nodes)),
		attribute.Int("plan.unresolved", len(final.Dependencies)),
	)
	logger.Info("Plan created.", "rounds", round, "nodes", len(final.Nodes), "unresolved", len(final.Dependencies), "startingNodeID", final.StartingNodeID)
	return final, nil
}

// runRound dispatches one batch and returns its results positionally. A nil
// result means no creator supports the field.
func (s *Service) runRound(ctx context.Context, pctx creator.Context, round int, batch []*yamlfield.Field) ([]*plan.Response, error) {
	ctx, span := s.tracer.Start(ctx, "CreatePlan.round", trace.WithAttributes(
		attribute.Int("plan.round", round),
		attribute.Int("plan.round.fields", len(batch)),
	))
	defer span.End()

	start := time.Now()
	results, err := workpool.Run(ctx, s.pool, len(batch), func(ctx context.Context, i int) (*plan.Response, error) {
		return s.createForField(ctx, pctx, round, batch[i])
	})
	s.metrics.ObserveRound(time.Since(start))

	if err != nil {
		var cerr *CreationError
		if !errors.As(err, &cerr) {
			err = &RoundError{Round: round, Err: err}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return results, nil
}

func (s *Service) createForField(ctx context.Context, pctx creator.Context, round int, f *yamlfield.Field) (resp *plan.Response, err error) {
	logger := ctxlog.FromContext(ctx).With("round", round, "fieldID", f.ID(), "field", f.FQN())

	c, ok := s.registry.Find(f)
	if !ok {
		logger.Debug("No creator supports field.")
		return nil, nil
	}

	name := creator.Name(c)
	logger.Debug("Dispatching field to creator.", "creator", name)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Creator panicked.", "creator", name, "panic", r)
			s.metrics.FieldOutcome(metrics.OutcomeFailed)
			resp = nil
			err = &CreationError{Round: round, FieldID: f.ID(), FieldPath: f.FQN(), Creator: name, Err: fmt.Errorf("%w: %v", ErrCreatorPanicked, r)}
		}
	}()

	resp, err = c.CreatePlanForField(ctx, pctx, f)
	if err != nil {
		s.metrics.FieldOutcome(metrics.OutcomeFailed)
		return nil, &CreationError{Round: round, FieldID: f.ID(), FieldPath: f.FQN(), Creator: name, Err: err}
	}
	return resp, nil
}

// snapshot returns the pending fields ordered by id.
func snapshot(pending map[string]*yamlfield.Field) []*yamlfield.Field {
	ids := slices.Sorted(maps.Keys(pending))
	out := make([]*yamlfield.Field, len(ids))
	for i, id := range ids {
		out[i] = pending[id]
	}
	return out
}
