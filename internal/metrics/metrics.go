// Package metrics holds the Prometheus collectors for plan creation.
//
// A nil *Collector is valid and records nothing, so callers that do not care
// about metrics never have to check for one.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plancreator"

// Field outcomes.
const (
	OutcomeResolved   = "resolved"
	OutcomeUnresolved = "unresolved"
	OutcomeFailed     = "failed"
)

// Collector groups the plan creation metrics.
type Collector struct {
	Plans         *prometheus.CounterVec
	PlanDuration  prometheus.Histogram
	Rounds        prometheus.Counter
	RoundDuration prometheus.Histogram
	Fields        *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is what tests usually want.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		Plans: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plans_total",
				Help:      "Number of CreatePlan calls by result.",
			},
			[]string{"result"},
		),
		PlanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_duration_seconds",
				Help:      "Wall time of CreatePlan calls.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
		Rounds: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rounds_total",
				Help:      "Number of expansion rounds dispatched.",
			},
		),
		RoundDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "round_duration_seconds",
				Help:      "Wall time of a single expansion round.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		Fields: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fields_total",
				Help:      "Number of dispatched fields by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveRound records one finished round.
func (c *Collector) ObserveRound(d time.Duration) {
	if c == nil {
		return
	}
	c.Rounds.Inc()
	c.RoundDuration.Observe(d.Seconds())
}

// FieldOutcome counts a dispatched field under the given outcome.
func (c *Collector) FieldOutcome(outcome string) {
	if c == nil {
		return
	}
	c.Fields.WithLabelValues(outcome).Inc()
}

// PlanFinished records the result of a CreatePlan call.
func (c *Collector) PlanFinished(err error, d time.Duration) {
	if c == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	c.Plans.WithLabelValues(result).Inc()
	c.PlanDuration.Observe(d.Seconds())
}
