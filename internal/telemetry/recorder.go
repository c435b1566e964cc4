// Package telemetry wraps search invocations in OpenTelemetry spans and
// records node counters and durations.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/AaronLay10/vacuumworld/internal/search"
)

const instrumentationName = "github.com/AaronLay10/vacuumworld"

// Recorder creates one span per search and feeds the search metrics.
type Recorder struct {
	tracer trace.Tracer

	searches  metric.Int64Counter
	expanded  metric.Int64Counter
	generated metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewRecorder builds the instruments from the given providers.
func NewRecorder(tp trace.TracerProvider, mp metric.MeterProvider) (*Recorder, error) {
	meter := mp.Meter(instrumentationName)
	r := &Recorder{tracer: tp.Tracer(instrumentationName)}

	var err error
	r.searches, err = meter.Int64Counter(
		"vacuum.search.runs",
		metric.WithDescription("Number of search invocations"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, err
	}

	r.expanded, err = meter.Int64Counter(
		"vacuum.search.nodes.expanded",
		metric.WithDescription("Nodes expanded by searches"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, err
	}

	r.generated, err = meter.Int64Counter(
		"vacuum.search.nodes.generated",
		metric.WithDescription("Nodes generated by searches"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, err
	}

	r.duration, err = meter.Float64Histogram(
		"vacuum.search.duration",
		metric.WithDescription("Search wall-clock time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// SearchFunc runs one search.
type SearchFunc func(ctx context.Context) (*search.Result, error)

// Search runs fn inside a span named after the strategy. The result and
// error of fn are returned unchanged.
func (r *Recorder) Search(ctx context.Context, runID, problem string, strategy search.Strategy, fn SearchFunc) (*search.Result, error) {
	base := []attribute.KeyValue{
		attribute.String("vacuum.strategy", string(strategy)),
		attribute.String("vacuum.problem", problem),
	}

	ctx, span := r.tracer.Start(ctx, "search."+string(strategy),
		trace.WithAttributes(append(base, attribute.String("vacuum.run_id", runID))...))
	defer span.End()

	res, err := fn(ctx)

	outcome := "solved"
	switch {
	case errors.Is(err, search.ErrResourceExhausted):
		outcome = "exhausted"
	case err != nil:
		outcome = "error"
	case res != nil && !res.Solved:
		outcome = "unsolved"
	}
	set := metric.WithAttributes(append(base, attribute.String("vacuum.outcome", outcome))...)
	r.searches.Add(ctx, 1, set)

	if res != nil {
		span.SetAttributes(
			attribute.Bool("vacuum.solved", res.Solved),
			attribute.Int("vacuum.expanded", res.Expanded),
			attribute.Int("vacuum.generated", res.Generated),
			attribute.Int("vacuum.moves", res.Moves()),
			attribute.Float64("vacuum.cost", res.TotalCost),
		)
		if strategy == search.StrategyIDS {
			span.SetAttributes(attribute.Int("vacuum.depth_bound", res.DepthBound))
		}
		r.expanded.Add(ctx, int64(res.Expanded), set)
		r.generated.Add(ctx, int64(res.Generated), set)
		r.duration.Record(ctx, float64(res.Elapsed.Microseconds())/1000, set)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, outcome)
	}
	return res, err
}
