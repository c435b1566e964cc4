package telemetry

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/AaronLay10/vacuumworld/internal/logging"
)

// Provider owns the trace and metric pipelines for one process.
type Provider struct {
	Recorder *Recorder

	reader        *sdkmetric.ManualReader
	shutdownFuncs []func(context.Context) error
}

// NewNoopProvider records nothing.
func NewNoopProvider() *Provider {
	r, _ := NewRecorder(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
	return &Provider{Recorder: r}
}

// NewStdoutProvider pretty-prints spans to w and keeps metrics in memory
// so Shutdown can log their totals.
func NewStdoutProvider(w io.Writer) (*Provider, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := NewRecorder(tp, mp)
	if err != nil {
		return nil, err
	}

	return &Provider{
		Recorder:      r,
		reader:        reader,
		shutdownFuncs: []func(context.Context) error{tp.Shutdown, mp.Shutdown},
	}, nil
}

// Totals sums every counter collected so far, keyed by instrument name.
// A noop provider returns an empty map.
func (p *Provider) Totals(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	if p.reader == nil {
		return out, nil
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}
	return out, nil
}

// Shutdown logs the counter totals and flushes the exporters.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.reader != nil {
		totals, err := p.Totals(ctx)
		if err != nil {
			logging.Warn().With(logging.Err(err)).Msg("metric collection failed")
		} else {
			entry := logging.Info()
			for name, v := range totals {
				entry = entry.With(logging.Int(name, int(v)))
			}
			entry.Msg("search metrics")
		}
	}

	var errs []error
	for _, fn := range p.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
