package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
)

// Publisher is the broker connection an MQTTSink writes through.
// *mqtt.Client satisfies it.
type Publisher interface {
	Publish(topic string, qos byte, payload []byte) error
	Disconnect()
}

// MQTTOptions tune delivery to the broker.
type MQTTOptions struct {
	TopicPrefix string
	QoS         byte

	// RetryMaxAttempts includes the first attempt.
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration

	// BreakerThreshold is how many consecutive failed deliveries open the
	// breaker; while open, reports are dropped without contacting the
	// broker until BreakerTimeout passes.
	BreakerThreshold int
	BreakerTimeout   time.Duration
}

func DefaultMQTTOptions() MQTTOptions {
	return MQTTOptions{
		TopicPrefix:       "vacuumworld/results",
		QoS:               1,
		RetryMaxAttempts:  3,
		RetryInitialDelay: 100 * time.Millisecond,
		BreakerThreshold:  3,
		BreakerTimeout:    30 * time.Second,
	}
}

// MQTTSink publishes each report as JSON to prefix/problem/strategy.
type MQTTSink struct {
	pub     Publisher
	prefix  string
	qos     byte
	retrier retry.Retry[struct{}]
	breaker circuitbreaker.CircuitBreaker[struct{}]
}

func NewMQTTSink(pub Publisher, opts MQTTOptions) *MQTTSink {
	def := DefaultMQTTOptions()
	if opts.RetryMaxAttempts < 1 {
		opts.RetryMaxAttempts = def.RetryMaxAttempts
	}
	if opts.RetryInitialDelay <= 0 {
		opts.RetryInitialDelay = def.RetryInitialDelay
	}
	if opts.BreakerThreshold < 1 {
		opts.BreakerThreshold = def.BreakerThreshold
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = def.BreakerTimeout
	}
	threshold := uint32(opts.BreakerThreshold) // #nosec G115 -- checked above

	return &MQTTSink{
		pub:    pub,
		prefix: strings.TrimSuffix(opts.TopicPrefix, "/"),
		qos:    opts.QoS,
		retrier: retry.New[struct{}](retry.Config{
			MaxAttempts:   opts.RetryMaxAttempts,
			InitialDelay:  opts.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
		}),
		breaker: circuitbreaker.New[struct{}](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    opts.BreakerTimeout,
			Timeout:     opts.BreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
		}),
	}
}

var topicEscaper = strings.NewReplacer("/", "_", "+", "_", "#", "_")

// Topic returns the topic a report is published to. MQTT wildcard and
// level separators in the problem name are replaced.
func (s *MQTTSink) Topic(r *Report) string {
	return s.prefix + "/" + topicEscaper.Replace(r.Problem) + "/" + string(r.Strategy)
}

// Publish delivers r, retrying with exponential backoff.
func (s *MQTTSink) Publish(ctx context.Context, r *Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	topic := s.Topic(r)

	_, err = s.breaker.Execute(ctx, func(ctx context.Context) (struct{}, error) {
		return s.retrier.Do(ctx, func(context.Context) (struct{}, error) {
			return struct{}{}, s.pub.Publish(topic, s.qos, b)
		})
	})
	if err != nil {
		return fmt.Errorf("mqtt publish %s: %w", topic, err)
	}
	return nil
}

func (s *MQTTSink) Close() error {
	s.pub.Disconnect()
	return nil
}
