package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/brentlemons/aws-lambda-events/apigw"
	"github.com/brentlemons/aws-lambda-events/dynamodb"
	"github.com/brentlemons/aws-lambda-events/s3"
	"github.com/brentlemons/aws-lambda-events/sns"
	"github.com/brentlemons/aws-lambda-events/sqs"
	"github.com/brentlemons/aws-lambda-events/wire"
)

var (
	// ErrUnknownFamily is returned when no registered family matches the
	// payload.
	ErrUnknownFamily = errors.New("unknown event family")

	// ErrDuplicateFamily is returned when registering a family name twice.
	ErrDuplicateFamily = errors.New("event family already registered")
)

// Family describes one recognizable event family: a sniffing predicate over
// the parsed document and the decoder to run when it matches.
type Family struct {
	// Name identifies the family, e.g. "aws:s3".
	Name string

	// Match reports whether the document belongs to this family. It must be
	// cheap and side-effect free; it sees the already-parsed document.
	Match func(wire.Value) bool

	// Decode decodes the raw payload into the family's typed event.
	Decode func([]byte) (any, error)
}

// Dispatcher routes raw payloads to the matching family decoder. Families
// are tried in registration order, builtins first. A zero-value Dispatcher
// is not usable; construct with NewDispatcher.
type Dispatcher struct {
	mu       sync.RWMutex
	families []Family
	byName   map[string]struct{}
	logger   *slog.Logger
	metrics  bool
	decoded  metric.Int64Counter
	failed   metric.Int64Counter
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for debug-level dispatch logging.
// Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics enables or disables OpenTelemetry decode counters.
// Default is disabled; enabling is cheap when no meter provider is set.
func WithMetrics(enabled bool) Option {
	return func(d *Dispatcher) { d.metrics = enabled }
}

// NewDispatcher creates a dispatcher preloaded with the built-in families
// (S3, SNS, SQS, DynamoDB streams, API Gateway proxy requests).
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: slog.Default(),
		byName: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics {
		meter := otel.Meter("aws-lambda-events")
		d.decoded, _ = meter.Int64Counter("events.decoded",
			metric.WithDescription("Total payloads decoded by event family"))
		d.failed, _ = meter.Int64Counter("events.failed",
			metric.WithDescription("Total payloads that failed to decode"))
	}
	for _, f := range builtinFamilies() {
		if err := d.Register(f); err != nil {
			panic("events: builtin registration: " + err.Error())
		}
	}
	return d
}

// Register adds a family. Returns ErrDuplicateFamily if the name is taken.
func (d *Dispatcher) Register(f Family) error {
	if f.Name == "" || f.Match == nil || f.Decode == nil {
		return errors.New("events: family needs a name, a matcher and a decoder")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.byName[f.Name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateFamily, f.Name)
	}
	d.byName[f.Name] = struct{}{}
	d.families = append(d.families, f)
	return nil
}

// Detect returns the name of the family the payload belongs to, without
// decoding it fully.
func (d *Dispatcher) Detect(body []byte) (string, error) {
	doc, err := wire.Parse(body)
	if err != nil {
		return "", err
	}
	f, ok := d.match(doc)
	if !ok {
		return "", ErrUnknownFamily
	}
	return f.Name, nil
}

// Decode sniffs the payload's family and decodes it into that family's
// typed event. The returned string is the family name.
func (d *Dispatcher) Decode(ctx context.Context, body []byte) (string, any, error) {
	doc, err := wire.Parse(body)
	if err != nil {
		d.count(ctx, d.failed, "")
		return "", nil, err
	}
	f, ok := d.match(doc)
	if !ok {
		d.count(ctx, d.failed, "")
		return "", nil, ErrUnknownFamily
	}
	event, err := f.Decode(body)
	if err != nil {
		d.count(ctx, d.failed, f.Name)
		return f.Name, nil, err
	}
	d.count(ctx, d.decoded, f.Name)
	d.logger.DebugContext(ctx, "decoded event payload", "family", f.Name, "bytes", len(body))
	return f.Name, event, nil
}

func (d *Dispatcher) match(doc wire.Value) (Family, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, f := range d.families {
		if f.Match(doc) {
			return f, true
		}
	}
	return Family{}, false
}

func (d *Dispatcher) count(ctx context.Context, counter metric.Int64Counter, family string) {
	if counter == nil {
		return
	}
	if family == "" {
		counter.Add(ctx, 1)
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("family", family)))
}

func builtinFamilies() []Family {
	return []Family{
		{
			Name:   s3.EventSource,
			Match:  matchRecordSource("eventSource", s3.EventSource),
			Decode: func(body []byte) (any, error) { return s3.Decode(body) },
		},
		{
			Name:   sns.EventSource,
			Match:  matchRecordSource("EventSource", sns.EventSource),
			Decode: func(body []byte) (any, error) { return sns.Decode(body) },
		},
		{
			Name:   sqs.EventSource,
			Match:  matchRecordSource("eventSource", sqs.EventSource),
			Decode: func(body []byte) (any, error) { return sqs.Decode(body) },
		},
		{
			Name:   dynamodb.EventSource,
			Match:  matchRecordSource("eventSource", dynamodb.EventSource),
			Decode: func(body []byte) (any, error) { return dynamodb.Decode(body) },
		},
		{
			Name: "aws:apigw",
			Match: func(doc wire.Value) bool {
				obj := doc.Object()
				if obj == nil {
					return false
				}
				return obj.Has("httpMethod") && obj.Has("requestContext")
			},
			Decode: func(body []byte) (any, error) { return apigw.DecodeRequest(body) },
		},
	}
}

// matchRecordSource matches envelopes of the Records-array shape whose
// first record carries the given source value under the given key.
func matchRecordSource(key, source string) func(wire.Value) bool {
	return func(doc wire.Value) bool {
		obj := doc.Object()
		if obj == nil {
			return false
		}
		records, ok := obj.Get("Records")
		if !ok || records.Kind() != wire.Array || len(records.Array()) == 0 {
			return false
		}
		first := records.Array()[0].Object()
		if first == nil {
			return false
		}
		got, ok := first.Get(key)
		return ok && got.Kind() == wire.String && got.Str() == source
	}
}
