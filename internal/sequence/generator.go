package sequence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/louisbranch/seqgen/internal/platform/errors"
	"github.com/louisbranch/seqgen/internal/sequence/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/seqgen/internal/sequence"

// Step is the outcome of one generate call.
type Step struct {
	Previous uint32
	Value    uint32
	Source   Source
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the wall clock used for the initial seed.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// Generator advances the persisted sequence state.
type Generator struct {
	store  storage.StateStore
	clock  func() time.Time
	tracer trace.Tracer
}

// New creates a generator over store.
func New(store storage.StateStore, opts ...Option) (*Generator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	g := &Generator{
		store:  store,
		clock:  time.Now,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Next loads the persisted state, or derives one from the clock when none
// exists, advances it once, and persists the result. Every call consumes
// and mutates the state exactly once.
func (g *Generator) Next(ctx context.Context) (step Step, err error) {
	ctx, span := g.tracer.Start(ctx, "sequence.next")
	defer func() { endSpan(span, err) }()

	current, ok, err := g.store.Load(ctx)
	if err != nil {
		return Step{}, g.stateError("load state", err)
	}
	source := SourceStore
	if !ok {
		current = InitialSeed(g.clock())
		source = SourceClock
	}

	next := Advance(current)
	if err := g.store.Save(ctx, next); err != nil {
		return Step{}, g.stateError("save state", err)
	}

	span.SetAttributes(
		attribute.String("sequence.source", string(source)),
		attribute.Int64("sequence.value", int64(next)),
	)
	return Step{Previous: current, Value: next, Source: source}, nil
}

// SetSeed persists seed as the new state without applying a step. The
// prior record is never read, so a malformed record can be replaced.
func (g *Generator) SetSeed(ctx context.Context, seed uint32) (err error) {
	ctx, span := g.tracer.Start(ctx, "sequence.set_seed",
		trace.WithAttributes(attribute.Int64("sequence.seed", int64(seed))),
	)
	defer func() { endSpan(span, err) }()

	if err := g.store.Save(ctx, seed); err != nil {
		return g.stateError("save state", err)
	}
	return nil
}

// Current returns the persisted state without advancing it.
func (g *Generator) Current(ctx context.Context) (uint32, bool, error) {
	seed, ok, err := g.store.Load(ctx)
	if err != nil {
		return 0, false, g.stateError("load state", err)
	}
	return seed, ok, nil
}

func (g *Generator) stateError(op string, err error) error {
	var malformed *storage.MalformedStateError
	if errors.As(err, &malformed) {
		return apperrors.WrapWithMetadata(
			apperrors.CodeStateMalformed,
			fmt.Sprintf("%s: %v", op, err),
			map[string]string{"Path": malformed.Location, "Content": strconv.Quote(malformed.Content)},
			err,
		)
	}
	return apperrors.WrapWithMetadata(
		apperrors.CodeStateUnavailable,
		fmt.Sprintf("%s: %v", op, err),
		map[string]string{"Path": g.store.Location()},
		err,
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
