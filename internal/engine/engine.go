// Package engine runs recomputation passes for a host editor.
//
// A host reports the current document text together with what changed. Any
// change runs the structure analyzer and the decoration builder over the
// whole document with the settings snapshot current at that moment, then
// hands the result to the registered renderers. Passes are synchronous and
// serialized; nothing is carried from one pass to the next except the last
// result, which is returned as-is when nothing changed.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/bulletdash/internal/decoration"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/structure"
	"github.com/zjrosen/bulletdash/internal/tracing"
)

// ChangeFlags is the host's change notification.
type ChangeFlags struct {
	Doc       bool `json:"doc"`
	Viewport  bool `json:"viewport"`
	Selection bool `json:"selection"`
}

// Any reports whether a pass is needed.
func (f ChangeFlags) Any() bool {
	return f.Doc || f.Viewport || f.Selection
}

// DocChanged is the common case.
var DocChanged = ChangeFlags{Doc: true}

// Pass is the result of one recomputation.
type Pass struct {
	ID       string
	Text     string
	Flags    ChangeFlags
	Settings settings.Settings
	Roles    structure.Assignment
	Spans    []decoration.Span
	Took     time.Duration
}

// Renderer consumes a pass. Errors are logged and do not stop other
// renderers.
type Renderer interface {
	Apply(ctx context.Context, p *Pass) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, p *Pass) error

// Apply calls f.
func (f RendererFunc) Apply(ctx context.Context, p *Pass) error {
	return f(ctx, p)
}

// SettingsSource supplies the snapshot for a pass. *settings.Store
// satisfies it.
type SettingsSource interface {
	Snapshot() settings.Settings
}

// StaticSettings is a fixed snapshot.
type StaticSettings settings.Settings

// Snapshot returns s.
func (s StaticSettings) Snapshot() settings.Settings {
	return settings.Settings(s)
}

// Engine serializes passes.
type Engine struct {
	mu        sync.Mutex
	source    SettingsSource
	tracer    trace.Tracer
	renderers []Renderer
	last      *Pass
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracer records one span per pass.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithRenderer registers a renderer. Renderers run in registration order.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderers = append(e.renderers, r)
	}
}

// New creates an engine reading settings from source.
func New(source SettingsSource, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		tracer: noop.NewTracerProvider().Tracer("noop"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Update runs a pass for text unless flags report no change and a previous
// pass exists, in which case the previous pass is returned untouched.
func (e *Engine) Update(ctx context.Context, text string, flags ChangeFlags) *Pass {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !flags.Any() && e.last != nil {
		return e.last
	}

	start := e.now()
	p := &Pass{
		ID:       uuid.NewString(),
		Text:     text,
		Flags:    flags,
		Settings: e.source.Snapshot(),
	}

	ctx, span := e.tracer.Start(ctx, tracing.SpanPass, trace.WithAttributes(
		attribute.String(tracing.AttrPassID, p.ID),
		attribute.Int(tracing.AttrTextBytes, len(text)),
		attribute.Bool(tracing.AttrFlagDoc, flags.Doc),
		attribute.Bool(tracing.AttrFlagViewport, flags.Viewport),
		attribute.Bool(tracing.AttrFlagSelection, flags.Selection),
		attribute.Bool(tracing.AttrAutoFormatting, p.Settings.EnableAutoFormatting),
	))
	defer span.End()

	p.Roles, p.Spans = e.compute(ctx, text, p.Settings)
	p.Took = e.now().Sub(start)

	counts := p.Roles.Counts()
	span.SetAttributes(
		attribute.Int(tracing.AttrBullets, len(p.Roles)),
		attribute.Int(tracing.AttrGrandparents, counts[structure.Grandparent]),
		attribute.Int(tracing.AttrParents, counts[structure.Parent]),
		attribute.Int(tracing.AttrSpans, len(p.Spans)),
	)

	e.render(ctx, span, p)
	e.last = p

	log.Debug(log.CatEngine, "Pass complete",
		"id", p.ID, "bullets", len(p.Roles), "spans", len(p.Spans), "took", p.Took)
	return p
}

func (e *Engine) compute(ctx context.Context, text string, cfg settings.Settings) (structure.Assignment, []decoration.Span) {
	_, as := e.tracer.Start(ctx, tracing.SpanAnalyze)
	roles := structure.Analyze(text)
	as.End()

	_, ds := e.tracer.Start(ctx, tracing.SpanDecorate)
	spans := decoration.Build(text, roles, cfg)
	ds.End()
	return roles, spans
}

func (e *Engine) render(ctx context.Context, parent trace.Span, p *Pass) {
	for _, r := range e.renderers {
		rctx, span := e.tracer.Start(ctx, tracing.SpanRender)
		if err := r.Apply(rctx, p); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			parent.AddEvent("renderer failed")
			log.ErrorErr(log.CatEngine, "Renderer failed", err, "pass", p.ID)
		}
		span.End()
	}
}

// Last returns the most recent pass, or nil before the first update.
func (e *Engine) Last() *Pass {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Invalidate forgets the last pass so the next Update recomputes even
// without change flags. Hosts call it when the settings snapshot changes.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = nil
}

// Decorate runs the analyzer and builder once without an engine.
func Decorate(text string, cfg settings.Settings) (structure.Assignment, []decoration.Span) {
	roles := structure.Analyze(text)
	return roles, decoration.Build(text, roles, cfg)
}
