package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-stackgen/internal/output"
	paramsloader "github.com/goliatone/go-stackgen/internal/params/loader"
	"github.com/goliatone/go-stackgen/internal/renderers/markup"
	"github.com/goliatone/go-stackgen/internal/renderers/wasmtpl"
	"github.com/goliatone/go-stackgen/pkg/compare"
	"github.com/goliatone/go-stackgen/pkg/params"
	"github.com/goliatone/go-stackgen/pkg/render"
)

// Writer persists the rendered document. The default implementation writes
// atomically via renameio.
type Writer interface {
	Write(path string, data []byte) error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithParamsLoader injects a custom parameter loader.
func WithParamsLoader(loader params.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer names the renderer used when a request omits an
// explicit Renderer field and extension resolution finds nothing.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithWriter injects a custom output writer.
func WithWriter(writer Writer) Option {
	return func(o *Orchestrator) {
		o.writer = writer
	}
}

// WithLogger attaches a structured logger for stage diagnostics. The default
// logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from parameter document to
// written configuration. It applies sensible defaults (builtin renderers,
// multi-format parameter loader, atomic writer) while remaining open to
// dependency injection for advanced callers.
type Orchestrator struct {
	loader          params.Loader
	registry        *render.Registry
	writer          Writer
	logger          zerolog.Logger
	defaultRenderer string
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one rendering run.
type Request struct {
	// Template is the path to the markup or script template.
	Template string

	// Renderer names the renderer to use, bypassing extension resolution.
	// Build-time registered script templates are selected this way.
	Renderer string

	// Params supplies pre-loaded customisation data. Takes precedence over
	// ParamsSource.
	Params params.CustomData

	// ParamsSource identifies where to load customisation data from when
	// Params is nil.
	ParamsSource params.Source

	// Output is the destination path. Empty skips the write stage, leaving
	// the document on the Report only.
	Output string

	// Compare is the reference document path. Empty skips the comparison
	// stage.
	Compare string

	// RenderOptions carries per-request engine configuration.
	RenderOptions render.Options
}

// Report is the outcome of a successful run. Comparison is nil unless the
// request asked for one; a mismatch is reported here, not as an error.
type Report struct {
	Document   []byte
	Comparison *compare.Result
}

// Generate executes the load → resolve → render → compare → write sequence.
// Any stage failure aborts the remainder; the write stage runs last so a
// failed run never produces an output file.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Report, error) {
	if ctx == nil {
		return Report{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if req.Template == "" {
		return Report{}, errors.New("orchestrator: template path is required")
	}

	data, err := o.resolveParams(ctx, req)
	if err != nil {
		return Report{}, fmt.Errorf("orchestrator: load params: %w", err)
	}
	o.logger.Debug().Int("keys", len(data)).Msg("parameters resolved")

	renderer, err := o.rendererFor(req)
	if err != nil {
		return Report{}, err
	}
	o.logger.Debug().Str("renderer", renderer.Name()).Str("template", req.Template).Msg("renderer resolved")

	document, err := renderer.Render(ctx, render.Ref(req.Template), data, req.RenderOptions)
	if err != nil {
		return Report{}, fmt.Errorf("orchestrator: render template: %w", err)
	}

	report := Report{Document: document}

	if req.Compare != "" {
		result, err := compare.Files(document, req.Compare)
		if err != nil {
			return Report{}, fmt.Errorf("orchestrator: compare output: %w", err)
		}
		report.Comparison = &result
		if result.Match {
			o.logger.Info().Str("reference", req.Compare).Msg("rendered document matches reference")
		} else {
			o.logger.Warn().Str("reference", req.Compare).Msg("rendered document differs from reference")
		}
	}

	if req.Output != "" {
		if err := o.writer.Write(req.Output, document); err != nil {
			return Report{}, fmt.Errorf("orchestrator: write output: %w", err)
		}
		o.logger.Info().Str("output", req.Output).Int("bytes", len(document)).Msg("configuration written")
	}

	return report, nil
}

func (o *Orchestrator) resolveParams(ctx context.Context, req Request) (params.CustomData, error) {
	if req.Params != nil {
		return req.Params, nil
	}
	if req.ParamsSource == nil {
		return params.CustomData{}, nil
	}
	if o.loader == nil {
		return nil, errors.New("params loader is nil")
	}
	return o.loader.Load(ctx, req.ParamsSource)
}

func (o *Orchestrator) rendererFor(req Request) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	if req.Renderer != "" {
		renderer, err := o.registry.Get(req.Renderer)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}

	renderer, err := o.registry.ForPath(req.Template)
	if err == nil {
		return renderer, nil
	}
	if o.defaultRenderer != "" {
		if fallback, fallbackErr := o.registry.Get(o.defaultRenderer); fallbackErr == nil {
			return fallback, nil
		}
	}
	return nil, fmt.Errorf("orchestrator: %w", err)
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = paramsloader.New(params.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(markup.New())
		o.registry.MustRegister(wasmtpl.New())
	}
	if o.writer == nil {
		o.writer = output.FileWriter{}
	}

	o.defaultsApplied = true
}
