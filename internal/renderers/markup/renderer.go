// Package markup renders declarative templates with the pongo2 engine.
// Templates use Jinja2-style substitution markers ({{ key }}) resolved
// against the customisation data.
package markup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-stackgen/pkg/params"
	"github.com/goliatone/go-stackgen/pkg/render"
)

// Option configures the renderer before construction.
type Option func(*Renderer)

// WithGlobals seeds values available to every template rendered by this
// instance. Per-request data and render.Options.Globals still win.
func WithGlobals(globals map[string]any) Option {
	return func(r *Renderer) {
		if len(globals) == 0 {
			return
		}
		if r.globals == nil {
			r.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			r.globals[key] = value
		}
	}
}

// WithExtensions overrides the template suffixes this renderer claims.
func WithExtensions(exts ...string) Option {
	return func(r *Renderer) {
		if len(exts) > 0 {
			r.extensions = append([]string(nil), exts...)
		}
	}
}

// Renderer satisfies render.Renderer using a per-call pongo2 template set
// rooted at the template's directory, so relative includes resolve the way
// the template author expects.
type Renderer struct {
	globals    map[string]any
	extensions []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a markup renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{
		extensions: []string{".j2", ".jinja", ".tpl"},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "markup" }

// Extensions lists the claimed template suffixes.
func (r *Renderer) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// Render loads the template file and substitutes customisation values.
// Missing substitution keys follow the engine's own policy; the tool adds no
// default-value layer of its own.
func (r *Renderer) Render(ctx context.Context, ref render.TemplateRef, data params.CustomData, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(ref.Path); err != nil {
		return nil, fmt.Errorf("markup: template %q: %w", ref.Path, err)
	}

	dir, file := filepath.Split(ref.Path)
	if dir == "" {
		dir = "."
	}

	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("markup: create loader for %q: %w", dir, err)
	}
	set := pongo2.NewSet("stackgen", loader)

	tmpl, err := set.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("markup: parse template %q: %w", ref.Path, err)
	}

	viewContext, err := buildContext(r.globals, opts.Globals, data)
	if err != nil {
		return nil, fmt.Errorf("markup: convert data: %w", err)
	}

	out, err := tmpl.Execute(viewContext)
	if err != nil {
		return nil, fmt.Errorf("markup: execute template %q: %w", ref.Path, err)
	}
	return []byte(out), nil
}

// buildContext layers instance globals, per-request globals, and the
// customisation data, with later layers winning on collisions. Values are
// normalised through a JSON round-trip so arbitrary structs behave like the
// plain maps templates expect.
func buildContext(layers ...map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context)
	for _, layer := range layers {
		for key, value := range layer {
			converted, err := convertValue(value)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
	}
	return out, nil
}

func convertValue(value any) (any, error) {
	switch value.(type) {
	case nil, string, bool, int, int64, float64:
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
