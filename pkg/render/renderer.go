package render

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-stackgen/pkg/params"
)

// TemplateRef identifies a template on disk. The extension decides which
// renderer handles it unless the caller names one explicitly.
type TemplateRef struct {
	Path string
}

// Ref wraps a path in a TemplateRef.
func Ref(path string) TemplateRef {
	return TemplateRef{Path: path}
}

// Ext returns the lowercased extension, including the leading dot.
func (r TemplateRef) Ext() string {
	return strings.ToLower(filepath.Ext(r.Path))
}

// Options carries explicit engine configuration. Nothing here falls back to
// process-wide state; a zero value means engine defaults.
type Options struct {
	// Globals are merged into the customisation data before rendering.
	// Request data wins on key collisions.
	Globals map[string]any
}

// Renderer converts a template plus customisation data into the serialized
// configuration document.
type Renderer interface {
	Name() string
	// Extensions lists the template suffixes this renderer claims, lowercased
	// with leading dots. Empty means the renderer is selected by name only.
	Extensions() []string
	Render(ctx context.Context, ref TemplateRef, data params.CustomData, opts Options) ([]byte, error)
}

// RenderFunc is the signature for templates compiled into the binary.
type RenderFunc func(ctx context.Context, data params.CustomData) ([]byte, error)

// Func adapts a plain function into a Renderer, giving "template as code"
// authors a build-time registration path with an explicit trust boundary.
func Func(name string, fn RenderFunc) Renderer {
	return &funcRenderer{name: name, fn: fn}
}

type funcRenderer struct {
	name string
	fn   RenderFunc
}

func (r *funcRenderer) Name() string { return r.name }

func (r *funcRenderer) Extensions() []string { return nil }

func (r *funcRenderer) Render(ctx context.Context, _ TemplateRef, data params.CustomData, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	merged := data
	if len(opts.Globals) > 0 {
		merged = params.CustomData(opts.Globals).Merge(data)
	}
	return r.fn(ctx, merged)
}
