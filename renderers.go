package stackgen

import (
	"github.com/goliatone/go-stackgen/internal/renderers/markup"
	"github.com/goliatone/go-stackgen/internal/renderers/wasmtpl"
	"github.com/goliatone/go-stackgen/pkg/render"
)

// NewMarkupRenderer exposes the built-in pongo2 renderer so callers can
// register it on their own registries. Engine configuration travels through
// render.Options on each request.
func NewMarkupRenderer() render.Renderer {
	return markup.New()
}

// NewScriptRenderer exposes the built-in WebAssembly script renderer.
func NewScriptRenderer() render.Renderer {
	return wasmtpl.New()
}

// DefaultRegistry returns a registry pre-populated with the built-in markup
// and script renderers.
func DefaultRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(markup.New())
	registry.MustRegister(wasmtpl.New())
	return registry
}
