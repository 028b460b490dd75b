// Package wasmtpl renders scripted templates compiled to WebAssembly. The
// module runs in a wazero sandbox and must export execute_template, which
// receives the customisation data as JSON and returns the serialized
// configuration document.
//
// Guest ABI:
//
//	allocate(size u64) -> ptr u64
//	execute_template(ptr u64, len u64) -> packed u64 (ptr<<32 | len)
//
// The packed return points at the document text in guest memory.
package wasmtpl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/goliatone/go-stackgen/pkg/params"
	"github.com/goliatone/go-stackgen/pkg/render"
)

const (
	entryPoint  = "execute_template"
	allocExport = "allocate"
)

// Renderer satisfies render.Renderer for .wasm script templates. Each Render
// call instantiates a fresh runtime so runs stay isolated from one another.
type Renderer struct {
	extensions []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a script renderer.
func New() *Renderer {
	return &Renderer{extensions: []string{".wasm"}}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "script" }

// Extensions lists the claimed template suffixes.
func (r *Renderer) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// Render loads the module, invokes its entry point once with the
// customisation data, and returns the document text the guest produced.
func (r *Renderer) Render(ctx context.Context, ref render.TemplateRef, data params.CustomData, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wasmBytes, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("wasmtpl: read template %q: %w", ref.Path, err)
	}

	merged := data
	if len(opts.Globals) > 0 {
		merged = params.CustomData(opts.Globals).Merge(data)
	}
	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("wasmtpl: encode custom data: %w", err)
	}

	runtime := wazero.NewRuntime(ctx)
	defer runtime.Close(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, runtime)

	module, err := runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("wasmtpl: instantiate template %q: %w: %v", ref.Path, render.ErrExecution, err)
	}

	execute := module.ExportedFunction(entryPoint)
	if execute == nil {
		return nil, fmt.Errorf("wasmtpl: template %q: %w", ref.Path, render.ErrMissingEntryPoint)
	}
	allocate := module.ExportedFunction(allocExport)
	if allocate == nil {
		return nil, fmt.Errorf("wasmtpl: template %q exports no %q: %w", ref.Path, allocExport, render.ErrMissingEntryPoint)
	}

	allocated, err := allocate.Call(ctx, uint64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("wasmtpl: allocate in guest: %w: %v", render.ErrExecution, err)
	}
	if len(allocated) == 0 {
		return nil, fmt.Errorf("wasmtpl: %w: allocate returned no results", render.ErrExecution)
	}
	ptr := uint32(allocated[0])
	if !module.Memory().Write(ptr, payload) {
		return nil, fmt.Errorf("wasmtpl: %w: write custom data to guest memory", render.ErrExecution)
	}

	results, err := execute.Call(ctx, uint64(ptr), uint64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("wasmtpl: execute template %q: %w: %v", ref.Path, render.ErrExecution, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("wasmtpl: %w: entry point returned no results", render.ErrExecution)
	}

	packed := results[0]
	outPtr := uint32(packed >> 32)
	outLen := uint32(packed)
	if outPtr == 0 {
		return nil, fmt.Errorf("wasmtpl: %w: entry point returned a null document", render.ErrExecution)
	}

	out, ok := module.Memory().Read(outPtr, outLen)
	if !ok {
		return nil, fmt.Errorf("wasmtpl: %w: read document from guest memory", render.ErrExecution)
	}

	// Copy before the runtime closes and the backing memory goes away.
	doc := make([]byte, len(out))
	copy(doc, out)
	return doc, nil
}
