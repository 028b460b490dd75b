package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores renderers by name and resolves template paths to the
// renderer claiming their extension. Implementations can embed or wrap this
// for dependency injection.
type Registry struct {
	mu         sync.RWMutex
	renderers  map[string]Renderer
	extensions map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers:  make(map[string]Renderer),
		extensions: make(map[string]string),
	}
}

// Register adds a renderer by its Name() and claims its Extensions().
// Duplicate names or extension collisions return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	exts := make([]string, 0, len(renderer.Extensions()))
	for _, ext := range renderer.Extensions() {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if owner, taken := r.extensions[ext]; taken {
			return fmt.Errorf("render: extension %q already claimed by %q", ext, owner)
		}
		exts = append(exts, ext)
	}

	r.renderers[name] = renderer
	for _, ext := range exts {
		r.extensions[ext] = name
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// ForPath resolves the renderer claiming the path's extension. Unrecognized
// suffixes report ErrUnsupportedTemplate.
func (r *Registry) ForPath(path string) (Renderer, error) {
	ext := Ref(path).Ext()

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("render: template %q: %w (supported: %s)", path, ErrUnsupportedTemplate, r.supported())
	}
	return r.renderers[name], nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}

// supported returns the claimed extensions sorted; callers must hold the lock.
func (r *Registry) supported() string {
	exts := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	if len(exts) == 0 {
		return "none"
	}
	return strings.Join(exts, ", ")
}
