package params

import (
	"fmt"
	"sort"
	"strings"
)

// CustomData is the customisation mapping handed to every rendering strategy.
// It is loaded once per run and treated as read-only afterwards; renderers
// receive it as-is and must not mutate it.
type CustomData map[string]any

// Clone returns a shallow copy so callers can layer overrides without touching
// the loaded mapping.
func (d CustomData) Clone() CustomData {
	if d == nil {
		return nil
	}
	out := make(CustomData, len(d))
	for key, value := range d {
		out[key] = value
	}
	return out
}

// Keys returns the mapping keys in sorted order.
func (d CustomData) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Merge overlays extra values on top of a copy of the receiver. The receiver
// is never modified.
func (d CustomData) Merge(extra map[string]any) CustomData {
	if len(extra) == 0 {
		return d
	}
	out := d.Clone()
	if out == nil {
		out = make(CustomData, len(extra))
	}
	for key, value := range extra {
		out[key] = value
	}
	return out
}

// String renders a compact key=value listing, mostly for diagnostics.
func (d CustomData) String() string {
	parts := make([]string, 0, len(d))
	for _, key := range d.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", key, d[key]))
	}
	return strings.Join(parts, " ")
}
