// Package loader implements params.Loader for file, fs.FS, and literal
// sources, choosing the decoder from the document's extension.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stackgen/pkg/params"
)

// literalKey receives a bare literal value, matching the historical CLI shape
// where the third argument named the target environment.
const literalKey = "environment"

// Loader reads and decodes parameter documents.
type Loader struct {
	fs fs.FS
}

var _ params.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options params.LoaderOptions) params.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load resolves the source into a customisation mapping.
func (l *Loader) Load(ctx context.Context, src params.Source) (params.CustomData, error) {
	if src == nil {
		return nil, errors.New("params loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case params.SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("params loader: read %q: %w", src.Location(), err)
		}
		return decode(src.Location(), data)
	case params.SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("params loader: fs source requires WithFileSystem")
		}
		data, err := fs.ReadFile(l.fs, src.Location())
		if err != nil {
			return nil, fmt.Errorf("params loader: read %q: %w", src.Location(), err)
		}
		return decode(src.Location(), data)
	case params.SourceKindLiteral:
		return parseLiteral(src.Location())
	default:
		return nil, errors.New("params loader: unsupported source kind")
	}
}

func decode(path string, data []byte) (params.CustomData, error) {
	out := map[string]any{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("params loader: decode %q: %w: %v", path, params.ErrParse, err)
		}
	default:
		// YAML is a superset of JSON, so .json, .yaml, .yml, and unknown
		// extensions all go through the same decoder.
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("params loader: decode %q: %w: %v", path, params.ErrParse, err)
		}
	}

	return params.CustomData(out), nil
}

func parseLiteral(raw string) (params.CustomData, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("params loader: %w: empty literal", params.ErrParse)
	}
	if !strings.Contains(trimmed, "=") {
		return params.CustomData{literalKey: trimmed}, nil
	}

	out := params.CustomData{}
	for _, pair := range strings.Split(trimmed, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("params loader: %w: literal pair %q", params.ErrParse, pair)
		}
		out[key] = strings.TrimSpace(value)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("params loader: %w: empty literal", params.ErrParse)
	}
	return out, nil
}
