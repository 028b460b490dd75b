package params

import (
	"context"
	"errors"
	"io/fs"
)

// ErrParse marks parameter documents that could not be decoded into a
// key/value mapping. Match with errors.Is.
var ErrParse = errors.New("params: malformed parameter document")

// Loader resolves a Source into customisation data.
type Loader interface {
	Load(ctx context.Context, src Source) (CustomData, error)
}

// LoaderOptions carries pre-resolved loader configuration.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups. Optional.
	FileSystem fs.FS
}

// LoaderOption customises loader construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem supplies the fs.FS used for SourceKindFS sources.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileSystem = fsys
	}
}

// NewLoaderOptions folds options into a resolved configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
