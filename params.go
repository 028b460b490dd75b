package stackgen

import (
	internalLoader "github.com/goliatone/go-stackgen/internal/params/loader"
	"github.com/goliatone/go-stackgen/pkg/params"
)

// CustomData is the customisation mapping supplied to every rendering
// strategy.
type CustomData = params.CustomData

// NewParamsLoader constructs a parameter loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewParamsLoader(options ...params.LoaderOption) params.Loader {
	cfg := params.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
