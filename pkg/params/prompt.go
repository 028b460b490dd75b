package params

import (
	"context"
	"fmt"
)

// InputConfig configures a single value prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver abstracts the interactive prompt implementation so review
// logic can be tested without a real terminal.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

// Review walks the loaded mapping in key order and lets the user confirm or
// override each value. Accepting a prompt's default keeps the original typed
// value; any edit replaces it with the entered string. The input mapping is
// not modified.
func Review(ctx context.Context, data CustomData, driver PromptDriver) (CustomData, error) {
	if driver == nil {
		return data, fmt.Errorf("params: prompt driver is required")
	}
	if len(data) == 0 {
		return data, nil
	}

	out := data.Clone()
	for _, key := range data.Keys() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := fmt.Sprint(data[key])
		entered, err := driver.Input(ctx, InputConfig{
			Message: key,
			Default: current,
			Help:    "press enter to keep the loaded value",
		})
		if err != nil {
			return nil, fmt.Errorf("params: review %q: %w", key, err)
		}
		if entered != current {
			out[key] = entered
		}
	}
	return out, nil
}
