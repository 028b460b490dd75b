// Package prompt provides the survey-backed params.PromptDriver used by the
// CLI's interactive review mode.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-stackgen/pkg/params"
)

type surveyDriver struct{}

// New returns a PromptDriver that asks on the controlling terminal.
func New() params.PromptDriver {
	return &surveyDriver{}
}

func (d *surveyDriver) Input(ctx context.Context, cfg params.InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string
	ask := &survey.Input{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(ask, &out); err != nil {
		return "", translateErr(err)
	}
	return out, nil
}

func translateErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return fmt.Errorf("prompt: interrupted: %w", err)
	}
	return err
}
