package render

import "errors"

// Sentinel errors for the rendering pipeline. Callers match with errors.Is;
// wrapped messages carry the template path and failing stage.
var (
	// ErrUnsupportedTemplate reports a template suffix no registered renderer
	// claims.
	ErrUnsupportedTemplate = errors.New("render: unsupported template suffix")

	// ErrMissingEntryPoint reports a script template that does not expose the
	// required execute_template entry point.
	ErrMissingEntryPoint = errors.New("render: template missing execute_template entry point")

	// ErrExecution reports a script template that failed while running.
	ErrExecution = errors.New("render: template execution failed")
)
