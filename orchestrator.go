package stackgen

import (
	"context"

	"github.com/goliatone/go-stackgen/pkg/orchestrator"
	"github.com/goliatone/go-stackgen/pkg/params"
)

// Request describes one rendering run; alias exported via the root package
// for convenience.
type Request = orchestrator.Request

// Report is the outcome of a successful run.
type Report = orchestrator.Report

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate runs the full pipeline with a fresh orchestrator. It is the
// simplest entry point for callers that just want a rendered document.
func Generate(ctx context.Context, req Request, options ...orchestrator.Option) (Report, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, req)
}

// RenderFile renders a template against a parameter document and returns the
// document text, bypassing the compare and write stages.
func RenderFile(ctx context.Context, templatePath, paramsPath string, options ...orchestrator.Option) ([]byte, error) {
	report, err := Generate(ctx, Request{
		Template:     templatePath,
		ParamsSource: params.SourceFromFile(paramsPath),
	}, options...)
	if err != nil {
		return nil, err
	}
	return report.Document, nil
}
