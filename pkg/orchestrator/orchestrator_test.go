package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-stackgen/pkg/orchestrator"
	"github.com/goliatone/go-stackgen/pkg/params"
	"github.com/goliatone/go-stackgen/pkg/render"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output file must not exist after a failed run: stat err = %v", err)
	}
}

func TestGenerateMarkupEndToEnd(t *testing.T) {
	dir := t.TempDir()
	template := writeFile(t, dir, "stack.j2", `{"Environment": "{{ environment }}"}`)
	paramsFile := writeFile(t, dir, "params.json", `{"environment": "Production"}`)
	outfile := filepath.Join(dir, "out.json")

	gen := orchestrator.New()
	report, err := gen.Generate(context.Background(), orchestrator.Request{
		Template:     template,
		ParamsSource: params.SourceFromFile(paramsFile),
		Output:       outfile,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(string(report.Document), `"Production"`) {
		t.Fatalf("document missing substituted value:\n%s", report.Document)
	}

	written, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(written) != string(report.Document) {
		t.Fatal("written output differs from the report document")
	}
	if report.Comparison != nil {
		t.Fatal("comparison must be nil when no reference is supplied")
	}
}

func TestGenerateNamedRendererWritesExactDocument(t *testing.T) {
	dir := t.TempDir()
	outfile := filepath.Join(dir, "out.json")
	fixed := `{"StackName": "X"}`

	registry := render.NewRegistry()
	registry.MustRegister(render.Func("stackname", func(context.Context, params.CustomData) ([]byte, error) {
		return []byte(fixed), nil
	}))

	gen := orchestrator.New(orchestrator.WithRegistry(registry))
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Template: "stackname",
		Renderer: "stackname",
		Params:   params.CustomData{"environment": "anything"},
		Output:   outfile,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	written, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatal(err)
	}
	if string(written) != fixed {
		t.Fatalf("written %q, want %q", written, fixed)
	}
}

func TestGenerateUnsupportedSuffix(t *testing.T) {
	dir := t.TempDir()
	template := writeFile(t, dir, "stack.txt", "not a template")
	outfile := filepath.Join(dir, "out.json")

	gen := orchestrator.New()
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Template: template,
		Output:   outfile,
	})
	if !errors.Is(err, render.ErrUnsupportedTemplate) {
		t.Fatalf("want ErrUnsupportedTemplate, got %v", err)
	}
	mustNotExist(t, outfile)
}

func TestGenerateScriptMissingEntryPoint(t *testing.T) {
	dir := t.TempDir()
	// Valid wasm module (magic + version) with no exports.
	template := filepath.Join(dir, "stack.wasm")
	if err := os.WriteFile(template, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	outfile := filepath.Join(dir, "out.json")

	gen := orchestrator.New()
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Template: template,
		Output:   outfile,
	})
	if !errors.Is(err, render.ErrMissingEntryPoint) {
		t.Fatalf("want ErrMissingEntryPoint, got %v", err)
	}
	mustNotExist(t, outfile)
}

func TestGenerateComparisonMatch(t *testing.T) {
	dir := t.TempDir()
	template := writeFile(t, dir, "stack.j2", `{"Environment": "{{ environment }}"}`)
	reference := writeFile(t, dir, "expected.json", `{"Environment": "Production"}`)

	gen := orchestrator.New()
	report, err := gen.Generate(context.Background(), orchestrator.Request{
		Template: template,
		Params:   params.CustomData{"environment": "Production"},
		Compare:  reference,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if report.Comparison == nil || !report.Comparison.Match {
		t.Fatalf("want comparison match, got %+v", report.Comparison)
	}
}

func TestGenerateComparisonMismatchIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	template := writeFile(t, dir, "stack.j2", `{"Environment": "{{ environment }}"}`)
	reference := writeFile(t, dir, "expected.json", `{"Environment":"Production"}`)
	outfile := filepath.Join(dir, "out.json")

	gen := orchestrator.New()
	report, err := gen.Generate(context.Background(), orchestrator.Request{
		Template: template,
		Params:   params.CustomData{"environment": "Production"},
		Compare:  reference,
		Output:   outfile,
	})
	if err != nil {
		t.Fatalf("mismatch must not fail the run: %v", err)
	}
	if report.Comparison == nil || report.Comparison.Match {
		t.Fatal("want comparison mismatch")
	}
	if report.Comparison.Diff == "" {
		t.Fatal("mismatch must carry a diff report")
	}

	// The write stage still runs on mismatch.
	if _, err := os.Stat(outfile); err != nil {
		t.Fatalf("output must be written despite the mismatch: %v", err)
	}
}

func TestGenerateMissingReference(t *testing.T) {
	dir := t.TempDir()
	template := writeFile(t, dir, "stack.j2", `{}`)
	outfile := filepath.Join(dir, "out.json")

	gen := orchestrator.New()
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Template: template,
		Compare:  filepath.Join(dir, "missing.json"),
		Output:   outfile,
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
	mustNotExist(t, outfile)
}

func TestGenerateRequiresTemplate(t *testing.T) {
	gen := orchestrator.New()
	if _, err := gen.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatal("want error for missing template path")
	}
}

func TestGenerateMalformedParams(t *testing.T) {
	dir := t.TempDir()
	template := writeFile(t, dir, "stack.j2", `{}`)
	paramsFile := writeFile(t, dir, "params.json", `{"environment": `)

	gen := orchestrator.New()
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Template:     template,
		ParamsSource: params.SourceFromFile(paramsFile),
	})
	if !errors.Is(err, params.ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}
}
