package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	stackgen "github.com/goliatone/go-stackgen"
	"github.com/goliatone/go-stackgen/internal/params/prompt"
	"github.com/goliatone/go-stackgen/pkg/orchestrator"
	"github.com/goliatone/go-stackgen/pkg/params"
)

// errMismatch surfaces a strict-mode comparison failure to main so it can map
// to its own exit code.
var errMismatch = errors.New("rendered document differs from reference")

const exitMismatch = 3

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errMismatch) {
			os.Exit(exitMismatch)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		compareRef   string
		rendererName string
		strict       bool
		interactive  bool
		verbose      bool
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "stackgen-cli <template> <outfile> <params>",
		Short: "Render a configuration-as-code template into a configuration document",
		Long: `Renders a markup (.j2/.jinja/.tpl) or script (.wasm) template using the
supplied customisation parameters and writes the result to the output file.

The params argument is a key/value document (.json/.yaml/.toml). When no such
file exists, the argument is treated as inline data: comma-separated key=value
pairs, or a bare value bound to the "environment" key.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose, quiet)
			return run(cmd.Context(), runConfig{
				template:    args[0],
				outfile:     args[1],
				paramsArg:   args[2],
				compareRef:  compareRef,
				renderer:    rendererName,
				strict:      strict,
				interactive: interactive,
			}, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&compareRef, "compare", "", "reference document to check the rendered output against")
	cmd.Flags().StringVar(&rendererName, "renderer", "", "renderer name, bypassing extension resolution")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the comparison reports a mismatch")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "review and override each parameter before rendering")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostics except errors")

	return cmd
}

type runConfig struct {
	template    string
	outfile     string
	paramsArg   string
	compareRef  string
	renderer    string
	strict      bool
	interactive bool
}

func run(ctx context.Context, cfg runConfig, logger zerolog.Logger, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info().
		Str("template", cfg.template).
		Str("output", cfg.outfile).
		Str("params", cfg.paramsArg).
		Msg("rendering configuration")

	loader := stackgen.NewParamsLoader()
	data, err := loader.Load(ctx, paramsSource(cfg.paramsArg))
	if err != nil {
		return err
	}

	if cfg.interactive {
		data, err = params.Review(ctx, data, prompt.New())
		if err != nil {
			return err
		}
	}

	gen := stackgen.NewOrchestrator(orchestrator.WithLogger(logger))
	report, err := gen.Generate(ctx, stackgen.Request{
		Template: cfg.template,
		Renderer: cfg.renderer,
		Params:   data,
		Output:   cfg.outfile,
		Compare:  cfg.compareRef,
	})
	if err != nil {
		return err
	}

	if report.Comparison != nil && !report.Comparison.Match {
		fmt.Fprintln(stdout, report.Comparison.Diff)
		if cfg.strict {
			return fmt.Errorf("%w: %s", errMismatch, cfg.compareRef)
		}
	}

	return nil
}

// paramsSource treats the argument as a file when one exists at that path and
// as inline literal data otherwise.
func paramsSource(arg string) params.Source {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return params.SourceFromFile(arg)
	}
	return params.SourceFromLiteral(arg)
}

func newLogger(verbose, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
