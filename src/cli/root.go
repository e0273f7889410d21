// Package cli wires the scanner components behind the svg-scanner
// command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/config"
	"github.com/Easy-Infra-Ltd/svg-scanner/src/report"
	"github.com/Easy-Infra-Ltd/svg-scanner/src/sanitizer"
	"github.com/Easy-Infra-Ltd/svg-scanner/src/scan"
)

// app holds what every command needs. Fields are injected for testing.
type app struct {
	logger   *slog.Logger
	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
	loadCfg  func() (config.Config, error)
	exitCode int
}

// Execute runs the command line with os.Args and returns the process
// exit code.
func Execute(ctx context.Context, logger *slog.Logger) int {
	a := &app{
		logger:  logger,
		fs:      afero.NewOsFs(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		loadCfg: config.FromEnv,
	}
	return a.run(ctx, os.Args[1:])
}

func (a *app) run(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.stderr, "svg-scanner: %v\n", err)
		return report.ExitProblems
	}
	return a.exitCode
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "svg-scanner",
		Short: "Scan SVG files for unsafe content",
		Long: `svg-scanner applies an allow-list of SVG tags and attributes, strips
remote references and reports every problem it finds as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(a.scanCmd(), a.serveCmd(), a.versionCmd())
	return root
}

// components builds the scanner stack from the deployment config.
func (a *app) components() (sanitizer.Engine, *scan.Aggregator, error) {
	cfg, err := a.loadCfg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "config")
	}
	engine := sanitizer.NewSVGEngine(cfg.Allowlist())
	agg := scan.NewAggregator(scan.NewFileScanner(a.fs, engine, a.logger), a.logger)
	return engine, agg, nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
