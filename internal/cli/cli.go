// Package cli implements the evalerrmodels command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/inet-tools/evalerrmodels/internal/logging"
	"github.com/inet-tools/evalerrmodels/internal/runner"
	"github.com/inet-tools/evalerrmodels/internal/simexec"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// App is the command bound to its output streams.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	// Executor overrides the launcher chosen from the options. Used by tests.
	Executor simexec.Executor
}

// Run is the main entry point for the CLI. It returns the process exit code.
func Run(ctx context.Context, args []string) int {
	app := &App{Stdout: os.Stdout, Stderr: os.Stderr}
	return app.Run(ctx, args)
}

// Run parses args and launches the enabled modes.
// Failed simulator runs are logged but do not change the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	opts, err := ParseOptions(args)
	var help *helpError
	if errors.As(err, &help) {
		fmt.Fprint(a.Stderr, help.text)
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(a.Stderr, "[!] %s\n", err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(a.Stderr)
			PrintUsage(a.Stderr)
			return ExitUsage
		}
		return ExitFailure
	}

	closeLog, err := logging.Setup(opts.Logging())
	if err != nil {
		fmt.Fprintf(a.Stderr, "[!] %s\n", err)
		return ExitFailure
	}
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(a.Stderr, "[!] could not close log file: %s\n", err)
		}
	}()

	if opts.ListModes {
		PrintModes(a.Stdout)
		return ExitOK
	}

	if !fileutil.FileExists(opts.IniFile) {
		gologger.Warning().Msgf("Ini file %s not found", opts.IniFile)
	}

	cfg := opts.RunConfig()
	gologger.Info().Msgf("Running %d mode(s) with %s", cfg.EnabledCount(), cfg.IniFile())

	summary, err := runner.New(a.executor(opts), a.Stdout).Run(ctx, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			gologger.Warning().Msg("Interrupted, remaining modes skipped")
			return ExitInterrupted
		}
		gologger.Error().Msgf("%s", err)
		return ExitFailure
	}

	if failed := summary.Failed(); failed > 0 {
		gologger.Warning().Msgf("%d of %d run(s) failed", failed, len(summary.Outcomes))
	}
	return ExitOK
}

func (a *App) executor(opts *Options) simexec.Executor {
	switch {
	case a.Executor != nil:
		return a.Executor
	case opts.DryRun:
		return simexec.NewDryRunExecutor(a.Stderr)
	default:
		return simexec.NewProcessExecutor(opts.WorkDir, a.Stdout, a.Stderr)
	}
}
