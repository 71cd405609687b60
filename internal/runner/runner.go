package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/projectdiscovery/gologger"

	"github.com/inet-tools/evalerrmodels/internal/simexec"
)

// Outcome records what happened to one mode.
type Outcome struct {
	Mode    Mode
	Command simexec.Command
	Result  simexec.Result
}

// Summary lists the outcomes of a dispatch in execution order.
type Summary struct {
	Outcomes []Outcome
}

// Failed returns how many runs exited non-zero or could not be started.
func (s Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Result.Err != nil || o.Result.Code != 0 {
			n++
		}
	}
	return n
}

// Runner launches one simulator run per enabled mode.
type Runner struct {
	exec simexec.Executor
	out  io.Writer
}

// New returns a Runner that prints labels to out and launches runs through exec.
func New(exec simexec.Executor, out io.Writer) *Runner {
	return &Runner{exec: exec, out: out}
}

// Run walks the registered modes in order and runs each enabled one to completion.
// A failed simulator run is logged and does not stop the remaining modes;
// only cancellation of ctx or a failed stdout write ends the walk early.
func (r *Runner) Run(ctx context.Context, cfg Config) (Summary, error) {
	var summary Summary

	for _, m := range List() {
		if !cfg.Enabled(m.Flag) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if _, err := fmt.Fprintln(r.out, m.Label); err != nil {
			return summary, fmt.Errorf("could not write label for %s: %w", m.Config, err)
		}

		cmd := cfg.Simulator().Command(cfg.IniFile(), m.Config)
		gologger.Debug().Msgf("Running %s", cmd)

		res := r.exec.Run(ctx, cmd)
		summary.Outcomes = append(summary.Outcomes, Outcome{Mode: m, Command: cmd, Result: res})

		switch {
		case res.Err != nil && ctx.Err() != nil:
			return summary, ctx.Err()
		case res.Err != nil:
			gologger.Error().Msgf("Could not run %s: %s", m.Config, res.Err)
		case res.Code != 0:
			gologger.Warning().Msgf("%s exited with code %d", m.Config, res.Code)
		default:
			gologger.Info().Msgf("%s finished", m.Config)
		}
	}

	return summary, nil
}
