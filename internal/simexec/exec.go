// Package simexec runs external simulator commands.
// Runs go through the Executor interface so callers can swap in a dry-run or
// recording implementation.
package simexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is a program name plus its arguments.
type Command struct {
	Name string
	Args []string
}

// String renders the command the way a shell user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the outcome of one command.
// A non-zero Code with a nil Err means the process ran and failed on its own;
// Err is set only when the process could not be run or waited for.
type Result struct {
	Code int
	Err  error
}

// Executor runs a command to completion.
type Executor interface {
	Run(ctx context.Context, cmd Command) Result
}

// ProcessExecutor spawns real processes that share the caller's output streams.
type ProcessExecutor struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// NewProcessExecutor returns an executor running commands in dir and writing
// child output to stdout and stderr.
func NewProcessExecutor(dir string, stdout, stderr io.Writer) *ProcessExecutor {
	return &ProcessExecutor{Dir: dir, Stdout: stdout, Stderr: stderr}
}

// Run starts cmd and blocks until it exits.
func (e *ProcessExecutor) Run(ctx context.Context, cmd Command) Result {
	if cmd.Name == "" {
		return Result{Code: -1, Err: fmt.Errorf("command is required")}
	}
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = e.Dir
	c.Stdin = os.Stdin
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr

	err := c.Run()
	if err == nil {
		return Result{}
	}
	if ctx.Err() != nil {
		return Result{Code: -1, Err: ctx.Err()}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Code: exitErr.ExitCode()}
	}
	return Result{Code: -1, Err: fmt.Errorf("could not run %s: %w", cmd.Name, err)}
}

// DryRunExecutor prints each command instead of running it.
type DryRunExecutor struct {
	Out io.Writer
}

// NewDryRunExecutor returns an executor that writes "+ <command>" lines to out.
func NewDryRunExecutor(out io.Writer) *DryRunExecutor {
	return &DryRunExecutor{Out: out}
}

// Run writes the command line and reports success.
func (e *DryRunExecutor) Run(ctx context.Context, cmd Command) Result {
	if _, err := fmt.Fprintln(e.Out, "+ "+cmd.String()); err != nil {
		return Result{Code: -1, Err: err}
	}
	return Result{}
}
