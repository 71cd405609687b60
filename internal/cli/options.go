package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/inet-tools/evalerrmodels/internal/logging"
	"github.com/inet-tools/evalerrmodels/internal/runner"
)

// ErrUsage marks invocation mistakes that should be answered with the usage text.
var ErrUsage = errors.New("usage error")

// Options holds the parsed command line.
type Options struct {
	IniFile string

	modes map[string]*bool

	Launcher string
	Batch    int
	Program  string
	UI       string
	WorkDir  string

	DryRun    bool
	ListModes bool
	LogFile   string
	NoColor   bool
	Silent    bool
	Verbose   bool

	ConfigFile string
}

// ParseOptions parses args (without the program name).
// Mode flags may come before or after the ini file argument.
func ParseOptions(args []string) (*Options, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing inifile argument: %w", ErrUsage)
	}

	opts := &Options{modes: make(map[string]*bool)}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`evalerrmodels runs the INET error model evaluation configurations with opp_runall, one after another.`)

	var modeFlags []*goflags.FlagData
	for _, m := range runner.List() {
		enabled := new(bool)
		opts.modes[m.Flag] = enabled
		modeFlags = append(modeFlags, flagSet.BoolVarP(enabled, m.Flag, m.Short, m.Default, m.Description))
	}
	flagSet.CreateGroup("modes", "Modes", modeFlags...)

	flagSet.CreateGroup("simulator", "Simulator",
		flagSet.StringVar(&opts.Launcher, "launcher", runner.DefaultLauncher, "batch launcher executable"),
		flagSet.IntVar(&opts.Batch, "batch", runner.DefaultBatch, "number of runs per launcher batch"),
		flagSet.StringVar(&opts.Program, "program", runner.DefaultProgram, "simulation program started by the launcher"),
		flagSet.StringVar(&opts.UI, "ui", runner.DefaultUI, "simulator user interface"),
		flagSet.StringVarP(&opts.WorkDir, "workdir", "wd", "", "working directory for simulator runs"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVar(&opts.DryRun, "dry-run", false, "print the simulator commands without running them"),
		flagSet.BoolVarP(&opts.ListModes, "list-modes", "lm", false, "list available modes and exit"),
		flagSet.StringVar(&opts.LogFile, "log-file", "", "also write log records to this file (rotated)"),
		flagSet.BoolVarP(&opts.NoColor, "no-color", "nc", false, "disable colors in log output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "only print mode labels and simulator output"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "show debug log records"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.ConfigFile, "config", "", "yaml file with flag defaults"),
	)

	// Parse ourselves first so flag errors come back as values and the
	// explicitly given flags are known before any config file is merged.
	flagSet.CommandLine.Init(flagSet.CommandLine.Name(), flag.ContinueOnError)
	flagSet.CommandLine.SetOutput(io.Discard)
	flagSet.CommandLine.Usage = func() {}

	positional, err := parseInterleaved(flagSet.CommandLine, args)
	if errors.Is(err, flag.ErrHelp) {
		return nil, &helpError{text: helpText(flagSet.CommandLine)}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrUsage)
	}
	explicit := explicitFlags(flagSet.CommandLine)

	// goflags merges its default config file here; failing to create that
	// file must not block a run.
	if err := flagSet.Parse(args...); err != nil {
		gologger.Warning().Msgf("Could not write default config: %s", err)
	}
	if err := restoreFlags(flagSet.CommandLine, explicit); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		if !fileutil.FileExists(opts.ConfigFile) {
			return nil, fmt.Errorf("config file %s does not exist", opts.ConfigFile)
		}
		if err := flagSet.MergeConfigFile(opts.ConfigFile); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		if err := restoreFlags(flagSet.CommandLine, explicit); err != nil {
			return nil, err
		}
	}

	if err := opts.validate(positional); err != nil {
		return nil, err
	}
	return opts, nil
}

// parseInterleaved parses args, resuming after every positional argument
// because the flag package stops at the first one.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var positional []string
	rest := fs.Args()
	for len(rest) > 0 {
		positional = append(positional, rest[0])
		if err := fs.Parse(rest[1:]); err != nil {
			return nil, err
		}
		rest = fs.Args()
	}
	return positional, nil
}

// explicitFlags returns the values of the flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]string {
	explicit := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	return explicit
}

// restoreFlags puts command line values back after a config merge.
// Config files only fill in flags the user did not give.
func restoreFlags(fs *flag.FlagSet, explicit map[string]string) error {
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("could not restore -%s: %w", name, err)
		}
	}
	return nil
}

// helpError carries the full flag help requested with -h.
type helpError struct {
	text string
}

func (e *helpError) Error() string { return "help requested" }

func helpText(fs *flag.FlagSet) string {
	var b strings.Builder
	PrintUsage(&b)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Flags:")
	fs.SetOutput(&b)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	return b.String()
}

func (o *Options) validate(positional []string) error {
	switch {
	case len(positional) > 1:
		return fmt.Errorf("unexpected arguments %s: %w", strings.Join(positional[1:], " "), ErrUsage)
	case len(positional) == 1:
		o.IniFile = positional[0]
	case !o.ListModes:
		return fmt.Errorf("missing inifile argument: %w", ErrUsage)
	}

	if o.Batch < 1 {
		return fmt.Errorf("batch must be at least 1, got %d: %w", o.Batch, ErrUsage)
	}
	if strings.TrimSpace(o.Launcher) == "" {
		return fmt.Errorf("launcher must not be empty: %w", ErrUsage)
	}

	// Runs started in another directory need an absolute ini path.
	if o.WorkDir != "" && o.IniFile != "" && !filepath.IsAbs(o.IniFile) {
		abs, err := filepath.Abs(o.IniFile)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", o.IniFile, err)
		}
		o.IniFile = abs
	}
	return nil
}

// Enabled reports whether the mode with the given flag name was switched on.
func (o *Options) Enabled(name string) bool {
	v, ok := o.modes[name]
	return ok && *v
}

// EnabledModes returns the flag names of all enabled modes in dispatch order.
func (o *Options) EnabledModes() []string {
	var enabled []string
	for _, m := range runner.List() {
		if o.Enabled(m.Flag) {
			enabled = append(enabled, m.Flag)
		}
	}
	return enabled
}

// RunConfig builds the immutable dispatch input.
func (o *Options) RunConfig() runner.Config {
	sim := runner.Simulator{
		Launcher: o.Launcher,
		Batch:    o.Batch,
		Program:  o.Program,
		UI:       o.UI,
	}
	return runner.NewConfig(o.IniFile, sim, o.EnabledModes()...)
}

// Logging returns the logger settings.
func (o *Options) Logging() logging.Options {
	return logging.Options{
		Silent:  o.Silent,
		Verbose: o.Verbose,
		NoColor: o.NoColor,
		File:    o.LogFile,
	}
}
