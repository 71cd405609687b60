package runner

import (
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/inet-tools/evalerrmodels/internal/simexec"
)

// Default simulator invocation settings.
const (
	DefaultLauncher = "opp_runall"
	DefaultBatch    = 1
	DefaultProgram  = "inet_dbg"
	DefaultUI       = "Cmdenv"
)

// Simulator describes how one simulator run is launched.
type Simulator struct {
	Launcher string
	Batch    int
	Program  string
	UI       string
}

// DefaultSimulator returns the stock opp_runall / inet_dbg / Cmdenv setup.
func DefaultSimulator() Simulator {
	return Simulator{
		Launcher: DefaultLauncher,
		Batch:    DefaultBatch,
		Program:  DefaultProgram,
		UI:       DefaultUI,
	}
}

// Command builds "<launcher> -b <batch> <program> -f <iniFile> -u <ui> -c <config>".
func (s Simulator) Command(iniFile, config string) simexec.Command {
	return simexec.Command{
		Name: s.Launcher,
		Args: []string{
			"-b", strconv.Itoa(s.Batch),
			s.Program,
			"-f", iniFile,
			"-u", s.UI,
			"-c", config,
		},
	}
}

// Config is the immutable input of one dispatch: the ini file and the modes to run.
type Config struct {
	iniFile   string
	simulator Simulator
	enabled   mapset.Set[string]
}

// NewConfig returns a Config enabling the given mode flags.
func NewConfig(iniFile string, sim Simulator, enabled ...string) Config {
	return Config{
		iniFile:   iniFile,
		simulator: sim,
		enabled:   mapset.NewThreadUnsafeSet(enabled...),
	}
}

// IniFile returns the simulator configuration file path.
func (c Config) IniFile() string { return c.iniFile }

// Simulator returns the launch settings.
func (c Config) Simulator() Simulator { return c.simulator }

// Enabled reports whether the mode with the given flag name should run.
func (c Config) Enabled(flag string) bool {
	return c.enabled != nil && c.enabled.Contains(flag)
}

// EnabledCount returns the number of enabled modes.
func (c Config) EnabledCount() int {
	if c.enabled == nil {
		return 0
	}
	return c.enabled.Cardinality()
}
