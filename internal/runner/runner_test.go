package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inet-tools/evalerrmodels/internal/simexec"
)

// recordingExecutor stores every command and replays canned results by config name.
// When out is set it also keeps a copy of the label output seen at each call.
type recordingExecutor struct {
	calls   []simexec.Command
	results map[string]simexec.Result
	onRun   func()

	out       *bytes.Buffer
	outAtCall []string
}

func (e *recordingExecutor) Run(ctx context.Context, cmd simexec.Command) simexec.Result {
	e.calls = append(e.calls, cmd)
	if e.out != nil {
		e.outAtCall = append(e.outAtCall, e.out.String())
	}
	if e.onRun != nil {
		e.onRun()
	}
	return e.results[cmd.Args[len(cmd.Args)-1]]
}

func (e *recordingExecutor) configs() []string {
	var out []string
	for _, c := range e.calls {
		out = append(out, c.Args[len(c.Args)-1])
	}
	return out
}

func labelLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestRunDefaults(t *testing.T) {
	exec := &recordingExecutor{}
	var out bytes.Buffer

	cfg := NewConfig("net.ini", DefaultSimulator(), ScalarPacketlevel, DimensionalPacketlevel, DimensionalSymbollevel)
	summary, err := New(exec, &out).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"ScalarPacketlevel", "DimensionalPacketlevel", "DimensionalSymbollevel"}, exec.configs())
	assert.Equal(t, []string{"Scalar Packetlevel", "Dimensional Packetlevel", "Dimensional Symbollevel"}, labelLines(out.String()))
	assert.Len(t, summary.Outcomes, 3)

	for _, c := range exec.calls {
		assert.Equal(t, "opp_runall", c.Name)
		assert.Equal(t, []string{"-b", "1", "inet_dbg", "-f", "net.ini", "-u", "Cmdenv"}, c.Args[:7])
	}
}

func TestRunAllModesInFixedOrder(t *testing.T) {
	exec := &recordingExecutor{}
	var out bytes.Buffer

	// Enable in reverse to show the set order does not leak into dispatch.
	cfg := NewConfig("net.ini", DefaultSimulator(),
		DimensionalSymbollevel,
		DimensionalPacketlevelNeuralNetwork,
		DimensionalPacketlevel,
		ScalarPacketlevelNeuralNetwork,
		ScalarPacketlevel,
	)
	_, err := New(exec, &out).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ScalarPacketlevel",
		"ScalarPacketlevelNeuralNetwork",
		"DimensionalPacketlevel",
		"DimensionalPacketlevelNeuralNetwork",
		"DimensionalSymbollevel",
	}, exec.configs())
	assert.Equal(t, []string{
		"Scalar Packetlevel",
		"Scalar Packetlevel Neural Network",
		"Dimensional Packetlevel",
		"Dimensional Packetlevel Neural Network",
		"Dimensional Symbollevel",
	}, labelLines(out.String()))
}

func TestRunPrintsLabelBeforeEachCommand(t *testing.T) {
	var out bytes.Buffer
	exec := &recordingExecutor{out: &out}

	cfg := NewConfig("net.ini", DefaultSimulator(),
		ScalarPacketlevel,
		ScalarPacketlevelNeuralNetwork,
		DimensionalPacketlevel,
		DimensionalPacketlevelNeuralNetwork,
		DimensionalSymbollevel,
	)
	_, err := New(exec, &out).Run(context.Background(), cfg)
	require.NoError(t, err)

	modes := List()
	require.Len(t, exec.outAtCall, len(modes))
	for i, m := range modes {
		lines := labelLines(exec.outAtCall[i])
		require.Len(t, lines, i+1, "labels seen when starting %s", m.Config)
		assert.Equal(t, m.Label, lines[len(lines)-1], "last label when starting %s", m.Config)
	}
}

func TestRunNothingEnabled(t *testing.T) {
	exec := &recordingExecutor{}
	var out bytes.Buffer

	summary, err := New(exec, &out).Run(context.Background(), NewConfig("net.ini", DefaultSimulator()))
	require.NoError(t, err)

	assert.Empty(t, exec.calls)
	assert.Empty(t, out.String())
	assert.Empty(t, summary.Outcomes)
}

func TestRunEachModeAlone(t *testing.T) {
	for _, m := range List() {
		t.Run(m.Config, func(t *testing.T) {
			exec := &recordingExecutor{}
			var out bytes.Buffer

			_, err := New(exec, &out).Run(context.Background(), NewConfig("a.ini", DefaultSimulator(), m.Flag))
			require.NoError(t, err)

			assert.Equal(t, []string{m.Config}, exec.configs())
			assert.Equal(t, []string{m.Label}, labelLines(out.String()))
		})
	}
}

func TestRunContinuesAfterFailures(t *testing.T) {
	exec := &recordingExecutor{results: map[string]simexec.Result{
		"ScalarPacketlevel":      {Code: 1},
		"DimensionalPacketlevel": {Code: -1, Err: errors.New("executable file not found")},
	}}
	var out bytes.Buffer

	cfg := NewConfig("net.ini", DefaultSimulator(), ScalarPacketlevel, DimensionalPacketlevel, DimensionalSymbollevel)
	summary, err := New(exec, &out).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"ScalarPacketlevel", "DimensionalPacketlevel", "DimensionalSymbollevel"}, exec.configs())
	assert.Equal(t, 2, summary.Failed())
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exec := &recordingExecutor{onRun: cancel}
	var out bytes.Buffer

	cfg := NewConfig("net.ini", DefaultSimulator(), ScalarPacketlevel, DimensionalPacketlevel)
	summary, err := New(exec, &out).Run(ctx, cfg)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"ScalarPacketlevel"}, exec.configs())
	assert.Len(t, summary.Outcomes, 1)
	assert.Equal(t, []string{"Scalar Packetlevel"}, labelLines(out.String()))
}

func TestSimulatorCommand(t *testing.T) {
	sim := Simulator{Launcher: "/opt/omnetpp/bin/opp_runall", Batch: 4, Program: "inet", UI: "Qtenv"}
	cmd := sim.Command("wifi.ini", "DimensionalSymbollevel")

	assert.Equal(t, "/opt/omnetpp/bin/opp_runall -b 4 inet -f wifi.ini -u Qtenv -c DimensionalSymbollevel", cmd.String())
}

func TestDefaultSimulatorMatchesStockTemplate(t *testing.T) {
	cmd := DefaultSimulator().Command("net.ini", "ScalarPacketlevel")
	assert.Equal(t, "opp_runall -b 1 inet_dbg -f net.ini -u Cmdenv -c ScalarPacketlevel", cmd.String())
}

func TestConfigEnabled(t *testing.T) {
	cfg := NewConfig("net.ini", DefaultSimulator(), ScalarPacketlevel, ScalarPacketlevel)
	assert.True(t, cfg.Enabled(ScalarPacketlevel))
	assert.False(t, cfg.Enabled(DimensionalPacketlevel))
	assert.Equal(t, 1, cfg.EnabledCount())

	var zero Config
	assert.False(t, zero.Enabled(ScalarPacketlevel))
	assert.Equal(t, 0, zero.EnabledCount())
}
