package cli

import (
	"fmt"
	"io"

	"github.com/inet-tools/evalerrmodels/internal/runner"
)

// PrintUsage prints the short help shown after a usage error.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: evalerrmodels [flags] <inifile>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Modes:")
	printModeFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Booleans take -flag or -flag=false. Run 'evalerrmodels -h' for all flags.")
}

// PrintModes lists every mode in the order it runs, with its flags and default.
func PrintModes(w io.Writer) {
	fmt.Fprintln(w, "Available modes (run in this order):")
	for _, m := range runner.List() {
		flags := "-" + m.Short + ", -" + m.Flag
		fmt.Fprintf(w, "  - %-36s %-41s default %-5v  %s\n", m.Config, flags, m.Default, m.Description)
	}
}

func printModeFlags(w io.Writer) {
	for _, m := range runner.List() {
		fmt.Fprintf(w, "  -%-3s -%-37s default %v\n", m.Short, m.Flag, m.Default)
	}
}
