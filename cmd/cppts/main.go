package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cppts/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cppts",
	Short: "C++ to TypeScript converter",
	Long:  `cppts converts a practical subset of C++ into readable TypeScript`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd, diagnosticsFlags)
		if err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(diagnosticsFlags)
		if err != nil {
			cleanup()
			return err
		}
		cleanups = append(cleanups, stopProfiling, cleanup)
		return nil
	},
}

// toolFlags are the global tracing and profiling switches.
type toolFlags struct {
	traceOut, traceLevel, traceFormat, traceMode string
	ringSize                                     int

	cpuProfile, memProfile, runtimeTrace string
}

var diagnosticsFlags toolFlags

// cleanups run after the command, in order.
var cleanups []func()

// main registers subcommands and global flags and runs the root command.
// A command error exits with status 1; conversion failures set exitCode.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to cppts.toml (default: search upwards from the first input)")
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&diagnosticsFlags.traceOut, "trace", "", "write trace events to a file (- for stderr)")
	pf.StringVar(&diagnosticsFlags.traceLevel, "trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.StringVar(&diagnosticsFlags.traceFormat, "trace-format", "text", "trace output format (text|ndjson)")
	pf.StringVar(&diagnosticsFlags.traceMode, "trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.IntVar(&diagnosticsFlags.ringSize, "trace-ring-size", 4096, "events kept in ring mode")
	pf.StringVar(&diagnosticsFlags.cpuProfile, "cpu-profile", "", "write a CPU profile to the file")
	pf.StringVar(&diagnosticsFlags.memProfile, "mem-profile", "", "write a heap profile to the file on exit")
	pf.StringVar(&diagnosticsFlags.runtimeTrace, "runtime-trace", "", "write a Go runtime trace to the file")

	err := rootCmd.ExecuteContext(context.Background())
	for _, fn := range cleanups {
		fn()
	}
	if err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// exitCode is set by commands that finish but must report failure.
var exitCode int

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}
