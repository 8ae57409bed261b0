package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cppts/internal/trace"
)

// traceConfig turns the trace flags into a trace.Config. A --trace path
// without --trace-level means phase level.
func traceConfig(f toolFlags) (trace.Config, error) {
	cfg := trace.Config{OutputPath: f.traceOut, RingSize: f.ringSize}
	var err error
	if cfg.Level, err = trace.ParseLevel(f.traceLevel); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff && f.traceOut != "" {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Format, err = trace.ParseFormat(f.traceFormat); err != nil {
		return cfg, err
	}
	cfg.Mode, err = trace.ParseMode(f.traceMode)
	return cfg, err
}

// setupTracing attaches a tracer to the command context. The returned
// cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command, f toolFlags) (func(), error) {
	cfg, err := traceConfig(f)
	if err != nil {
		return nil, err
	}
	if cfg.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	stderr := cmd.ErrOrStderr()
	return func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(stderr, "trace: flush: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: close: %v\n", err)
		}
	}, nil
}

// dumpTraceRing writes the in-memory trace ring, if one is configured, so
// ring mode shows what led up to a failed file.
func dumpTraceRing(cmd *cobra.Command, w io.Writer) {
	ring := trace.Ring(trace.FromContext(cmd.Context()))
	if ring == nil {
		return
	}
	format, err := trace.ParseFormat(diagnosticsFlags.traceFormat)
	if err != nil {
		format = trace.FormatText
	}
	fmt.Fprintln(w, "== trace ring ==")
	if err := ring.Dump(w, format); err != nil {
		fmt.Fprintf(w, "trace: dump: %v\n", err)
	}
}
