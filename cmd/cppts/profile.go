package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	rtrace "runtime/trace"
)

// profiler owns the files behind --cpu-profile, --runtime-trace and
// --mem-profile for the lifetime of one command.
type profiler struct {
	cpu     *os.File
	rt      *os.File
	memPath string
}

func (p *profiler) startCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	p.cpu = f
	return nil
}

func (p *profiler) startTrace(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rtrace.Start(f); err != nil {
		_ = f.Close()
		return err
	}
	p.rt = f
	return nil
}

func (p *profiler) stop() {
	if p.rt != nil {
		rtrace.Stop()
		_ = p.rt.Close()
		p.rt = nil
	}
	if p.cpu != nil {
		pprof.StopCPUProfile()
		_ = p.cpu.Close()
		p.cpu = nil
	}
	if p.memPath != "" {
		if err := writeHeapProfile(p.memPath); err != nil {
			fmt.Fprintf(os.Stderr, "heap profile: %v\n", err)
		}
		p.memPath = ""
	}
}

// writeHeapProfile collects garbage first so the profile shows live memory.
func writeHeapProfile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

// setupProfiling starts the profiles requested on the command line. The
// returned function stops them and is safe to call more than once.
func setupProfiling(f toolFlags) (func(), error) {
	p := &profiler{}
	if f.cpuProfile != "" {
		if err := p.startCPU(f.cpuProfile); err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
	}
	if f.runtimeTrace != "" {
		if err := p.startTrace(f.runtimeTrace); err != nil {
			p.stop()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
	}
	p.memPath = f.memProfile
	return p.stop, nil
}
