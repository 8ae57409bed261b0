// Package observ measures the phases of a cppts run for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one named duration. Note is free text shown next to it.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects phases in the order they finish. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Record adds a phase measured elsewhere, e.g. summed across workers.
func (t *Timer) Record(name string, dur time.Duration, note string) {
	t.mu.Lock()
	t.phases = append(t.phases, Phase{Name: name, Dur: dur, Note: note})
	t.mu.Unlock()
}

// Measure starts a wall-clock phase; calling the returned func records it.
// Only the first call counts.
func (t *Timer) Measure(name string) func(note string) {
	start := time.Now()
	var once sync.Once
	return func(note string) {
		once.Do(func() { t.Record(name, time.Since(start), note) })
	}
}

func (t *Timer) snapshot() []Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// PhaseReport is the serialized form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func millis(d time.Duration) float64 { return d.Seconds() * 1e3 }

// Report sums the phases. An empty timer gives the zero Report.
func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.snapshot() {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary is the --timings block printed after a run.
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		line := fmt.Sprintf("  %-20s %7.2f ms", name, ms)
		if note != "" {
			line += "  // " + note
		}
		b.WriteString(line + "\n")
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return b.String()
}
