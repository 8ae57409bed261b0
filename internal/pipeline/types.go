// Package pipeline describes conversion progress: stages, per-file status
// events, sinks that consume them and the per-stage timings table.
package pipeline

import "time"

// Stage names one step of converting a file.
type Stage string

// Per-file stages. Load also applies BOM, CRLF and NFC normalization.
const (
	StageLoad      Stage = "load"
	StageParse     Stage = "parse" // tree-sitter
	StageNormalize Stage = "normalize"
	StageRender    Stage = "render"
	StageFormat    Stage = "format"
	StageWrite     Stage = "write"
)

// Stages lists the per-file stages in execution order.
var Stages = []Stage{StageLoad, StageParse, StageNormalize, StageRender, StageFormat, StageWrite}

// Status is where a file (or the run) is within a stage. Done, cached and
// error are final for a file.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached" // output came from the disk cache
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for File, or for the whole run when File is "".
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums durations per stage. The zero value is ready to use.
type Timings map[Stage]time.Duration

// Add accumulates dur for stage. Add on a nil *Timings is a no-op.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if *t == nil {
		*t = make(Timings, len(Stages))
	}
	(*t)[stage] += dur
}

// Merge adds every stage duration recorded in other.
func (t *Timings) Merge(other Timings) {
	for stage, dur := range other {
		t.Add(stage, dur)
	}
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration { return t[stage] }

// Sum totals the given stages.
func (t Timings) Sum(stages ...Stage) (total time.Duration) {
	for _, s := range stages {
		total += t[s]
	}
	return total
}
