package driver

import (
	"encoding/json"
	"fmt"
	"strconv"

	"cppts/internal/diag"
	"cppts/internal/observ"
	"cppts/internal/pipeline"
	"cppts/internal/source"
)

// Timer turns the run's per-stage totals into an observ.Timer. Stage times
// are summed across workers, so they can exceed wall-clock time.
func (r *Result) Timer() *observ.Timer {
	t := observ.NewTimer()
	for _, stage := range pipeline.Stages {
		if !r.Timings.Has(stage) {
			continue
		}
		note := ""
		if stage == pipeline.StageLoad {
			note = strconv.Itoa(len(r.Files)) + " files"
		}
		t.Record(string(stage), r.Timings.Duration(stage), note)
	}
	return t
}

// AppendTimingDiagnostic adds report to bag as an OBS info whose single
// note carries the JSON form. The bag grows past its cap if needed.
func AppendTimingDiagnostic(bag *diag.Bag, report observ.Report) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(struct {
		Kind string `json:"kind"`
		observ.Report
	}{"pipeline", report})
	if err != nil {
		return
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, fmt.Sprintf("timings (pipeline): total %.2f ms", report.TotalMS)).
		WithNote(source.Span{}, string(data))
	if !bag.Add(d) {
		extra := diag.NewBag(1)
		extra.Add(d)
		bag.Merge(extra)
	}
}
