package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Record("parse", 2*time.Millisecond, "3 files")
	tm.Record("render", 500*time.Microsecond, "")
	stop := tm.Measure("write")
	stop("")
	stop("twice")

	report := tm.Report()
	if len(report.Phases) != 3 {
		t.Fatalf("want 3 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].DurationMS != 2 || report.Phases[1].DurationMS != 0.5 {
		t.Fatalf("unexpected durations %+v", report.Phases)
	}
	if report.Phases[2].Note != "" {
		t.Fatalf("second stop overwrote the phase: %+v", report.Phases[2])
	}
	if report.TotalMS < 2.5 {
		t.Fatalf("total %v is below the recorded phases", report.TotalMS)
	}

	summary := tm.Summary()
	if !strings.Contains(summary, "parse                   2.00 ms  // 3 files\n") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
	lines := strings.Split(strings.TrimSuffix(summary, "\n"), "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(strings.TrimSpace(last), "total") {
		t.Fatalf("missing total line:\n%s", summary)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("unexpected report %+v", r)
	}
}
