package ui

import (
	"errors"
	"strings"
	"testing"

	"cppts/internal/pipeline"
)

func TestApplyEventTracksFiles(t *testing.T) {
	m := NewProgressModel("converting", []string{"a.cpp", "b.cpp"}, nil).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.cpp", Stage: pipeline.StageRender, Status: pipeline.StatusWorking})
	if m.rows[0].status != "rendering" {
		t.Fatalf("want rendering, got %q", m.rows[0].status)
	}
	if got := m.percent(); got != 0.35 {
		t.Fatalf("want 0.35, got %v", got)
	}

	m.applyEvent(pipeline.Event{File: "b.cpp", Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: errors.New("x")})
	m.applyEvent(pipeline.Event{File: "b.cpp", Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
	if m.rows[1].status != "error" || m.failed != 1 {
		t.Fatalf("a failed file must stay failed: %+v", m.rows[1])
	}

	m.applyEvent(pipeline.Event{File: "a.cpp", Stage: pipeline.StageLoad, Status: pipeline.StatusCached})
	if got := m.percent(); got != 1 {
		t.Fatalf("want 1, got %v", got)
	}

	m.applyEvent(pipeline.Event{File: "unknown.cpp", Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
	if m.stageLabel != "writing" {
		t.Fatalf("want run label writing, got %q", m.stageLabel)
	}

	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: converting (writing), 1 failed") || !strings.Contains(view, "cached a.cpp") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cpp", 20, "short.cpp"},
		{"very/long/path/file.cpp", 10, "very..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
