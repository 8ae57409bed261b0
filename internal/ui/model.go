// Package ui renders conversion progress in the terminal.
package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cppts/internal/pipeline"
)

// stageInfo is the label shown while a file is in a stage and the share of
// the work done once the stage starts.
var stageInfo = map[pipeline.Stage]struct {
	label  string
	weight float64
}{
	pipeline.StageLoad:      {"loading", 0.05},
	pipeline.StageParse:     {"parsing", 0.2},
	pipeline.StageNormalize: {"normalizing", 0.45},
	pipeline.StageRender:    {"rendering", 0.7},
	pipeline.StageFormat:    {"formatting", 0.85},
	pipeline.StageWrite:     {"writing", 0.95},
}

type fileRow struct {
	path   string
	status string
	stage  pipeline.Stage
	final  bool
}

func (r *fileRow) fraction() float64 {
	if r.final {
		return 1
	}
	return stageInfo[r.stage].weight
}

type progressModel struct {
	title  string
	events <-chan pipeline.Event

	spinner spinner.Model
	bar     progress.Model
	width   int

	rows   []fileRow
	byPath map[string]int

	stageLabel string
	failed     int
	done       bool
}

type (
	eventMsg pipeline.Event
	doneMsg  struct{}
)

// NewProgressModel returns a Bubble Tea model that renders per-file
// conversion progress until events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6")))),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		width:   80,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, status: string(pipeline.StatusQueued)}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next)
}

// next blocks for the following pipeline event.
func (m *progressModel) next() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return doneMsg{}
	}
	return eventMsg(ev)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(pipeline.Event(msg)), m.next)
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	}
	return m, cmd
}

// label maps an event to the text of its status column; "" keeps the old one.
func label(ev pipeline.Event) string {
	switch ev.Status {
	case pipeline.StatusWorking:
		return stageInfo[ev.Stage].label
	case pipeline.StatusQueued, pipeline.StatusDone, pipeline.StatusCached, pipeline.StatusError:
		return string(ev.Status)
	}
	return ""
}

// applyEvent updates the row of ev.File, or the run label for run events.
// A row that reached a final status ignores later events.
func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	text := label(ev)
	if ev.File == "" {
		if text != "" {
			m.stageLabel = text
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok || m.rows[i].final {
		return nil
	}
	row := &m.rows[i]
	if text != "" {
		row.status, row.stage = text, ev.Stage
	}
	switch ev.Status {
	case pipeline.StatusError:
		m.failed++
		row.final = true
	case pipeline.StatusDone, pipeline.StatusCached:
		row.final = true
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for i := range m.rows {
		sum += m.rows[i].fraction()
	}
	return sum / float64(len(m.rows))
}
