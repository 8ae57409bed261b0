package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cppts/internal/driver"
	"cppts/internal/pipeline"
	"cppts/internal/ui"
)

// uiMode is the --ui setting.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// shouldUseTUI decides whether to show the progress view. Auto mode wants
// an interactive stderr and more than one file.
func shouldUseTUI(mode uiMode, files int) bool {
	if mode == uiModeAuto {
		return files > 1 && isTerminal(os.Stderr)
	}
	return mode == uiModeOn
}

type convertOutcome struct {
	result *driver.Result
	err    error
}

// runConvertWithUI runs the conversion in the background and renders its
// progress events until the run finishes. Quitting the view cancels the run.
func runConvertWithUI(ctx context.Context, title string, files, display []string, opts driver.Options) (*driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan convertOutcome, 1)

	go func() {
		opts.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.ConvertFiles(ctx, files, opts)
		outcomeCh <- convertOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// ctrl+c закрывает UI раньше конвейера: отменяем и дочитываем события
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
