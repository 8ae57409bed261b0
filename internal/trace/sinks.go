package trace

import (
	"errors"
	"io"
	"slices"
	"sync"
)

// StreamTracer writes each admitted event as soon as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.admits(ev) {
		return
	}
	line := FormatEvent(ev, t.format)
	t.mu.Lock()
	// trace output never fails a conversion
	_, _ = t.w.Write(line) //nolint:errcheck
	t.mu.Unlock()
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	if f, ok := t.w.(interface{ Sync() error }); ok {
		_ = f.Sync() // pipes and terminals refuse fsync
	}
	return nil
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

// RingTracer keeps the last N admitted events in memory so a failing file
// can be explained after the fact.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int // slot overwritten next once the ring is full
	level  Level
}

// NewRingTracer creates a ring holding capacity events (4096 if <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, 0, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.admits(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.events) < cap(t.events) {
		t.events = append(t.events, *ev)
		return
	}
	t.events[t.next] = *ev
	t.next = (t.next + 1) % len(t.events)
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Concat(t.events[t.next:], t.events[:t.next])
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// MultiTracer fans events out to several sinks.
type MultiTracer struct {
	fanout []Tracer
	level  Level
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{fanout: tracers, level: level}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, s := range t.fanout {
		s.Emit(ev)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, s := range t.fanout {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, s := range t.fanout {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
