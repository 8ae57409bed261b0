package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// goroutineID parses the id out of the "goroutine N [running]:" header of
// the current stack. Workers show up as distinct ids in the trace.
func goroutineID() uint64 {
	var buf [64]byte
	fields := bytes.Fields(buf[:runtime.Stack(buf[:], false)])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Span is an open begin/end pair. The zero-cost form returned for a
// disabled scope ignores every call.
type Span struct {
	tracer  Tracer
	ev      Event // template for the end event
	started time.Time
}

var disabled = &Span{}

// Begin opens a span under parent (0 for a root span) and emits its begin
// event when the tracer's level admits it.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return disabled
	}
	now := time.Now()
	s := &Span{
		tracer:  t,
		started: now,
		ev: Event{
			Scope:    scope,
			SpanID:   spanCounter.Add(1),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
	}
	begin := s.ev
	begin.Kind, begin.Time, begin.Seq = KindSpanBegin, now, seqCounter.Add(1)
	t.Emit(&begin)
	return s
}

// End emits the end event with detail and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s.tracer == nil {
		return 0
	}
	end := s.ev
	end.Time = time.Now()
	end.Dur = end.Time.Sub(s.started)
	end.Kind, end.Seq, end.Detail = KindSpanEnd, seqCounter.Add(1), detail
	s.tracer.Emit(&end)
	return end.Dur
}

// WithExtra attaches a key/value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s.tracer == nil {
		return s
	}
	if s.ev.Extra == nil {
		s.ev.Extra = make(map[string]string, 2)
	}
	s.ev.Extra[key] = value
	return s
}

// ID returns the span id, 0 for a disabled span.
func (s *Span) ID() uint64 {
	return s.ev.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() {
		return
	}
	ev := Event{
		Time:     time.Now(),
		Seq:      seqCounter.Add(1),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	}
	if t.Level().admits(&ev) {
		t.Emit(&ev)
	}
}
