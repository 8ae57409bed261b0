package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope says how coarse an event is. Lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI run
	ScopePass                    // load, parse, normalize, render, format, write
	ScopeModule                  // one source file
	ScopeNode                    // CST node level
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeModule: "module", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the sink
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	GID      uint64 // goroutine that opened the span
	Name     string // e.g. "parse", "file"
	Detail   string
	Dur      time.Duration // span end only
	Extra    map[string]string
}

// Failure details. An end event with one of these, or a point named
// PointUnsupported, is kept even at LevelError.
const (
	DetailError      = "error"
	PointUnsupported = "unsupported"
)

func (ev *Event) failed() bool {
	switch ev.Kind {
	case KindSpanEnd:
		return ev.Detail == DetailError
	case KindPoint:
		return ev.Name == PointUnsupported
	}
	return false
}
