package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only failed spans and rejected nodes
	LevelPhase               // driver + pass boundaries
	LevelDetail              // plus one span per file
	LevelDebug               // everything including node-level
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level; case is ignored.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// finest is the finest scope that opens live spans at l.
func (l Level) finest() Scope {
	switch l {
	case LevelOff:
		return 0
	case LevelPhase:
		return ScopePass
	case LevelError, LevelDetail:
		// на уровне error спаны файлов нужны, чтобы увидеть их отказ
		return ScopeModule
	default:
		return ScopeNode
	}
}

// ShouldEmit reports whether spans of this scope are tracked at l.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope <= l.finest()
}

// admits decides whether a sink keeps ev.
func (l Level) admits(ev *Event) bool {
	switch {
	case l == LevelOff:
		return false
	case ev.failed():
		return true
	case l == LevelError:
		return false
	}
	return l.ShouldEmit(ev.Scope)
}
