package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics; higher is more serious.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// ParseSeverity reads the spelling used in flags and config; "warn" is
// accepted for warning.
func ParseSeverity(s string) (Severity, error) {
	if strings.EqualFold(s, "warn") {
		return SevWarning, nil
	}
	for sev, name := range severityNames {
		if strings.EqualFold(s, name) {
			return Severity(sev), nil
		}
	}
	return SevError, fmt.Errorf("invalid severity %q (expected: info|warning|error)", s)
}
