package emit

import "strings"

// FormatNumber adapts a C++ numeric literal: a leading decimal point gets a
// zero, digit separators and type suffixes are dropped.
func FormatNumber(text string) string {
	text = strings.ReplaceAll(text, "'", "")
	lower := strings.ToLower(text)
	hex := strings.HasPrefix(lower, "0x")
	suffixes := "fFlLuU"
	if hex {
		// f is a hex digit
		suffixes = "lLuU"
	}
	if trimmed := strings.TrimRight(text, suffixes); trimmed != "" {
		text = trimmed
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	return text
}
