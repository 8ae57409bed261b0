package emit

import "strings"

// indentUnit is one level of indentation in emitted code.
const indentUnit = "  "

// indent shifts lines right by levels units. Empty lines stay empty.
func indent(lines []string, levels int) []string {
	pad := strings.Repeat(indentUnit, levels)
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			continue
		}
		out[i] = pad + l
	}
	return out
}

// glue prefixes the first line and suffixes the last one.
func glue(prefix string, lines []string, suffix string) []string {
	if len(lines) == 0 {
		return []string{prefix + suffix}
	}
	out := make([]string, len(lines))
	copy(out, lines)
	out[0] = prefix + out[0]
	out[len(out)-1] += suffix
	return out
}

// concat joins two fragments: the last line of a, sep and the first line of b
// become one line.
func concat(a []string, sep string, b []string) []string {
	if len(a) == 0 {
		return glue(sep, b, "")
	}
	if len(b) == 0 {
		return glue("", a, sep)
	}
	out := make([]string, 0, len(a)+len(b)-1)
	out = append(out, a[:len(a)-1]...)
	out = append(out, a[len(a)-1]+sep+b[0])
	return append(out, b[1:]...)
}

// inline collapses a fragment onto one line, used where the target syntax
// has no room for line breaks such as for-loop headers.
func inline(lines []string) string {
	var sb strings.Builder
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if i > 0 && l != "" {
			prev := sb.String()
			if !strings.HasSuffix(prev, "(") && !strings.HasSuffix(prev, "[") &&
				!strings.HasPrefix(l, ")") && !strings.HasPrefix(l, "]") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(l)
	}
	return sb.String()
}

// list lays out rendered items between open and close: on one line when
// every item is a single line, otherwise one item per line with commas.
func list(head []string, open string, items [][]string, close string) []string {
	single := true
	for _, it := range items {
		if len(it) != 1 {
			single = false
			break
		}
	}
	if single {
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it[0]
		}
		return glue("", head, open+strings.Join(parts, ", ")+close)
	}
	out := glue("", head, open)
	for i, it := range items {
		if i < len(items)-1 {
			it = glue("", it, ",")
		}
		out = append(out, indent(it, 1)...)
	}
	return append(out, close)
}
