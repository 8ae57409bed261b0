package format

import "strings"

// requote rewrites string literals on one line to the preferred delimiter
// when that needs no new escapes. Template literals are left alone.
func requote(line string, q Quote) string {
	if q == QuotePreserve {
		return line
	}
	want, other := byte('\''), byte('"')
	if q == QuoteDouble {
		want, other = '"', '\''
	}

	var sb strings.Builder
	for i := 0; i < len(line); {
		c := line[i]
		if c != '"' && c != '\'' && c != '`' {
			sb.WriteByte(c)
			i++
			continue
		}
		end := closing(line, i)
		if end < 0 {
			sb.WriteString(line[i:])
			break
		}
		lit := line[i : end+1]
		if c == other && !strings.ContainsRune(lit[1:len(lit)-1], rune(want)) {
			body := strings.ReplaceAll(lit[1:len(lit)-1], `\`+string(other), string(other))
			lit = string(want) + body + string(want)
		}
		sb.WriteString(lit)
		i = end + 1
	}
	return sb.String()
}

// closing finds the index of the quote that ends the literal opened at start.
func closing(line string, start int) int {
	q := line[start]
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}
