package emit

import "strings"

var builtinTypes = map[string]string{
	"void":          "void",
	"bool":          "boolean",
	"char":          "string",
	"string":        "string",
	"int":           "number",
	"short":         "number",
	"long":          "number",
	"long long":     "number",
	"unsigned":      "number",
	"signed":        "number",
	"float":         "number",
	"double":        "number",
	"long double":   "number",
	"ld":            "number",
	"size_t":        "number",
	"int8_t":        "number",
	"int16_t":       "number",
	"int32_t":       "number",
	"int64_t":       "number",
	"uint8_t":       "number",
	"uint16_t":      "number",
	"uint32_t":      "number",
	"uint64_t":      "number",
	"unsigned char": "number",
	"auto":          "",
}

var sequenceTemplates = map[string]bool{
	"vector": true,
	"array":  true,
	"deque":  true,
	"list":   true,
}

// typeMapper translates C++ type text to TypeScript. An empty result means
// the annotation is left out.
type typeMapper struct {
	extra map[string]string
}

func newTypeMapper(extra map[string]string) typeMapper {
	return typeMapper{extra: extra}
}

func (m typeMapper) Map(cpp string) string {
	t := strings.TrimSpace(cpp)
	if t == "" {
		return ""
	}
	if strings.HasSuffix(t, "[]") {
		inner := m.Map(strings.TrimSuffix(t, "[]"))
		if inner == "" {
			inner = "any"
		}
		return inner + "[]"
	}
	if strings.HasSuffix(t, "*") || strings.HasSuffix(t, "&") {
		// pointers and references are transparent; char* maps through char
		return m.Map(strings.TrimRight(t, "*&"))
	}
	t = strings.TrimPrefix(t, "const ")
	t = strings.TrimPrefix(t, "std::")
	if mapped, ok := m.extra[t]; ok {
		return mapped
	}
	if mapped, ok := builtinTypes[t]; ok {
		return mapped
	}
	if strings.HasPrefix(t, "unsigned ") || strings.HasPrefix(t, "signed ") {
		return "number"
	}
	if open := strings.IndexByte(t, '<'); open > 0 && strings.HasSuffix(t, ">") {
		name := strings.TrimPrefix(t[:open], "std::")
		args := splitTemplateArgs(t[open+1 : len(t)-1])
		if sequenceTemplates[name] && len(args) > 0 {
			elem := m.Map(args[0])
			if elem == "" {
				elem = "any"
			}
			return elem + "[]"
		}
		mapped := make([]string, len(args))
		for i, a := range args {
			if mapped[i] = m.Map(a); mapped[i] == "" {
				mapped[i] = "any"
			}
		}
		return strings.ReplaceAll(name, "::", "_") + "<" + strings.Join(mapped, ", ") + ">"
	}
	return strings.ReplaceAll(t, "::", "_")
}

// splitTemplateArgs splits on top-level commas.
func splitTemplateArgs(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
