package normalize

import (
	"strings"

	"cppts/internal/cst"
)

// typeKinds are the CST kinds that can fill the type slot of a declaration.
var typeKinds = map[string]bool{
	"primitive_type":             true,
	"type_identifier":            true,
	"sized_type_specifier":       true,
	"qualified_identifier":       true,
	"template_type":              true,
	"placeholder_type_specifier": true,
	"auto":                       true,
	"decltype":                   true,
	"type_descriptor":            true,
}

var typeSpacing = strings.NewReplacer(" :: ", "::", ":: ", "::", " ::", "::",
	" <", "<", "< ", "<", " >", ">", " ,", ",", " *", "*", " &", "&", " [", "[", "[ ", "[", " ]", "]")

// typeText renders a type node as compact C++ source text.
func typeText(c *cst.Node) string {
	if c == nil {
		return ""
	}
	return typeSpacing.Replace(strings.Join(strings.Fields(c.Text), " "))
}
