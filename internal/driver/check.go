package driver

import (
	"fmt"

	"cppts/internal/emit"
	"cppts/internal/normalize"
)

// Every kind the normalizer may produce must have a renderer; a gap is a
// build defect, so it fails at start-up rather than on some input.
func init() {
	for _, k := range normalize.Kinds() {
		if !emit.Supports(k) {
			panic(fmt.Sprintf("driver: normalizer produces %s but emit has no renderer", k))
		}
	}
}
