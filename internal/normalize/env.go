package normalize

import (
	"strings"

	"cppts/internal/cst"
)

type scopeKind uint8

const (
	scopeFile scopeKind = iota
	scopeNamespace
	scopeClass
	scopeFunction
)

// env is the normalization context. It is passed by value; a callee that
// needs a different parent or scope works on its own copy.
type env struct {
	parent *cst.Node // nearest enclosing node, used as error context
	scope  scopeKind
	// path prefixes declaration names; it is cleared inside function and
	// class bodies so that locals and members keep their own names.
	path []string
	// ns is the namespace nesting, kept everywhere for reference lookup.
	ns         []string
	class      string          // emitted name of the enclosing class
	classLocal string          // its name as written, which constructors repeat
	members    map[string]bool // member name -> static
	locals     *frame
}

func (e env) in(parent *cst.Node) env {
	e.parent = parent
	return e
}

func (e env) namespace(name string) env {
	e.scope = scopeNamespace
	e.path = appendPath(e.path, name)
	e.ns = appendPath(e.ns, name)
	return e
}

func (e env) inClass(name, local string, members map[string]bool) env {
	e.scope = scopeClass
	e.path = nil
	e.class = name
	e.classLocal = local
	e.members = members
	e.locals = nil
	return e
}

func (e env) function() env {
	e.scope = scopeFunction
	e.path = nil
	e.locals = newFrame(nil)
	return e
}

func (e env) block() env {
	e.locals = newFrame(e.locals)
	return e
}

// declName returns the name a declaration gets at this point of the tree.
func (e env) declName(local string) string {
	if len(e.path) == 0 {
		return local
	}
	return strings.Join(e.path, "_") + "_" + local
}

// declare records a local so that later references are not rewritten.
func (e env) declare(name string) {
	if e.locals != nil {
		e.locals.names[name] = true
	}
}

func appendPath(path []string, name string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, name)
}

type frame struct {
	names  map[string]bool
	parent *frame
}

func newFrame(parent *frame) *frame {
	return &frame{names: make(map[string]bool), parent: parent}
}

func (f *frame) has(name string) bool {
	for ; f != nil; f = f.parent {
		if f.names[name] {
			return true
		}
	}
	return false
}
