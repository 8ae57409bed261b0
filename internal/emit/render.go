package emit

import (
	"fmt"

	"cppts/internal/ir"
)

// UnsupportedConstruct means a node kind reached the renderer without a
// render function. Construction of the dispatch table rules this out, so
// seeing it is a bug in the converter.
type UnsupportedConstruct struct {
	Kind ir.Kind
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("no renderer for %s", e.Kind)
}

// Options tunes rendering.
type Options struct {
	// TypeMap adds or overrides C++ to TypeScript type name mappings.
	TypeMap map[string]string
}

// Renderer turns normalized nodes into lines.
type Renderer struct {
	types typeMapper
}

// New returns a renderer.
func New(opts Options) *Renderer {
	return &Renderer{types: newTypeMapper(opts.TypeMap)}
}

type renderFunc func(r *Renderer, st State, n ir.Node) error

var renderers [ir.KindCount]renderFunc

func init() {
	renderers = [ir.KindCount]renderFunc{
		ir.KindNamespace:               renderNamespace,
		ir.KindDeclaration:             renderDeclaration,
		ir.KindFunctionDefinition:      renderFunction,
		ir.KindStructDefinition:        renderStruct,
		ir.KindEnumDefinition:          renderEnum,
		ir.KindTypeAlias:               renderTypeAlias,
		ir.KindBlock:                   renderBlock,
		ir.KindIfStatement:             renderIf,
		ir.KindForStatement:            renderFor,
		ir.KindForRangeStatement:       renderForRange,
		ir.KindWhileStatement:          renderWhile,
		ir.KindDoStatement:             renderDo,
		ir.KindSwitchStatement:         renderSwitch,
		ir.KindCaseStatement:           renderCase,
		ir.KindReturnStatement:         renderReturn,
		ir.KindThrowStatement:          renderThrow,
		ir.KindBreakStatement:          renderBreak,
		ir.KindContinueStatement:       renderContinue,
		ir.KindBinaryExpression:        renderBinary,
		ir.KindUnaryExpression:         renderUnary,
		ir.KindUpdateExpression:        renderUpdate,
		ir.KindConditionalExpression:   renderConditional,
		ir.KindAssignmentExpression:    renderAssignment,
		ir.KindCallExpression:          renderCall,
		ir.KindNewExpression:           renderNew,
		ir.KindPath:                    renderPath,
		ir.KindIndexStep:               renderIndexStep,
		ir.KindReference:               renderReference,
		ir.KindNumberLiteral:           renderNumber,
		ir.KindBooleanLiteral:          renderBoolean,
		ir.KindStringLiteral:           renderString,
		ir.KindUserDefinedLiteral:      renderUserDefined,
		ir.KindNullLiteral:             renderNull,
		ir.KindParenthesizedExpression: renderParenthesized,
		ir.KindArrayLiteral:            renderArray,
	}
	for k, fn := range renderers {
		if fn == nil {
			panic(fmt.Sprintf("emit: no renderer for %s", ir.Kind(k)))
		}
	}
}

// Supports reports whether kind has a render function.
func Supports(kind ir.Kind) bool {
	return kind < ir.KindCount && renderers[kind] != nil
}

// Render appends the rendering of n to st.Body, or to new segments for
// constructs that open one.
func (r *Renderer) Render(st State, n ir.Node) error {
	if n == nil {
		return nil
	}
	k := n.Kind()
	if !Supports(k) {
		return &UnsupportedConstruct{Kind: k}
	}
	return renderers[k](r, st, n)
}

// File renders top-level nodes, each with a fresh top-level state.
func (r *Renderer) File(nodes []ir.Node) (string, error) {
	m := NewModule()
	if err := r.Into(m, nodes); err != nil {
		return "", err
	}
	return m.String(), nil
}

// Into renders top-level nodes into m.
func (r *Renderer) Into(m *Module, nodes []ir.Node) error {
	for _, n := range nodes {
		st := State{Module: m, Body: m.Segment()}
		if err := r.Render(st, n); err != nil {
			return err
		}
	}
	return nil
}

// lines renders n into a scratch buffer and returns the result.
func (r *Renderer) lines(st State, n ir.Node) ([]string, error) {
	scratch := st.Module.Scratch()
	if err := r.Render(st.into(scratch), n); err != nil {
		return nil, err
	}
	return st.Module.Lines(scratch), nil
}

// statement renders n in statement position; expressions get a semicolon.
func (r *Renderer) statement(st State, n ir.Node) error {
	if n == nil || !n.Kind().IsExpression() {
		return r.Render(st, n)
	}
	lines, err := r.lines(st, n)
	if err != nil {
		return err
	}
	st.Module.Append(st.Body, glue("", lines, ";")...)
	return nil
}

// body renders stmts into a scratch buffer and returns them indented one level.
func (r *Renderer) body(st State, stmts []ir.Node) ([]string, error) {
	scratch := st.Module.Scratch()
	inner := st.into(scratch)
	for _, s := range stmts {
		if err := r.statement(inner, s); err != nil {
			return nil, err
		}
	}
	return indent(st.Module.Lines(scratch), 1), nil
}

// block appends head, the indented statements and tail to st.Body.
func (r *Renderer) block(st State, head []string, stmts []ir.Node, tail string) error {
	inner, err := r.body(st, stmts)
	if err != nil {
		return err
	}
	st.Module.Append(st.Body, head...)
	st.Module.Append(st.Body, inner...)
	st.Module.Append(st.Body, tail)
	return nil
}
