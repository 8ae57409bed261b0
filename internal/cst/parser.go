package cst

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"cppts/internal/source"
)

// RootKind is the kind of the node Parse returns.
const RootKind = "translation_unit"

// Parser wraps a tree-sitter parser configured for C++.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser constructs a parser with the C++ language loaded.
func NewParser() (*Parser, error) {
	lang := sitter.NewLanguage(tree_sitter_cpp.Language())
	if lang == nil {
		return nil, errors.New("cst: c++ language not available")
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("cst: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// Parse parses the file and copies the tree-sitter tree into a Node tree.
// Syntax errors are not reported here: ERROR nodes stay in the tree and the
// normalizer rejects them like any other unsupported construct. Zero-width
// MISSING nodes from error recovery are dropped.
func (p *Parser) Parse(file *source.File) (*Node, error) {
	if p == nil || p.parser == nil {
		return nil, errors.New("cst: nil parser")
	}
	if file == nil {
		return nil, errors.New("cst: nil file")
	}
	tree := p.parser.Parse(file.Content, nil)
	if tree == nil {
		return nil, errors.New("cst: parse cancelled")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.New("cst: unexpected root node")
	}
	c := converter{text: string(file.Content), file: file.ID}
	out, err := c.convert(root)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Kind != RootKind {
		return nil, fmt.Errorf("cst: unexpected root node %q", root.Kind())
	}
	return out, nil
}

type converter struct {
	text string
	file source.FileID
}

func (c *converter) convert(n *sitter.Node) (*Node, error) {
	if n.IsMissing() {
		return nil, nil
	}
	start, err := safecast.Conv[uint32](n.StartByte())
	if err != nil {
		return nil, fmt.Errorf("cst: start offset overflow: %w", err)
	}
	end, err := safecast.Conv[uint32](n.EndByte())
	if err != nil {
		return nil, fmt.Errorf("cst: end offset overflow: %w", err)
	}
	out := &Node{
		Kind: n.Kind(),
		Text: c.text[start:end],
		Span: source.Span{File: c.file, Start: start, End: end},
	}
	count := n.ChildCount()
	if count == 0 {
		return out, nil
	}
	out.Children = make([]*Node, 0, count)
	for i := uint(0); i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		converted, err := c.convert(child)
		if err != nil {
			return nil, err
		}
		if converted != nil {
			out.Children = append(out.Children, converted)
		}
	}
	return out, nil
}
