package driver

import (
	"context"
	"fmt"

	"cppts/internal/cst"
	"cppts/internal/ir"
	"cppts/internal/normalize"
	"cppts/internal/source"
)

// DumpKind selects what Dump prints.
type DumpKind uint8

const (
	DumpCST DumpKind = iota
	DumpIR
)

// Dump parses one file and prints either its CST (indented kinds) or its
// normalized tree as YAML.
func Dump(ctx context.Context, path string, kind DumpKind, opts normalize.Options) (string, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return "", err
	}
	parser, err := cst.NewParser()
	if err != nil {
		return "", fmt.Errorf("driver: %w", err)
	}
	defer parser.Close()

	root, err := parser.Parse(fileSet.Get(id))
	if err != nil {
		return "", err
	}
	if kind == DumpCST {
		return cst.Dump(root), nil
	}

	nodes, err := normalize.File(ctx, root, opts)
	if err != nil {
		return "", err
	}
	data, err := ir.Dump(nodes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
