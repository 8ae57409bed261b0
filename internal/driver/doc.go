// Package driver runs the conversion pipeline over files.
//
// Per file: load, parse (tree-sitter), normalize, render, format. Files are
// independent; ConvertFiles runs them on a bounded worker pool, each worker
// owning its own parser. Results are optionally cached on disk keyed by the
// file content and every setting that affects the output.
package driver
