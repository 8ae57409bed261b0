// Package cst holds the concrete syntax tree consumed by the normalizer.
//
// A Node is the grammar-agnostic shape {Kind, Text, Children}: punctuation and
// keyword tokens are kept as children whose Kind is the token itself ("(",
// ";", "if"). Trees come either from Parser, which wraps tree-sitter-cpp, or
// from the N/T helpers used by tests to build exact shapes by hand.
//
// Не делает: нормализацию, проверку семантики, восстановление после ошибок.
package cst
