// Package normalize turns a C++ concrete syntax tree into the normalized
// tree of package ir.
//
// Every CST node kind the converter understands has a case in one of the
// dispatch switches below (items, members, statements, expressions). Anything
// else stops the conversion of the file with *UnsupportedConstruct; there is
// no partial output.
//
// Children of a production are consumed in source order by small builder
// values with named slots. The first identifier of a declarator is its name,
// the next expression is its initializer, and a child that fits no free slot
// is an error rather than an overwrite.
package normalize
