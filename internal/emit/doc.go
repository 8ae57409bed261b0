// Package emit renders normalized trees as TypeScript source lines.
//
// Output goes into line buffers owned by a Module. Each top-level node gets
// its own segment; functions, classes and enums declared outside a class open
// a new one. Nested statements and expressions render into scratch buffers
// that the caller re-indents and splices into its own buffer, so no two
// sibling calls ever write to the same buffer.
package emit
