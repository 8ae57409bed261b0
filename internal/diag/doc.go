// Package diag defines the diagnostic model shared by the conversion pipeline.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (PAR, CNV, IO, FMT, OBS ranges), a short Message, the Primary
// span and optional Notes. Producers emit through a Reporter; BagReporter
// collects into a Bag, which is capped and supports sorting and
// deduplication.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
