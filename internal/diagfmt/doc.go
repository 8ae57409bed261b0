// Package diagfmt renders diag.Bag contents for people (Pretty) and for
// tools (JSON).
package diagfmt
