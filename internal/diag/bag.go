package diag

import (
	"cmp"
	"slices"

	"fortio.org/safecast"
)

// Bag collects diagnostics for one conversion up to a fixed cap.
type Bag struct {
	items []Diagnostic
	limit uint16
}

func clampLimit(n int) uint16 {
	limit, err := safecast.Conv[uint16](n)
	if err != nil {
		return ^uint16(0)
	}
	return limit
}

// NewBag creates a bag holding at most max diagnostics.
func NewBag(max int) *Bag {
	limit := clampLimit(max)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 32)), limit: limit}
}

// Add reports false once the bag is full; d is then discarded.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.limit) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.limit }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's backing slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

// Merge appends every item of other, raising the cap when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.limit) {
		b.limit = clampLimit(total)
	}
	for _, d := range other.items {
		if !b.Add(d) {
			return
		}
	}
}

// Sort orders by file, start, end, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code.String(), y.Code.String()),
		)
	})
}

// Dedup keeps the first diagnostic for each code and primary span.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := dedupKey{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}

// Filter drops everything below min.
func (b *Bag) Filter(min Severity) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return d.Severity < min })
}
