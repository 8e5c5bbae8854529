// Package caseindex normalizes the flat item collection of a CASE package
// into identifier-keyed lookups while preserving input order, and assigns
// each indexed item a semantic category.
package caseindex

import (
	"github.com/vk/casebridge/internal/casepkg"
)

// Index is the identifier-keyed view of a package's items. It is built once
// per conversion run and read-only afterwards.
type Index struct {
	items   map[string]casepkg.Item
	sources map[string]string
	order   []string
}

// New indexes the given items. Items lacking a non-empty identifier are
// dropped silently: noisy source documents are expected and incomplete
// entries are simply not addressable. A later duplicate identifier
// overwrites the stored item but keeps the identifier's original position.
func New(items []casepkg.Item) *Index {
	x := &Index{
		items:   make(map[string]casepkg.Item, len(items)),
		sources: make(map[string]string, len(items)),
	}
	for _, it := range items {
		ident := it.Ident()
		if ident == "" {
			continue
		}
		if _, seen := x.items[ident]; !seen {
			x.order = append(x.order, ident)
		}
		x.items[ident] = it
		x.sources[ident] = it.SourceURI()
	}
	return x
}

// Len returns the number of indexed items.
func (x *Index) Len() int { return len(x.order) }

// Order returns the surviving identifiers in first-seen input order. The
// returned slice is owned by the index and must not be mutated.
func (x *Index) Order() []string { return x.order }

// Item returns the indexed item for an identifier.
func (x *Index) Item(ident string) (casepkg.Item, bool) {
	it, ok := x.items[ident]
	return it, ok
}

// Has reports whether an identifier resolves through the index.
func (x *Index) Has(ident string) bool {
	_, ok := x.items[ident]
	return ok
}

// SourceURI returns the declared CASE URI for an identifier, or "".
func (x *Index) SourceURI(ident string) string { return x.sources[ident] }
