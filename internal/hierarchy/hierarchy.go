// Package hierarchy resolves CASE associations into parent/child adjacency
// and expands per-root subtrees. Only "isChildOf"/"isPartOf" relations
// contribute edges; everything else in the association collection is
// ignored. The input is expected to form a forest per traversal root, but
// traversal is guarded against cycles introduced by malformed associations.
package hierarchy

import (
	"strings"

	"github.com/vk/casebridge/internal/caseindex"
	"github.com/vk/casebridge/internal/casepkg"
	"github.com/vk/casebridge/internal/flatten"
)

// Graph holds the resolved adjacency of one package: parent → ordered
// distinct children, the symmetric child → ordered distinct parents, and
// the first-seen sequence hint per child.
type Graph struct {
	children map[string][]string
	parents  map[string][]string
	seq      map[string]string
	edges    int
}

// Build filters the association collection down to parent/child semantics
// and resolves both endpoints through the index. Associations with an
// unrecognized relation kind or an unresolvable endpoint contribute nothing
// and raise no error. Duplicate edges under the same parent are no-ops.
func Build(assocs []casepkg.Association, idx *caseindex.Index) *Graph {
	g := &Graph{
		children: make(map[string][]string),
		parents:  make(map[string][]string),
		seq:      make(map[string]string),
	}
	for _, a := range assocs {
		if !isChildRelation(a.AssociationType) {
			continue
		}
		parent := resolve(a.Destination(), idx)
		child := resolve(a.Origin(), idx)
		if parent == "" || child == "" {
			continue
		}
		if appendDistinct(g.children, parent, child) {
			g.edges++
		}
		appendDistinct(g.parents, child, parent)
		if hint, ok := a.Sequence(); ok {
			if _, seen := g.seq[child]; !seen {
				g.seq[child] = hint
			}
		}
	}
	return g
}

// Children returns the ordered distinct children of a parent. The returned
// slice is owned by the graph and must not be mutated.
func (g *Graph) Children(parent string) []string { return g.children[parent] }

// Parents returns the ordered distinct parents of a child.
func (g *Graph) Parents(child string) []string { return g.parents[child] }

// SequenceHint returns the first explicit ordering value observed for a
// child across all of its associations.
func (g *Graph) SequenceHint(child string) (string, bool) {
	hint, ok := g.seq[child]
	return hint, ok
}

// Edges returns the number of distinct parent→child edges kept.
func (g *Graph) Edges() int { return g.edges }

// Adjacency exposes the parent→children mapping for debug dumps.
func (g *Graph) Adjacency() map[string][]string { return g.children }

// isChildRelation normalizes a relation-kind tag (case-insensitive, spaces
// stripped) and reports whether it carries child-of/part-of semantics.
func isChildRelation(tag any) bool {
	t := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(flatten.String(tag))), " ", "")
	return t == "ischildof" || t == "ispartof"
}

// resolve reduces a raw endpoint to an identifier known to the index, or "".
func resolve(raw any, idx *caseindex.Index) string {
	ident := casepkg.EndpointIdent(raw)
	if ident == "" || !idx.Has(ident) {
		return ""
	}
	return ident
}

// appendDistinct appends value under key unless already present, reporting
// whether an append happened. Child lists stay small in practice, so the
// linear scan beats carrying a companion set per key.
func appendDistinct(m map[string][]string, key, value string) bool {
	for _, existing := range m[key] {
		if existing == value {
			return false
		}
	}
	m[key] = append(m[key], value)
	return true
}
