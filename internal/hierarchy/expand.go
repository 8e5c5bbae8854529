package hierarchy

// maxDepth bounds subtree recursion against pathological input depth. Real
// competency hierarchies are a handful of levels deep.
const maxDepth = 4096

// Expand returns the pre-order traversal of the subtree rooted at root:
// the root itself, then each adjacency child in adjacency order, recursively.
// Only identifiers in the eligible set are visited. The visited set is
// shared across calls within one container so that two roots sharing a
// descendant never produce a duplicate, and it also terminates traversal of
// cyclic input. A root outside the eligible set, or already visited, yields
// an empty sequence.
func (g *Graph) Expand(root string, eligible map[string]bool, visited map[string]bool) []string {
	return g.expand(root, eligible, visited, 0)
}

func (g *Graph) expand(node string, eligible, visited map[string]bool, depth int) []string {
	if depth > maxDepth || !eligible[node] || visited[node] {
		return nil
	}
	visited[node] = true
	ordered := []string{node}
	for _, child := range g.children[node] {
		if eligible[child] && !visited[child] {
			ordered = append(ordered, g.expand(child, eligible, visited, depth+1)...)
		}
	}
	return ordered
}
