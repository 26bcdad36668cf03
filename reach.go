package mpcvalidate

import "fmt"

// Reach walks downstream edges breadth-first from the given roots and
// returns every id visited. Ids that name no node are recorded but not
// expanded; an id defined more than once follows the downstream lists of all
// its definitions. Each id is visited once, so re-converging edges and
// cycles terminate; cycles are not reported here.
func (ix *Index) Reach(roots ...string) map[string]struct{} {
	visited := make(map[string]struct{}, len(ix.byID))
	queue := append([]string(nil), roots...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		for _, i := range ix.defs[id] {
			for _, child := range ix.nodes[i].Downstream {
				if _, ok := visited[child]; !ok {
					queue = append(queue, child)
				}
			}
		}
	}
	return visited
}

// Orphans returns the nodes outside reached, in document order.
func (ix *Index) Orphans(reached map[string]struct{}) []Node {
	var out []Node
	for _, i := range ix.firsts() {
		n := ix.nodes[i]
		if _, ok := reached[n.ID]; !ok {
			out = append(out, n)
		}
	}
	return out
}

func orphanDiagnostics(orphans []Node, root string) []Diagnostic {
	out := make([]Diagnostic, 0, len(orphans))
	for _, n := range orphans {
		out = append(out, Diagnostic{
			Kind:     KindOrphanedNode,
			Path:     n.Pointer,
			Message:  fmt.Sprintf("node %q is not reachable from root %q", n.ID, root),
			Subjects: []string{n.ID},
		})
	}
	return out
}
