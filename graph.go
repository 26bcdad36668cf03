package mpcvalidate

import (
	"fmt"
	"slices"
	"strings"
)

// Index is the per-call graph view of a plan: nodes by id, parents by id,
// and the per-node downstream lists kept in document order.
type Index struct {
	nodes      []Node
	byID       map[string]int
	defs       map[string][]int
	parents    map[string][]string
	duplicates []int
}

// BuildIndex indexes nodes by id and inverts their downstream edges.
// A repeated id keeps its first definition for lookups and is recorded as a
// duplicate; the edges of every definition still belong to that id. A parent
// listing the same child twice counts once.
func BuildIndex(nodes []Node) *Index {
	ix := &Index{
		nodes:   nodes,
		byID:    make(map[string]int, len(nodes)),
		defs:    make(map[string][]int, len(nodes)),
		parents: make(map[string][]string),
	}
	for i, n := range nodes {
		ix.defs[n.ID] = append(ix.defs[n.ID], i)
		if _, taken := ix.byID[n.ID]; taken {
			ix.duplicates = append(ix.duplicates, i)
			continue
		}
		ix.byID[n.ID] = i
	}
	for _, n := range nodes {
		for _, child := range n.Downstream {
			if slices.Contains(ix.parents[child], n.ID) {
				continue
			}
			ix.parents[child] = append(ix.parents[child], n.ID)
		}
	}
	return ix
}

// Node returns the node registered under id.
func (ix *Index) Node(id string) (Node, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return Node{}, false
	}
	return ix.nodes[i], true
}

// Parents returns the ids of nodes listing id as downstream.
func (ix *Index) Parents(id string) []string { return ix.parents[id] }

// Len returns the number of nodes in document order, duplicates included.
func (ix *Index) Len() int { return len(ix.nodes) }

// Roots returns the nodes nobody lists as downstream, in document order.
func (ix *Index) Roots() []Node {
	var roots []Node
	for _, i := range ix.firsts() {
		n := ix.nodes[i]
		if _, hasParent := ix.parents[n.ID]; !hasParent {
			roots = append(roots, n)
		}
	}
	return roots
}

// Duplicates reports every node whose id was already defined earlier.
func (ix *Index) Duplicates() []Diagnostic {
	var out []Diagnostic
	for _, i := range ix.duplicates {
		n := ix.nodes[i]
		first := ix.nodes[ix.byID[n.ID]]
		out = append(out, Diagnostic{
			Kind:     KindDuplicateID,
			Path:     n.Pointer,
			Message:  fmt.Sprintf("node id %q is already defined at %s", n.ID, first.Pointer),
			Subjects: []string{n.ID},
		})
	}
	return out
}

// MissingReferences reports every downstream id that names no node. It
// covers all nodes, reachable or not.
func (ix *Index) MissingReferences() []Diagnostic {
	var out []Diagnostic
	for _, n := range ix.nodes {
		at := At(n.Pointer).Field("downstream")
		for j, child := range n.Downstream {
			if _, ok := ix.byID[child]; ok {
				continue
			}
			out = append(out, Diagnostic{
				Kind:     KindMissingReference,
				Path:     at.Index(j).Pointer(),
				Message:  fmt.Sprintf("node %q references non-existent node %q", n.ID, child),
				Subjects: []string{n.ID, child},
			})
		}
	}
	return out
}

// FanIn lists nodes with more than one parent. It is informational only.
func (ix *Index) FanIn() []Note {
	var out []Note
	for _, i := range ix.firsts() {
		id := ix.nodes[i].ID
		ps := ix.parents[id]
		if len(ps) < 2 {
			continue
		}
		out = append(out, Note{
			Node:    id,
			Parents: append([]string(nil), ps...),
			Message: fmt.Sprintf("node %q is referenced by %s", id, quoteJoin(ps)),
		})
	}
	return out
}

// firsts returns the positions of first definitions, in document order.
func (ix *Index) firsts() []int {
	out := make([]int, 0, len(ix.byID))
	for i, n := range ix.nodes {
		if ix.byID[n.ID] == i {
			out = append(out, i)
		}
	}
	return out
}

func quoteJoin(ids []string) string {
	b := &strings.Builder{}
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%q", id)
	}
	return b.String()
}
