package mpcvalidate

import "fmt"

// Validate decodes doc as a plan and checks its graph structure. The only
// error it returns is a *MalformedDocumentError; structural defects are
// reported in the Result.
func Validate(doc any) (Result, error) {
	p, err := DecodePlan(doc)
	if err != nil {
		return Result{}, err
	}
	return ValidatePlan(p), nil
}

// ValidatePlan runs every structural check on p and collects all defects in
// one pass. The verdict is valid when the plan has exactly one root, the
// entry node names it, every node is reachable from it, every downstream id
// resolves, and no id is defined twice. Fan-in is reported as notes only.
func ValidatePlan(p *Plan) Result {
	ix := BuildIndex(p.Nodes)
	res := Result{NodeCount: ix.Len()}

	res.Diagnostics = append(res.Diagnostics, ix.Duplicates()...)

	roots := ix.Roots()
	for _, r := range roots {
		res.Roots = append(res.Roots, r.ID)
	}
	switch len(roots) {
	case 0:
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Kind:     KindNoRoot,
			Message:  "no root node found (all nodes have incoming edges)",
			Subjects: nodeIDs(ix),
		})
	case 1:
		root := roots[0]
		if d, ok := checkEntry(p.EntryNode, root); !ok {
			res.Diagnostics = append(res.Diagnostics, d)
		}
		orphans := ix.Orphans(ix.Reach(root.ID))
		res.Diagnostics = append(res.Diagnostics, orphanDiagnostics(orphans, root.ID)...)
	default:
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Kind:     KindMultipleRoots,
			Message:  fmt.Sprintf("multiple root nodes found: %s; there must be exactly one root node", quoteJoin(res.Roots)),
			Subjects: append([]string(nil), res.Roots...),
		})
	}

	res.Diagnostics = append(res.Diagnostics, ix.MissingReferences()...)
	res.Notes = ix.FanIn()
	res.Descriptions = descriptions(ix)
	res.Valid = len(res.Diagnostics) == 0
	return res
}

// checkEntry compares the declared entry node with the unique root by exact
// string equality.
func checkEntry(declared string, root Node) (Diagnostic, bool) {
	if declared == root.ID {
		return Diagnostic{}, true
	}
	return Diagnostic{
		Kind:     KindEntryMismatch,
		Path:     "/entry_node",
		Message:  fmt.Sprintf("entry_node %q is not the root node; the root node is %q", declared, root.ID),
		Subjects: []string{declared, root.ID},
	}, false
}

// descriptions collects the description of each first definition.
func descriptions(ix *Index) map[string]string {
	var out map[string]string
	for _, i := range ix.firsts() {
		n := ix.nodes[i]
		d := n.Description()
		if d == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[n.ID] = d
	}
	return out
}

func nodeIDs(ix *Index) []string {
	firsts := ix.firsts()
	out := make([]string, 0, len(firsts))
	for _, i := range firsts {
		out = append(out, ix.nodes[i].ID)
	}
	return out
}
