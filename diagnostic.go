package mpcvalidate

// Kind classifies a structural defect.
type Kind string

const (
	KindNoRoot           Kind = "no_root"
	KindMultipleRoots    Kind = "multiple_roots"
	KindEntryMismatch    Kind = "entry_mismatch"
	KindMissingReference Kind = "missing_reference"
	KindOrphanedNode     Kind = "orphaned_node"
	KindDuplicateID      Kind = "duplicate_id"
)

// Diagnostic is one structural defect. Subjects lists the implicated node ids:
//
//   - no_root: every node id
//   - multiple_roots: the root ids in document order
//   - entry_mismatch: the declared entry_node, then the actual root
//   - missing_reference: the referencing node, then the missing id
//   - orphaned_node, duplicate_id: the node id
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
	Subjects []string `json:"subjects"`
}

// Note is an informational fan-in entry: a node with several parents.
type Note struct {
	Node    string   `json:"node"`
	Parents []string `json:"parents"`
	Message string   `json:"message"`
}

// Result is the structural verdict for one plan.
type Result struct {
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Notes       []Note       `json:"notes"`
	NodeCount   int          `json:"node_count"`
	Roots       []string     `json:"roots"`

	// Descriptions maps node ids to their description for display.
	Descriptions map[string]string `json:"descriptions,omitempty"`
}

// Description returns the description recorded for id, or "".
func (r Result) Description(id string) string { return r.Descriptions[id] }

// Has reports whether any diagnostic of kind k is present.
func (r Result) Has(k Kind) bool {
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// OfKind returns the diagnostics of kind k in report order.
func (r Result) OfKind(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}
