package mpcvalidate

import "fmt"

// Node is one vertex of a plan's task graph.
type Node struct {
	ID         string
	Downstream []string
	// Fields holds the node's payload (status, description, ...) untouched.
	Fields map[string]any
	// Pointer locates the node in its document, e.g. /nodes/3.
	Pointer string
}

// Description returns the node's description, or "" when it has none.
func (n Node) Description() string {
	s, _ := n.Fields["description"].(string)
	return s
}

// Plan is a decoded plan document.
type Plan struct {
	EntryNode string
	Nodes     []Node
}

// DecodePlan extracts the entry node and node list from a decoded document.
// Shape problems that make graph construction impossible are all collected
// into a *MalformedDocumentError. Fields irrelevant to the graph are left to
// the schema checker.
func DecodePlan(doc any) (*Plan, error) {
	root := Root()
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, &MalformedDocumentError{Issues: Issues{
			root.Issue(CodeInvalidType, fmt.Sprintf("document must be a mapping, got %s", typeName(doc))),
		}}
	}

	p := &Plan{}
	if s, ok := m["entry_node"].(string); ok {
		p.EntryNode = s
	}

	raw, present := m["nodes"]
	if !present {
		return nil, &MalformedDocumentError{Issues: Issues{
			root.Field("nodes").Issue(CodeRequired, "no nodes array found"),
		}}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &MalformedDocumentError{Issues: Issues{
			root.Field("nodes").Issue(CodeInvalidType, fmt.Sprintf("nodes must be an array, got %s", typeName(raw))),
		}}
	}
	if len(list) == 0 {
		return nil, &MalformedDocumentError{Issues: Issues{
			root.Field("nodes").Issue(CodeTooShort, "nodes must not be empty", "min", 1, "got", 0),
		}}
	}

	var iss Issues
	p.Nodes = make([]Node, 0, len(list))
	for i, item := range list {
		at := root.Field("nodes").Index(i)
		n, more := decodeNode(at, item)
		if len(more) > 0 {
			iss = AppendIssues(iss, more...)
			continue
		}
		p.Nodes = append(p.Nodes, n)
	}
	if len(iss) > 0 {
		return nil, &MalformedDocumentError{Issues: iss}
	}
	return p, nil
}

func decodeNode(at PathRef, item any) (Node, Issues) {
	fields, ok := item.(map[string]any)
	if !ok {
		return Node{}, Issues{at.Issue(CodeInvalidType, fmt.Sprintf("node must be a mapping, got %s", typeName(item)))}
	}
	n := Node{Fields: fields, Pointer: at.Pointer()}
	var iss Issues

	switch id := fields["id"].(type) {
	case string:
		if id == "" {
			iss = AppendIssues(iss, at.Field("id").Issue(CodeTooShort, "node id must not be empty"))
		}
		n.ID = id
	case nil:
		iss = AppendIssues(iss, at.Field("id").Issue(CodeRequired, "node id is required"))
	default:
		iss = AppendIssues(iss, at.Field("id").Issue(CodeInvalidType, fmt.Sprintf("node id must be a string, got %s", typeName(id))))
	}

	if raw, present := fields["downstream"]; present && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			iss = AppendIssues(iss, at.Field("downstream").Issue(CodeInvalidType, fmt.Sprintf("downstream must be an array, got %s", typeName(raw))))
			return n, iss
		}
		n.Downstream = make([]string, 0, len(list))
		for j, v := range list {
			s, ok := v.(string)
			if !ok {
				iss = AppendIssues(iss, at.Field("downstream").Index(j).Issue(CodeInvalidType, fmt.Sprintf("downstream entry must be a string, got %s", typeName(v))))
				continue
			}
			n.Downstream = append(n.Downstream, s)
		}
	}
	return n, iss
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
