package mpcvalidate_test

import (
	"errors"
	"reflect"
	"testing"

	mpc "github.com/reoring/mpcvalidate"
)

func mustYAML(t *testing.T, src string) any {
	t.Helper()
	v, err := mpc.DecodeYAML([]byte(src))
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	return v
}

func mustValidate(t *testing.T, src string) mpc.Result {
	t.Helper()
	res, err := mpc.Validate(mustYAML(t, src))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return res
}

func kinds(res mpc.Result) []mpc.Kind {
	out := make([]mpc.Kind, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, d.Kind)
	}
	return out
}

func TestValidate_LinearPlan(t *testing.T) {
	res := mustValidate(t, `
entry_node: setup
nodes:
  - id: setup
    downstream: [implement]
  - id: implement
`)
	if !res.Valid || len(res.Diagnostics) != 0 || len(res.Notes) != 0 {
		t.Fatalf("expected valid result, got %+v", res)
	}
	if res.NodeCount != 2 || !reflect.DeepEqual(res.Roots, []string{"setup"}) {
		t.Fatalf("unexpected counts: nodes=%d roots=%v", res.NodeCount, res.Roots)
	}
}

func TestValidate_EntryMismatch(t *testing.T) {
	res := mustValidate(t, `
entry_node: implement
nodes:
  - id: setup
    downstream: [implement]
  - id: implement
`)
	if res.Valid {
		t.Fatalf("expected invalid result")
	}
	ds := res.OfKind(mpc.KindEntryMismatch)
	if len(ds) != 1 || len(res.Diagnostics) != 1 {
		t.Fatalf("expected exactly one entry_mismatch, got %v", kinds(res))
	}
	if !reflect.DeepEqual(ds[0].Subjects, []string{"implement", "setup"}) || ds[0].Path != "/entry_node" {
		t.Fatalf("unexpected diagnostic: %+v", ds[0])
	}
}

func TestValidate_EntryIsCaseSensitive(t *testing.T) {
	res := mustValidate(t, `
entry_node: Setup
nodes:
  - id: setup
`)
	if !res.Has(mpc.KindEntryMismatch) {
		t.Fatalf("expected entry_mismatch, got %v", kinds(res))
	}
}

func TestValidate_CycleHasNoRoot(t *testing.T) {
	res := mustValidate(t, `
entry_node: a
nodes:
  - id: a
    downstream: [b]
  - id: b
    downstream: [a]
`)
	if res.Valid || !reflect.DeepEqual(kinds(res), []mpc.Kind{mpc.KindNoRoot}) {
		t.Fatalf("expected only no_root, got %v", kinds(res))
	}
	if !reflect.DeepEqual(res.Diagnostics[0].Subjects, []string{"a", "b"}) {
		t.Fatalf("expected all ids as subjects, got %v", res.Diagnostics[0].Subjects)
	}
	if res.Has(mpc.KindOrphanedNode) {
		t.Fatalf("reachability must not run without a root")
	}
}

func TestValidate_MultipleRootsInDocumentOrder(t *testing.T) {
	res := mustValidate(t, `
entry_node: x
nodes:
  - id: x
    downstream: [z]
  - id: z
  - id: y
    downstream: [z]
`)
	ds := res.OfKind(mpc.KindMultipleRoots)
	if len(ds) != 1 || !reflect.DeepEqual(ds[0].Subjects, []string{"x", "y"}) {
		t.Fatalf("expected multiple_roots [x y], got %+v", res.Diagnostics)
	}
	if res.Has(mpc.KindOrphanedNode) || res.Has(mpc.KindEntryMismatch) {
		t.Fatalf("entry and reachability checks must not run with several roots: %v", kinds(res))
	}
	if len(res.Notes) != 1 || res.Notes[0].Node != "z" {
		t.Fatalf("expected fan-in note for z, got %+v", res.Notes)
	}
}

func TestValidate_DiamondIsValidWithFanIn(t *testing.T) {
	res := mustValidate(t, `
entry_node: A
nodes:
  - id: A
    downstream: [B, C]
  - id: B
    downstream: [D]
  - id: C
    downstream: [D]
  - id: D
`)
	if !res.Valid {
		t.Fatalf("expected valid diamond, got %v", kinds(res))
	}
	want := []mpc.Note{{Node: "D", Parents: []string{"B", "C"}, Message: `node "D" is referenced by "B", "C"`}}
	if !reflect.DeepEqual(res.Notes, want) {
		t.Fatalf("unexpected notes: %+v", res.Notes)
	}
}

func TestValidate_MissingReferenceFromUnreachableNode(t *testing.T) {
	res := mustValidate(t, `
entry_node: root
nodes:
  - id: root
    downstream: [child]
  - id: child
  - id: stray
    downstream: [ghost, child]
`)
	// stray is a second root, so only references and fan-in run past the root check.
	refs := res.OfKind(mpc.KindMissingReference)
	if len(refs) != 1 {
		t.Fatalf("expected one missing_reference, got %v", kinds(res))
	}
	if !reflect.DeepEqual(refs[0].Subjects, []string{"stray", "ghost"}) || refs[0].Path != "/nodes/2/downstream/0" {
		t.Fatalf("unexpected diagnostic: %+v", refs[0])
	}
}

func TestValidate_MissingReferenceAndOrphanTogether(t *testing.T) {
	res := mustValidate(t, `
entry_node: root
nodes:
  - id: root
    downstream: [ghost]
  - id: loop1
    downstream: [loop2]
  - id: loop2
    downstream: [loop1]
`)
	want := []mpc.Kind{mpc.KindOrphanedNode, mpc.KindOrphanedNode, mpc.KindMissingReference}
	if !reflect.DeepEqual(kinds(res), want) {
		t.Fatalf("expected %v, got %v", want, kinds(res))
	}
	if res.Diagnostics[0].Subjects[0] != "loop1" || res.Diagnostics[1].Subjects[0] != "loop2" {
		t.Fatalf("orphans must follow document order: %+v", res.Diagnostics)
	}
}

func TestValidate_OrphanReportedWithEntryMismatch(t *testing.T) {
	res := mustValidate(t, `
entry_node: b
nodes:
  - id: a
  - id: c
    downstream: [c]
`)
	want := []mpc.Kind{mpc.KindEntryMismatch, mpc.KindOrphanedNode}
	if !reflect.DeepEqual(kinds(res), want) {
		t.Fatalf("expected %v, got %v", want, kinds(res))
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	res := mustValidate(t, `
entry_node: a
nodes:
  - id: a
    downstream: [b]
  - id: b
  - id: a
    downstream: [ghost]
`)
	ds := res.OfKind(mpc.KindDuplicateID)
	if len(ds) != 1 || ds[0].Path != "/nodes/2" || ds[0].Subjects[0] != "a" {
		t.Fatalf("expected duplicate_id at /nodes/2, got %+v", res.Diagnostics)
	}
	if res.Valid {
		t.Fatalf("duplicate ids must invalidate the plan")
	}
	// the later definition's downstream still counts as a reference
	if !res.Has(mpc.KindMissingReference) {
		t.Fatalf("expected missing_reference from the duplicate, got %v", kinds(res))
	}
	if res.NodeCount != 3 {
		t.Fatalf("expected node count 3, got %d", res.NodeCount)
	}
}

func TestValidate_DuplicateIDEdgesAreReachable(t *testing.T) {
	res := mustValidate(t, `
entry_node: a
nodes:
  - id: a
    downstream: [b]
  - id: b
  - id: b
    downstream: [c]
  - id: c
`)
	if !reflect.DeepEqual(kinds(res), []mpc.Kind{mpc.KindDuplicateID}) {
		t.Fatalf("expected only duplicate_id, got %+v", res.Diagnostics)
	}
	if !reflect.DeepEqual(res.Roots, []string{"a"}) {
		t.Fatalf("unexpected roots: %v", res.Roots)
	}
}

func TestValidate_DescriptionsFromFirstDefinition(t *testing.T) {
	res := mustValidate(t, `
entry_node: a
nodes:
  - id: a
    description: "Start here"
    downstream: [b]
  - id: b
  - id: a
    description: "Shadowed"
`)
	if res.Description("a") != "Start here" || res.Description("b") != "" {
		t.Fatalf("unexpected descriptions: %v", res.Descriptions)
	}
}

func TestValidate_SelfLoopRootless(t *testing.T) {
	res := mustValidate(t, `
entry_node: solo
nodes:
  - id: solo
    downstream: [solo]
`)
	if !reflect.DeepEqual(kinds(res), []mpc.Kind{mpc.KindNoRoot}) {
		t.Fatalf("expected no_root, got %v", kinds(res))
	}
}

func TestValidate_RepeatedDownstreamCountsOnce(t *testing.T) {
	res := mustValidate(t, `
entry_node: a
nodes:
  - id: a
    downstream: [b, b]
  - id: b
`)
	if !res.Valid || len(res.Notes) != 0 {
		t.Fatalf("expected valid result without notes, got %+v", res)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	doc := mustYAML(t, `
entry_node: a
nodes:
  - id: a
    downstream: [b, ghost]
  - id: b
  - id: c
    downstream: [b]
`)
	first, err := mpc.Validate(doc)
	if err != nil {
		t.Fatal(err)
	}
	second, err := mpc.Validate(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		paths []string
	}{
		{"scalar document", `just text`, []string{"/"}},
		{"missing nodes", `entry_node: a`, []string{"/nodes"}},
		{"nodes not array", "nodes: {a: 1}", []string{"/nodes"}},
		{"empty nodes", "nodes: []", []string{"/nodes"}},
		{"node without id", "nodes:\n  - downstream: []\n  - id: ''\n", []string{"/nodes/0/id", "/nodes/1/id"}},
		{"bad downstream", "nodes:\n  - id: a\n    downstream: b\n  - id: c\n    downstream: [1]\n", []string{"/nodes/0/downstream", "/nodes/1/downstream/0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mpc.Validate(mustYAML(t, tc.src))
			if !errors.Is(err, mpc.ErrMalformedDocument) {
				t.Fatalf("expected ErrMalformedDocument, got %v", err)
			}
			iss, ok := mpc.AsIssues(err)
			if !ok {
				t.Fatalf("expected issues in %v", err)
			}
			var got []string
			for _, it := range iss {
				got = append(got, it.Path)
			}
			if !reflect.DeepEqual(got, tc.paths) {
				t.Fatalf("expected paths %v, got %v", tc.paths, got)
			}
		})
	}
}

func TestValidatePlan_EmptyDownstreamAndExtraFields(t *testing.T) {
	p := &mpc.Plan{EntryNode: "only", Nodes: []mpc.Node{{ID: "only", Pointer: "/nodes/0", Fields: map[string]any{"status": "Ready"}}}}
	res := mpc.ValidatePlan(p)
	if !res.Valid || res.NodeCount != 1 {
		t.Fatalf("expected valid single-node plan, got %+v", res)
	}
}
