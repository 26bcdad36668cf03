package mpcvalidate_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	mpc "github.com/reoring/mpcvalidate"
)

func TestLoad_YAML(t *testing.T) {
	doc, err := mpc.Load("plan.yaml", []byte(`
entry_node: a
created: 2024-01-02T03:04:05Z
nodes:
  - id: a
    materialization: 0.5
`), mpc.DefaultLoadOpt())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format != mpc.FormatYAML || doc.Format.String() != "yaml" {
		t.Fatalf("expected yaml format, got %v", doc.Format)
	}
	m := doc.Value.(map[string]any)
	if m["created"] != "2024-01-02T03:04:05Z" {
		t.Fatalf("expected timestamp as a string, got %#v", m["created"])
	}
	node := m["nodes"].([]any)[0].(map[string]any)
	if node["materialization"] != 0.5 {
		t.Fatalf("unexpected materialization %#v", node["materialization"])
	}
}

func TestLoad_YAMLNonStringKeys(t *testing.T) {
	v, err := mpc.DecodeYAML([]byte("nodes:\n  - id: a\n    1: one\n"))
	if err != nil {
		t.Fatal(err)
	}
	node := v.(map[string]any)["nodes"].([]any)[0].(map[string]any)
	if node["1"] != "one" {
		t.Fatalf("expected stringified key, got %#v", node)
	}
}

func TestLoad_YAMLErrors(t *testing.T) {
	for name, src := range map[string]string{
		"empty":         "",
		"syntax":        "nodes: [a, b",
		"duplicate key": "entry_node: a\nentry_node: b\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := mpc.Load("plan.yaml", []byte(src), mpc.DefaultLoadOpt())
			if !errors.Is(err, mpc.ErrDocumentUnavailable) {
				t.Fatalf("expected ErrDocumentUnavailable, got %v", err)
			}
			var le *mpc.LoadError
			if !errors.As(err, &le) || le.Name != "plan.yaml" {
				t.Fatalf("expected *LoadError naming the document, got %T", err)
			}
		})
	}
}

func TestLoad_JSONKeepsNumbers(t *testing.T) {
	doc, err := mpc.Load("plan.JSON", []byte(`{"entry_node":"a","nodes":[{"id":"a","materialization":1}]}`), mpc.DefaultLoadOpt())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format != mpc.FormatJSON {
		t.Fatalf("expected json format")
	}
	node := doc.Value.(map[string]any)["nodes"].([]any)[0].(map[string]any)
	if n, ok := node["materialization"].(j.Number); !ok || n.String() != "1" {
		t.Fatalf("expected json.Number 1, got %#v", node["materialization"])
	}
}

func TestLoad_JSONDuplicateKeys(t *testing.T) {
	src := []byte(`{"entry_node":"a","nodes":[{"id":"a","id":"b"}]}`)

	_, err := mpc.Load("plan.json", src, mpc.DefaultLoadOpt())
	iss, ok := mpc.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != mpc.CodeDuplicateKey || iss[0].Path != "/nodes/0/id" {
		t.Fatalf("expected duplicate_key at /nodes/0/id, got %v", err)
	}

	opt := mpc.DefaultLoadOpt()
	opt.Strictness.OnDuplicateKey = mpc.Warn
	doc, err := mpc.Load("plan.json", src, opt)
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(doc.Warnings) != 1 || doc.Warnings[0].Code != mpc.CodeDuplicateKey {
		t.Fatalf("expected one warning, got %v", doc.Warnings)
	}

	opt.Strictness.OnDuplicateKey = mpc.Ignore
	doc, err = mpc.Load("plan.json", src, opt)
	if err != nil || len(doc.Warnings) != 0 {
		t.Fatalf("ignore mode: err=%v warnings=%v", err, doc.Warnings)
	}
}

func TestLoad_JSONSyntaxError(t *testing.T) {
	_, err := mpc.Load("plan.json", []byte(`{"nodes": [`), mpc.DefaultLoadOpt())
	if !errors.Is(err, mpc.ErrDocumentUnavailable) {
		t.Fatalf("expected ErrDocumentUnavailable, got %v", err)
	}
}

func TestLoad_MaxBytes(t *testing.T) {
	opt := mpc.DefaultLoadOpt()
	opt.MaxBytes = 8
	_, err := mpc.Load("plan.yaml", []byte("entry_node: a\n"), opt)
	iss, ok := mpc.AsIssues(err)
	if !ok || iss[0].Code != mpc.CodeTruncated {
		t.Fatalf("expected truncated issue, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "plan.yml")
	if err := os.WriteFile(p, []byte("entry_node: a\nnodes:\n  - id: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := mpc.LoadFile(p, mpc.DefaultLoadOpt())
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if doc.Name != p {
		t.Fatalf("expected name %s, got %s", p, doc.Name)
	}

	opt := mpc.DefaultLoadOpt()
	opt.MaxBytes = 4
	_, err = mpc.LoadFile(p, opt)
	if iss, ok := mpc.AsIssues(err); !ok || iss[0].Code != mpc.CodeTruncated || !strings.Contains(err.Error(), p) {
		t.Fatalf("expected size limit error naming the file, got %v", err)
	}

	_, err = mpc.LoadFile(filepath.Join(dir, "missing.yaml"), mpc.DefaultLoadOpt())
	if !errors.Is(err, mpc.ErrDocumentUnavailable) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected unavailable not-exist error, got %v", err)
	}
}
