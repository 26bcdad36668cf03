package mpcvalidate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Document is a decoded input ready for validation.
type Document struct {
	Name   string
	Format Format
	// Value is JSON-like: map[string]any, []any, string, bool, nil, or a number.
	Value any
	// Warnings holds non-fatal load issues such as duplicate JSON keys under Warn.
	Warnings Issues
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string, opt LoadOpt) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Name: path, Err: err}
	}
	defer f.Close()

	r := io.Reader(f)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(f, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Name: path, Err: err}
	}
	return Load(path, data, opt)
}

// Load decodes data, choosing JSON for a .json name and YAML otherwise.
func Load(name string, data []byte, opt LoadOpt) (*Document, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, &LoadError{Name: name, Err: Issues{Root().Issue(CodeTruncated, "max bytes exceeded", "max", opt.MaxBytes)}}
	}
	doc := &Document{Name: name}
	var err error
	if strings.EqualFold(filepath.Ext(name), ".json") {
		doc.Format = FormatJSON
		doc.Value, doc.Warnings, err = DecodeJSON(data, opt)
	} else {
		doc.Format = FormatYAML
		doc.Value, err = DecodeYAML(data)
	}
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return doc, nil
}

// DecodeYAML decodes the first YAML document in data into JSON-like values.
// yaml.v3 rejects duplicate mapping keys.
func DecodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, Issues{Root().Issue(CodeParseError, "empty document")}
		}
		return nil, err
	}
	return yamlNormalizeValue(v), nil
}

// DecodeJSON decodes data with numbers kept as json.Number. Duplicate keys are
// handled per opt.Strictness: reported as warnings under Warn, returned as an
// Issues error under Error.
func DecodeJSON(data []byte, opt LoadOpt) (any, Issues, error) {
	maxIssues := opt.MaxIssues
	if maxIssues == 0 {
		maxIssues = 100
	}
	dups, err := DetectJSONDuplicateKeysBytes(data, opt.Strictness, maxIssues)
	if err != nil {
		return nil, nil, err
	}
	if len(dups) > 0 && opt.Strictness.OnDuplicateKey == Error {
		return nil, nil, dups
	}

	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, nil, err
	}
	return v, dups, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
