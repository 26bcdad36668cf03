// Package schema checks plan documents against a JSON Schema (draft 7) and
// reports violations as mpcvalidate Issues.
package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	jsv "github.com/santhosh-tekuri/jsonschema/v5"

	mpc "github.com/reoring/mpcvalidate"
)

// DefaultName is the resource name of the embedded Symbolic MPC schema.
const DefaultName = "symbolic-mpc.schema.json"

// resourceURL is the in-memory location of the schema being compiled.
const resourceURL = "https://mpcvalidate.invalid/schema.json"

//go:embed symbolic-mpc.schema.json
var symbolicMPC []byte

// Schema is a compiled JSON Schema. It is immutable and safe to share.
type Schema struct {
	name     string
	source   []byte
	compiled *jsv.Schema
}

// Default compiles the embedded Symbolic MPC schema.
func Default() (*Schema, error) {
	return Compile(DefaultName, symbolicMPC)
}

// Load reads and compiles the schema file at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return Compile(path, data)
}

// Compile compiles a JSON Schema document. Formats are asserted. name is
// only used for display; every document is registered under resourceURL so
// relative references resolve without a loader.
func Compile(name string, data []byte) (*Schema, error) {
	c := jsv.NewCompiler()
	c.Draft = jsv.Draft7
	c.AssertFormat = true
	if err := c.AddResource(resourceURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("schema: %s: %w", name, err)
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", name, err)
	}
	return &Schema{name: name, source: data, compiled: compiled}, nil
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string { return s.name }

// Source returns the schema document as given to Compile.
func (s *Schema) Source() []byte { return s.source }

// Check validates doc and returns one Issue per failing keyword, sorted by
// path. doc must hold JSON-like values as produced by mpcvalidate.Load.
func (s *Schema) Check(doc any) mpc.Issues {
	err := s.compiled.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsv.ValidationError
	if !errors.As(err, &ve) {
		return mpc.Issues{mpc.Root().Issue(mpc.CodeParseError, err.Error())}
	}

	var iss mpc.Issues
	for _, leaf := range leaves(ve, nil) {
		iss = mpc.AppendIssues(iss, mpc.Issue{
			Path:    pointer(leaf.InstanceLocation),
			Code:    codeFor(leaf.KeywordLocation),
			Message: leaf.Message,
		})
	}
	sort.SliceStable(iss, func(i, j int) bool {
		if iss[i].Path != iss[j].Path {
			return iss[i].Path < iss[j].Path
		}
		if iss[i].Code != iss[j].Code {
			return iss[i].Code < iss[j].Code
		}
		return iss[i].Message < iss[j].Message
	})
	return iss
}

// leaves collects the errors without causes; inner errors only wrap them.
func leaves(ve *jsv.ValidationError, dst []*jsv.ValidationError) []*jsv.ValidationError {
	if len(ve.Causes) == 0 {
		return append(dst, ve)
	}
	for _, c := range ve.Causes {
		dst = leaves(c, dst)
	}
	return dst
}

func pointer(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}

// codeFor maps the failing keyword (last segment of the keyword location)
// onto an Issue code.
func codeFor(keywordLocation string) string {
	kw := keywordLocation
	if i := strings.LastIndexByte(kw, '/'); i >= 0 {
		kw = kw[i+1:]
	}
	switch kw {
	case "required":
		return mpc.CodeRequired
	case "type":
		return mpc.CodeInvalidType
	case "enum", "const":
		return mpc.CodeInvalidEnum
	case "minimum", "exclusiveMinimum":
		return mpc.CodeTooSmall
	case "maximum", "exclusiveMaximum":
		return mpc.CodeTooBig
	case "minItems", "minLength", "minProperties":
		return mpc.CodeTooShort
	case "maxItems", "maxLength", "maxProperties":
		return mpc.CodeTooLong
	case "pattern":
		return mpc.CodePattern
	case "format":
		return mpc.CodeInvalidFormat
	case "additionalProperties":
		return mpc.CodeUnknownKey
	default:
		return mpc.CodeSchemaViolation
	}
}
