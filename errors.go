package mpcvalidate

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeRequired        = "required"
	CodeUnknownKey      = "unknown_key"
	CodeDuplicateKey    = "duplicate_key"
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodePattern         = "pattern"
	CodeInvalidEnum     = "invalid_enum"
	CodeInvalidFormat   = "invalid_format"
	CodeParseError      = "parse_error"
	CodeTruncated       = "truncated"
	CodeSchemaViolation = "schema_violation"
)

var (
	// ErrMalformedDocument reports a document whose node list cannot be turned
	// into a graph (missing or mistyped nodes, ids or downstream lists).
	ErrMalformedDocument = errors.New("malformed document")

	// ErrDocumentUnavailable reports an input that could not be read or parsed.
	ErrDocumentUnavailable = errors.New("document unavailable")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string         `json:"path"` // JSON Pointer (for example: /nodes/2/id).
	Code    string         `json:"code"` // One of the codes listed above.
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /nodes/0/id
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var mde *MalformedDocumentError
	if errors.As(err, &mde) {
		return mde.Issues, true
	}
	return nil, false
}

// MalformedDocumentError carries every structural shape problem found while
// decoding a plan. It wraps ErrMalformedDocument.
type MalformedDocumentError struct {
	Issues Issues
}

func (e *MalformedDocumentError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrMalformedDocument.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMalformedDocument.Error(), e.Issues.Error())
}

func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }

// LoadError reports a document that could not be read or decoded.
// It wraps ErrDocumentUnavailable.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Name, ErrDocumentUnavailable.Error())
	}
	return fmt.Sprintf("%s: %s: %v", e.Name, ErrDocumentUnavailable.Error(), e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrDocumentUnavailable, e.Err} }
