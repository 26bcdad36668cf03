package mpcvalidate

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys in JSON documents.
// YAML documents always reject duplicate keys at parse time.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn (Document.Warnings) or Error (load fails).
}

// LoadOpt bundles document loading options.
type LoadOpt struct {
	Strictness Strictness
	MaxBytes   int64 // 0 disables the limit.
	// MaxIssues caps duplicate-key reports; < 0 means unlimited, 0 uses the default.
	MaxIssues int
}

// DefaultLoadOpt rejects duplicate JSON keys and caps inputs at 16 MiB.
func DefaultLoadOpt() LoadOpt {
	return LoadOpt{
		Strictness: Strictness{OnDuplicateKey: Error},
		MaxBytes:   16 << 20,
	}
}

// Format identifies the syntax a document was decoded from.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}
