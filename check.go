package mpcvalidate

// Conformance checks a decoded document against a shape contract. An empty
// result means the document conforms.
type Conformance interface {
	Check(doc any) Issues
}

// Report is the outcome of checking one document.
type Report struct {
	Name string `json:"name"`
	// Schema lists conformance issues; empty when no Conformance is configured.
	Schema Issues `json:"schema_issues"`
	// Warnings lists non-fatal load issues.
	Warnings Issues `json:"warnings,omitempty"`
	// Structure is nil when the document could not be loaded or decoded.
	Structure *Result `json:"structure,omitempty"`
	// Err is a *LoadError or *MalformedDocumentError.
	Err error `json:"-"`
}

// OK reports whether the document loaded, conforms, and is structurally valid.
func (r Report) OK() bool {
	return r.Err == nil && len(r.Schema) == 0 && r.Structure != nil && r.Structure.Valid
}

// Checker pairs a schema Conformance with the structural validator.
type Checker struct {
	schema Conformance
}

// NewChecker returns a Checker. A nil schema restricts checks to structure.
func NewChecker(schema Conformance) *Checker {
	return &Checker{schema: schema}
}

// Check runs schema conformance and structural validation on doc. Both run
// regardless of the other's outcome.
func (c *Checker) Check(doc *Document) Report {
	r := Report{Name: doc.Name, Warnings: doc.Warnings}
	if c.schema != nil {
		r.Schema = c.schema.Check(doc.Value)
	}
	res, err := Validate(doc.Value)
	if err != nil {
		r.Err = err
		return r
	}
	r.Structure = &res
	return r
}

// CheckFiles loads and checks each path in order. A file that cannot be
// loaded only fails its own report.
func (c *Checker) CheckFiles(paths []string, opt LoadOpt) []Report {
	out := make([]Report, 0, len(paths))
	for _, p := range paths {
		doc, err := LoadFile(p, opt)
		if err != nil {
			out = append(out, Report{Name: p, Err: err})
			continue
		}
		out = append(out, c.Check(doc))
	}
	return out
}
