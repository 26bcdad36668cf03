// Package mpcvalidate validates Symbolic MPC plan documents: declarative task
// graphs whose nodes name their successors in a downstream list.
//
// It provides:
//
// - Document loading for YAML and JSON with duplicate-key and size enforcement
// - Plan decoding that reports malformed node lists as Issues (JSON Pointer, code, message)
// - Structural validation: single root, entry/root agreement, reachability,
//   reference integrity, duplicate ids, and fan-in notes
// - A Checker that pairs any schema Conformance implementation with the
//   structural validator and yields one Report per document
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - The JSON Schema engine lives under schema/, messages under i18n/, and the CLI under cmd/mpcvalidate.
// - Validation is a pure function of one document; nothing is cached between calls.
//
// Typical usage:
//
//	sch, err := schema.Default()
//	c := mpcvalidate.NewChecker(sch)
//	for _, r := range c.CheckFiles(paths, mpcvalidate.DefaultLoadOpt()) {
//		fmt.Println(r.Name, r.OK())
//	}
//
//	res, err := mpcvalidate.Validate(doc)
package mpcvalidate
