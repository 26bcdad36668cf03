// Package report renders check results for the command line.
package report

import (
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	mpc "github.com/reoring/mpcvalidate"
	"github.com/reoring/mpcvalidate/i18n"
)

const rule = "=================================================="

// Summary prints one block per report: a PASS line, or a FAIL line followed
// by every schema issue and structural diagnostic. okKey names the message
// used for passing documents ("schema_ok" or "structure_ok").
func Summary(w io.Writer, reports []mpc.Report, tr i18n.Translator, okKey string) error {
	ew := &errWriter{w: w}
	passed := 0
	for _, r := range reports {
		if r.OK() {
			passed++
			ew.printf("PASS %s %s\n", r.Name, tr.Message(okKey, nil))
			writeIssues(ew, "warning", r.Warnings, tr)
			continue
		}
		if r.Err != nil {
			ew.printf("FAIL %s %s: %v\n", r.Name, tr.Message("unreadable", nil), r.Err)
			if iss, ok := mpc.AsIssues(r.Err); ok {
				writeIssues(ew, "-", iss, tr)
			}
		}
		if len(r.Schema) > 0 {
			ew.printf("FAIL %s %s:\n", r.Name, tr.Message("schema_failed", nil))
			writeIssues(ew, "-", r.Schema, tr)
		}
		if r.Structure != nil && !r.Structure.Valid {
			ew.printf("FAIL %s %s:\n", r.Name, tr.Message("structure_failed", nil))
			for _, d := range r.Structure.Diagnostics {
				ew.printf("   - [%s] %s\n", d.Kind, d.Message)
			}
		}
		writeIssues(ew, "warning", r.Warnings, tr)
	}
	ew.printf("%s\n", tr.Message("summary", map[string]string{
		"passed": strconv.Itoa(passed),
		"total":  strconv.Itoa(len(reports)),
	}))
	return ew.err
}

// Detailed prints the full structural breakdown of each report: node and
// root counts, entry check, orphans, fan-in notes, missing references, and
// the verdict.
func Detailed(w io.Writer, reports []mpc.Report, tr i18n.Translator) error {
	ew := &errWriter{w: w}
	for _, r := range reports {
		ew.printf("\n%s: %s\n%s\n", tr.Message("verifying", nil), r.Name, rule)
		if r.Err != nil {
			ew.printf("FAIL %s: %v\n", tr.Message("unreadable", nil), r.Err)
			if iss, ok := mpc.AsIssues(r.Err); ok {
				writeIssues(ew, "-", iss, tr)
			}
			ew.printf("%s\n", rule)
			continue
		}
		writeStructure(ew, *r.Structure, tr)
		if len(r.Schema) > 0 {
			ew.printf("\nFAIL %s:\n", tr.Message("schema_failed", nil))
			writeIssues(ew, "-", r.Schema, tr)
		}
		writeIssues(ew, "warning", r.Warnings, tr)
		ew.printf("\n%s\n", rule)
		if r.OK() {
			ew.printf("PASS %s\n", tr.Message("structure_ok", nil))
		} else {
			ew.printf("FAIL %s\n", tr.Message("structure_issues", nil))
		}
	}
	return ew.err
}

func writeStructure(ew *errWriter, res mpc.Result, tr i18n.Translator) {
	ew.printf("%s: %d\n", tr.Message("total_nodes", nil), res.NodeCount)
	ew.printf("%s: %d\n", tr.Message("root_nodes", nil), len(res.Roots))

	byKind := func(k mpc.Kind) []mpc.Diagnostic { return res.OfKind(k) }
	switch {
	case res.Has(mpc.KindNoRoot):
		ew.printf("\nFAIL %s\n", tr.Message(string(mpc.KindNoRoot), nil))
	case res.Has(mpc.KindMultipleRoots):
		ew.printf("\nFAIL %s\n", tr.Message(string(mpc.KindMultipleRoots), nil))
		for _, id := range byKind(mpc.KindMultipleRoots)[0].Subjects {
			ew.printf("   - %q%s\n", id, describe(res, id))
		}
	case len(res.Roots) == 1:
		ew.printf("\nPASS %s\n   root: %q%s\n", tr.Message("single_root", nil), res.Roots[0], describe(res, res.Roots[0]))
		if ds := byKind(mpc.KindEntryMismatch); len(ds) > 0 {
			ew.printf("   FAIL %s\n", ds[0].Message)
		} else {
			ew.printf("   PASS %s\n", tr.Message("entry_ok", nil))
		}
	}

	ew.printf("\n--- additional checks ---\n")
	if len(res.Roots) == 1 {
		if orphans := byKind(mpc.KindOrphanedNode); len(orphans) > 0 {
			ew.printf("\nFAIL %s\n", tr.Message(string(mpc.KindOrphanedNode), count(len(orphans))))
			for _, d := range orphans {
				ew.printf("   - %q (%s)%s\n", d.Subjects[0], d.Path, describe(res, d.Subjects[0]))
			}
		} else {
			ew.printf("PASS %s\n", tr.Message("all_reachable", nil))
		}
	}
	if dups := byKind(mpc.KindDuplicateID); len(dups) > 0 {
		ew.printf("\nFAIL %s\n", tr.Message(string(mpc.KindDuplicateID), count(len(dups))))
		for _, d := range dups {
			ew.printf("   - %s\n", d.Message)
		}
	}
	if len(res.Notes) > 0 {
		ew.printf("\nNOTE %s\n", tr.Message("fan_in", count(len(res.Notes))))
		for _, n := range res.Notes {
			ew.printf("   - %s\n", n.Message)
		}
	}
	if refs := byKind(mpc.KindMissingReference); len(refs) > 0 {
		ew.printf("\nFAIL %s\n", tr.Message(string(mpc.KindMissingReference), count(len(refs))))
		for _, d := range refs {
			ew.printf("   - %s\n", d.Message)
		}
	}
}

// describe renders ": description" for id, or "" when it has none.
func describe(res mpc.Result, id string) string {
	if d := res.Description(id); d != "" {
		return ": " + d
	}
	return ""
}

func writeIssues(ew *errWriter, bullet string, iss mpc.Issues, tr i18n.Translator) {
	for _, it := range iss {
		msg := it.Message
		if msg == "" {
			msg = tr.Message(it.Code, nil)
		}
		ew.printf("   %s %s: [%s] %s\n", bullet, it.Path, it.Code, msg)
	}
}

func count(n int) map[string]string { return map[string]string{"count": strconv.Itoa(n)} }

// jsonReport is the wire form of one mpc.Report.
type jsonReport struct {
	Name      string      `json:"name"`
	OK        bool        `json:"ok"`
	Error     string      `json:"error,omitempty"`
	Malformed mpc.Issues  `json:"malformed,omitempty"`
	Schema    mpc.Issues  `json:"schema_issues"`
	Warnings  mpc.Issues  `json:"warnings,omitempty"`
	Structure *mpc.Result `json:"structure,omitempty"`
}

// JSON writes all reports as one indented JSON document.
func JSON(w io.Writer, reports []mpc.Report) error {
	out := struct {
		OK      bool         `json:"ok"`
		Reports []jsonReport `json:"reports"`
	}{OK: true, Reports: make([]jsonReport, 0, len(reports))}
	for _, r := range reports {
		jr := jsonReport{
			Name:      r.Name,
			OK:        r.OK(),
			Schema:    r.Schema,
			Warnings:  r.Warnings,
			Structure: r.Structure,
		}
		if jr.Schema == nil {
			jr.Schema = mpc.Issues{}
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
			if iss, ok := mpc.AsIssues(r.Err); ok {
				jr.Malformed = iss
			}
		}
		out.OK = out.OK && jr.OK
		out.Reports = append(out.Reports, jr)
	}
	enc := j.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// errWriter keeps the first write error so call sites stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}
