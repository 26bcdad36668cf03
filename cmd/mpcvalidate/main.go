package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	mpc "github.com/reoring/mpcvalidate"
	"github.com/reoring/mpcvalidate/i18n"
	"github.com/reoring/mpcvalidate/internal/files"
	"github.com/reoring/mpcvalidate/internal/report"
	"github.com/reoring/mpcvalidate/schema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `mpcvalidate CLI

Usage:
  mpcvalidate check  [-schema file] [-format text|json] [-lang en|ja] [-dup-keys error|warn|ignore] [-v] <path>...
  mpcvalidate verify [-format text|json] [-lang en|ja] [-dup-keys error|warn|ignore] [-v] <path>...
  mpcvalidate schema [-schema file]

Notes:
  - A directory argument expands to the .yaml/.yml files it contains.
  - The exit status is 0 only when every document passes.`)
}

// run executes one CLI invocation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 1
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdout, stderr)
	case "verify":
		return verifyCmd(args[1:], stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 1
	}
}

// options are the flags shared by check and verify.
type options struct {
	schemaPath string
	format     string
	lang       string
	dupKeys    string
	verbose    bool
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.format, "format", "text", "output format: text or json")
	fs.StringVar(&o.lang, "lang", "en", "message language: en or ja")
	fs.StringVar(&o.dupKeys, "dup-keys", "error", "duplicate JSON keys: error, warn, or ignore")
	fs.BoolVar(&o.verbose, "v", false, "enable verbose logs")
}

func (o *options) validate() error {
	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("invalid -format %q (want text or json)", o.format)
	}
	if !i18n.Supported(o.lang) {
		return fmt.Errorf("invalid -lang %q (want en or ja)", o.lang)
	}
	if _, err := parseSeverity(o.dupKeys); err != nil {
		return err
	}
	return nil
}

func (o *options) loadOpt() mpc.LoadOpt {
	opt := mpc.DefaultLoadOpt()
	opt.Strictness.OnDuplicateKey, _ = parseSeverity(o.dupKeys)
	return opt
}

func parseSeverity(s string) (mpc.Severity, error) {
	switch s {
	case "error":
		return mpc.Error, nil
	case "warn":
		return mpc.Warn, nil
	case "ignore":
		return mpc.Ignore, nil
	}
	return mpc.Error, fmt.Errorf("invalid -dup-keys %q (want error, warn, or ignore)", s)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func checkCmd(args []string, stdout, stderr io.Writer) int {
	var o options
	fs := newFlagSet("check", stderr)
	fs.StringVar(&o.schemaPath, "schema", "", "schema file (defaults to the embedded Symbolic MPC schema)")
	o.register(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	logf := verboseLogger(o.verbose, stderr)

	sch, err := loadSchema(o.schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, "check: %v\n", err)
		return 1
	}
	logf("check: schema=%s format=%s lang=%s", sch.Name(), o.format, o.lang)
	return execute(mpc.NewChecker(sch), fs.Args(), o, "schema_ok", false, logf, stdout, stderr)
}

func verifyCmd(args []string, stdout, stderr io.Writer) int {
	var o options
	fs := newFlagSet("verify", stderr)
	o.register(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	logf := verboseLogger(o.verbose, stderr)
	logf("verify: format=%s lang=%s", o.format, o.lang)
	return execute(mpc.NewChecker(nil), fs.Args(), o, "structure_ok", true, logf, stdout, stderr)
}

// execute expands inputs, checks every document, and renders the reports.
func execute(c *mpc.Checker, args []string, o options, okKey string, detailed bool, logf func(string, ...any), stdout, stderr io.Writer) int {
	if err := o.validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	paths, warnings, err := files.Expand(args)
	for _, w := range warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if err != nil {
		if errors.Is(err, files.ErrNoFiles) {
			fmt.Fprintln(stderr, "no plan files to validate")
			usage(stderr)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	logf("inputs: %d file(s)", len(paths))

	reports := c.CheckFiles(paths, o.loadOpt())
	for _, r := range reports {
		logf("%s: ok=%t", r.Name, r.OK())
	}

	tr := i18n.New(o.lang)
	switch {
	case o.format == "json":
		err = report.JSON(stdout, reports)
	case detailed:
		err = report.Detailed(stdout, reports, tr)
	default:
		err = report.Summary(stdout, reports, tr, okKey)
	}
	if err != nil {
		fmt.Fprintf(stderr, "writing report: %v\n", err)
		return 1
	}
	for _, r := range reports {
		if !r.OK() {
			return 1
		}
	}
	return 0
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("schema", stderr)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema file (defaults to the embedded Symbolic MPC schema)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	sch, err := loadSchema(schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return 1
	}
	if _, err := stdout.Write(sch.Source()); err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return 1
	}
	return 0
}

func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return schema.Default()
	}
	return schema.Load(path)
}

func verboseLogger(verbose bool, w io.Writer) func(string, ...any) {
	return func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(w, format+"\n", a...)
		}
	}
}
