// Package files expands command-line path arguments into document paths.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles is returned when the arguments expand to no documents.
var ErrNoFiles = errors.New("no files to validate")

// Expand resolves each argument in order. Files are taken as given;
// directories contribute their .yaml/.yml entries sorted by name. A
// directory without any yields a warning rather than an error. A missing
// path fails the whole expansion.
func Expand(args []string) (paths []string, warnings []string, err error) {
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, warnings, fmt.Errorf("path not found: %s", arg)
			}
			return nil, warnings, err
		}
		switch {
		case fi.IsDir():
			found, err := yamlFiles(arg)
			if err != nil {
				return nil, warnings, err
			}
			if len(found) == 0 {
				warnings = append(warnings, fmt.Sprintf("no YAML files found in directory: %s", arg))
				continue
			}
			paths = append(paths, found...)
		case fi.Mode().IsRegular():
			paths = append(paths, arg)
		default:
			return nil, warnings, fmt.Errorf("invalid path type: %s", arg)
		}
	}
	if len(paths) == 0 {
		return nil, warnings, ErrNoFiles
	}
	return paths, warnings, nil
}

// IsYAML reports whether name has a .yaml or .yml extension.
func IsYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsYAML(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
