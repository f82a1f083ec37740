package batch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/docstruct/format"
)

// DefaultExtensions returns the extensions of every supported source kind
func DefaultExtensions() []string {
	return format.Extensions(format.Supported()...)
}

// Discover lists the files under dir whose extension is in exts, sorted by
// path. Extensions match case-insensitively, with or without the leading dot;
// an empty list means DefaultExtensions. Subdirectories are searched only
// when recursive is true. Hidden directories and office lock files (~$name)
// are skipped.
func Discover(dir string, recursive bool, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	wanted := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		wanted[e] = true
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		if wanted[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Exclude drops the paths that lie inside dir. It keeps a previous run's
// output from being discovered as input when the output directory is nested
// in the input directory.
func Exclude(paths []string, dir string) []string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return paths
	}
	var kept []string
	for _, p := range paths {
		ap, err := filepath.Abs(p)
		if err == nil && within(ap, abs) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
