package batch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputExtension is appended to every output file name
const OutputExtension = ".md"

// Job is one planned conversion
type Job struct {
	Source string
	Output string
}

// Plan assigns an output path to every source. Sources are placed under
// outDir mirroring their directory relative to root, as <stem>.md. When two
// sources in the same directory share a stem, both keep their extension
// (<stem>.<ext>.md) so neither overwrites the other. A source that would be
// overwritten by its own output is treated the same way. Names that still
// clash ignoring case get a numeric suffix (<stem>.<ext>-2.md).
func Plan(root string, sources []string, outDir string) []Job {
	rels := make([]string, len(sources))
	stems := make(map[string]int)
	for i, src := range sources {
		rels[i] = relativeDir(root, src)
		stems[stemKey(rels[i], src)]++
	}

	jobs := make([]Job, len(sources))
	planned := make(map[string]bool)
	for i, src := range sources {
		base := filepath.Base(src)
		stem := strings.TrimSuffix(base, filepath.Ext(base))

		name := stem
		if stems[stemKey(rels[i], src)] > 1 || samePath(filepath.Join(outDir, rels[i], stem+OutputExtension), src) {
			name = base
		}
		out := filepath.Join(outDir, rels[i], name+OutputExtension)
		// Names that differ only in case collide on case-insensitive filesystems
		for n := 2; planned[strings.ToLower(out)]; n++ {
			out = filepath.Join(outDir, rels[i], fmt.Sprintf("%s-%d%s", name, n, OutputExtension))
		}
		planned[strings.ToLower(out)] = true
		jobs[i] = Job{Source: src, Output: out}
	}
	return jobs
}

// relativeDir returns the directory of src relative to root, or "." when
// src is not under root
func relativeDir(root, src string) string {
	rel, err := filepath.Rel(root, filepath.Dir(src))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "."
	}
	return rel
}

func stemKey(rel, src string) string {
	base := filepath.Base(src)
	return filepath.Join(rel, strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base))))
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
