package lint

import (
	"ferrite/internal/diag"
	"ferrite/internal/source"
)

// Keep returns the diagnostics whose reported path denotes the file
// under check. workDir anchors relative reported paths and must be the
// directory the compiler ran in. The input is never mutated, order is
// preserved, and a kept slice passes through unchanged on a second
// application.
func Keep(workDir string, diags []diag.Diagnostic, currentPath string) []diag.Diagnostic {
	kept := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if source.BelongsTo(workDir, d.Path, currentPath) {
			kept = append(kept, d)
		}
	}
	return kept
}

// Attribute rewrites diagnostics onto displayPath, the path the caller
// asked about. Scratch copies and canonical forms disappear from
// user-facing output here, after filtering. The input is not mutated.
func Attribute(diags []diag.Diagnostic, displayPath string) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(diags))
	copy(out, diags)
	for i := range out {
		out[i].Path = displayPath
	}
	return out
}
