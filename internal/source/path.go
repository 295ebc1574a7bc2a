package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonicalize returns the canonical form of path: absolute, symlinks
// resolved, "."/".." segments collapsed, Unicode in NFC. Two canonical
// paths are byte-equal iff they denote the same file. Relative input is
// resolved against the process working directory, so callers comparing
// against a build directory must join onto it first (see BelongsTo).
func Canonicalize(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		var err error
		abs, err = filepath.Abs(abs)
		if err != nil {
			return "", fmt.Errorf("canonicalize %s: %w", path, err)
		}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	// NFC: на macOS пути приходят в разложенной форме (NFD), байтовое
	// сравнение без нормализации даёт ложные несовпадения.
	return norm.NFC.String(filepath.Clean(resolved)), nil
}

// BelongsTo reports whether reportedPath denotes the same file as
// currentPath. A relative reportedPath is resolved against workDir, never
// against the process working directory. Canonicalization failure (for
// example the file vanished mid-pass) is a non-match, not an error.
func BelongsTo(workDir, reportedPath, currentPath string) bool {
	resolved := reportedPath
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(workDir, resolved)
	}
	reported, err := Canonicalize(resolved)
	if err != nil {
		return false
	}
	current, err := Canonicalize(currentPath)
	if err != nil {
		return false
	}
	return reported == current
}

// RelativeTo formats path relative to base when it lies under base,
// otherwise returns it unchanged. Used for human-facing output only.
func RelativeTo(path, base string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
