package toolchain

import (
	"fmt"
	"os"
	"path/filepath"

	"ferrite/internal/source"
)

// scratchPrefix and metaPrefix name the temp directories a pass creates,
// so `ferrite clean` can find ones leaked by crashed passes.
const (
	scratchPrefix = "ferrite-scratch-"
	metaPrefix    = "ferrite-meta-"
)

// Scratch materializes single-file builds into private temp directories.
// It implements target.Scratch.
type Scratch struct {
	// Base overrides the system temp directory; empty means os.TempDir.
	Base string
}

// Materialize copies the file under edit into a fresh scratch directory.
// The copy keeps the source's basename and always carries the real .rs
// suffix: the compiler's entry-point detection keys off the extension.
// The returned cleanup removes the whole directory and is safe to call
// on every exit path.
func (s Scratch) Materialize(src *source.File) (string, string, func(), error) {
	dir, err := os.MkdirTemp(s.Base, scratchPrefix+"*")
	if err != nil {
		return "", "", func() {}, fmt.Errorf("create scratch dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	name := filepath.Base(src.Abs)
	if filepath.Ext(name) != ".rs" {
		name += ".rs"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, src.Content, 0o600); err != nil {
		cleanup()
		return "", "", func() {}, fmt.Errorf("write scratch copy: %w", err)
	}
	return dir, path, cleanup, nil
}

// MetaDir creates a throwaway directory for compiler metadata artifacts.
// Callers remove it after the pass; leaked ones are caught by SweepScratch.
func MetaDir() (string, error) {
	return os.MkdirTemp("", metaPrefix+"*")
}

// SweepScratch removes leaked scratch and metadata directories under base
// (os.TempDir when empty) and reports how many were deleted. Live
// directories of other running passes are equally matched; callers invoke
// this from `clean`, where that is the point.
func SweepScratch(base string) (int, error) {
	if base == "" {
		base = os.TempDir()
	}
	removed := 0
	for _, prefix := range []string{scratchPrefix, metaPrefix} {
		matches, err := filepath.Glob(filepath.Join(base, prefix+"*"))
		if err != nil {
			return removed, fmt.Errorf("scan temp dirs: %w", err)
		}
		for _, dir := range matches {
			if err := os.RemoveAll(dir); err != nil {
				return removed, fmt.Errorf("remove %s: %w", dir, err)
			}
			removed++
		}
	}
	return removed, nil
}
