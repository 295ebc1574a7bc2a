package project

import "path/filepath"

// Crate root filenames, fixed search order: main first, then lib.
const (
	EntryMain = "main.rs"
	EntryLib  = "lib.rs"
)

// LocateCrateRoot finds the project's designated entry-point file for the
// directory of the file under edit.
//
// The override, when set, wins unconditionally and is not checked for
// existence: configuration is trusted, and a bad path surfaces later as a
// process failure. A relative override is resolved against startDir.
// Otherwise main.rs is searched upward from startDir, then lib.rs, each
// as a full pass over the ancestor chain. A miss is a valid state; the
// caller falls back to the single-file strategy.
func LocateCrateRoot(startDir, override string) (string, bool) {
	if override != "" {
		if !filepath.IsAbs(override) {
			override = filepath.Join(startDir, override)
		}
		return override, true
	}
	for _, name := range []string{EntryMain, EntryLib} {
		if path, ok, err := FindUpward(startDir, name); err == nil && ok {
			return path, true
		}
	}
	return "", false
}
