// Package diagfmt renders attributed diagnostics for people and tools:
// pretty terminal output with source context, the compact short form,
// the compiler's raw line format, and JSON.
package diagfmt

import (
	"path/filepath"

	"ferrite/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prefers a path relative to BaseDir, falling back to
	// the path as attributed.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  bool // печатать строку исходника с подчёркиванием
	PathMode PathMode
	BaseDir  string // база для относительных путей
	Width    int    // максимальная ширина строки контекста, 0 - не ограничено
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // обрезка вывода, не Bag
}

// displayPath renders an attributed path according to the mode.
func displayPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative:
		return source.RelativeTo(path, baseDir)
	case PathModeBasename:
		return filepath.Base(path)
	default:
		if baseDir != "" {
			return source.RelativeTo(path, baseDir)
		}
		return path
	}
}
