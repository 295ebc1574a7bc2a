// Package target resolves which build the toolchain should run for a
// lint pass: the whole project through its manifest, the crate root
// directly, or an isolated scratch copy of the single file.
package target

import (
	"path/filepath"

	"ferrite/internal/source"
)

// Kind discriminates the three build strategies.
type Kind uint8

const (
	// KindManifest builds the whole project through its manifest.
	KindManifest Kind = iota + 1
	// KindEntryPoint compiles the crate root directly.
	KindEntryPoint
	// KindSingleFile compiles an isolated scratch copy of the file.
	KindSingleFile
)

func (k Kind) String() string {
	switch k {
	case KindManifest:
		return "manifest"
	case KindEntryPoint:
		return "entry-point"
	case KindSingleFile:
		return "single-file"
	}
	return "unknown"
}

// Strategy is the resolved build decision for one lint pass: a tagged
// variant, matched with explicit switches. Exactly one payload is
// meaningful per Kind; the rest stay zero.
type Strategy struct {
	Kind Kind

	// WorkDir is the directory every relative diagnostic path resolves
	// against while this strategy is active.
	WorkDir string

	// ManifestPath is set for KindManifest.
	ManifestPath string
	// RootPath is set for KindEntryPoint.
	RootPath string
	// ScratchDir and ScratchPath are set for KindSingleFile: the isolated
	// copy the compiler actually sees.
	ScratchDir  string
	ScratchPath string
}

// ManifestBuild is the whole-project strategy; the working directory is
// the manifest's containing directory.
func ManifestBuild(manifestPath string) Strategy {
	return Strategy{
		Kind:         KindManifest,
		WorkDir:      filepath.Dir(manifestPath),
		ManifestPath: manifestPath,
	}
}

// EntryPointBuild compiles the crate root; the working directory is the
// root's containing directory.
func EntryPointBuild(rootPath string) Strategy {
	return Strategy{
		Kind:     KindEntryPoint,
		WorkDir:  filepath.Dir(rootPath),
		RootPath: rootPath,
	}
}

// SingleFileBuild compiles the scratch copy; the working directory is the
// scratch location.
func SingleFileBuild(scratchDir, scratchPath string) Strategy {
	return Strategy{
		Kind:        KindSingleFile,
		WorkDir:     scratchDir,
		ScratchDir:  scratchDir,
		ScratchPath: scratchPath,
	}
}

// CheckTarget returns the path a diagnostic must denote to count as
// belonging to the file under edit: the scratch copy for single-file
// builds (the compiler never sees the original), the real file otherwise.
func (s Strategy) CheckTarget(src *source.File) string {
	if s.Kind == KindSingleFile {
		return s.ScratchPath
	}
	return src.Canon
}
