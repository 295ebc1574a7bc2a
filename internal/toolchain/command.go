package toolchain

import (
	"path/filepath"

	"ferrite/internal/config"
	"ferrite/internal/target"
)

// Command assembles the invocation for a resolved strategy: the argv and
// the working directory to run it in. Compiles are check-only
// (--emit=metadata) and artifactDir, when set, keeps the metadata out of
// the project tree; the manifest build delegates artifact placement to
// the build tool itself. File arguments are passed relative to the
// working directory, so diagnostic paths come back relative and resolve
// through the same join the filter uses.
func Command(st target.Strategy, cfg config.Config, artifactDir string) (argv []string, dir string) {
	switch st.Kind {
	case target.KindManifest:
		return []string{cfg.CargoPath, "build"}, st.WorkDir

	case target.KindEntryPoint:
		argv = []string{cfg.RustcPath, "--emit=metadata"}
		if artifactDir != "" {
			argv = append(argv, "--out-dir", artifactDir)
		}
		argv = append(argv, filepath.Base(st.RootPath))
		return argv, st.WorkDir

	case target.KindSingleFile:
		if artifactDir == "" {
			artifactDir = st.ScratchDir
		}
		argv = []string{cfg.RustcPath, "--emit=metadata", "--out-dir", artifactDir}
		argv = append(argv, filepath.Base(st.ScratchPath))
		return argv, st.WorkDir
	}
	return nil, ""
}
