package target

import (
	"fmt"

	"ferrite/internal/config"
	"ferrite/internal/project"
	"ferrite/internal/source"
)

// Scratch materializes the file under edit into an isolated location for
// the single-file strategy. The toolchain package provides the real
// implementation; tests substitute fakes.
type Scratch interface {
	Materialize(src *source.File) (dir, path string, cleanup func(), err error)
}

// Select resolves the build strategy for one pass. Precedence is fixed
// and first-satisfied wins: manifest build, then entry-point build, then
// the single-file fallback. Discovery misses and stat failures fall
// through to the next strategy; only scratch materialization can fail,
// and with no strategy left that failure is fatal to the pass. The
// returned cleanup is never nil and must run on every exit path.
//
// The broader strategies compile more than the file under edit.
// Diagnostics for other files are filtered out downstream, and an error
// elsewhere in the project can stop the compiler before it reaches the
// current file, hiding its findings until the other file is fixed. That
// is how the toolchain builds; callers get the single-file strategy when
// they need isolation.
func Select(cfg config.Config, src *source.File, scratch Scratch) (Strategy, func(), error) {
	noop := func() {}

	if cfg.UseManifestBuild {
		if manifestPath, ok, err := project.FindManifest(src.Dir); err == nil && ok {
			return ManifestBuild(manifestPath), noop, nil
		}
	}

	if cfg.UseEntryPointBuild {
		if rootPath, ok := project.LocateCrateRoot(src.Dir, cfg.EntryPointOverride); ok {
			return EntryPointBuild(rootPath), noop, nil
		}
	}

	dir, path, cleanup, err := scratch.Materialize(src)
	if err != nil {
		return Strategy{}, noop, fmt.Errorf("materialize scratch copy: %w", err)
	}
	return SingleFileBuild(dir, path), cleanup, nil
}
