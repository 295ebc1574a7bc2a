package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"ferrite/internal/project"
)

// FileName is the options file discovered upward from the source's
// directory, in the same way the project manifest is.
const FileName = "ferrite.toml"

// Load resolves the effective configuration for a pass starting at
// startDir. explicitPath, when non-empty, names the options file directly
// and must exist; otherwise the nearest FileName above startDir is used,
// and its absence is not an error. The returned path is the file actually
// applied, empty when running on pure defaults.
func Load(startDir, explicitPath string) (Config, string, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		found, ok, err := project.FindUpward(startDir, FileName)
		if err != nil || !ok {
			// Ошибка stat при поиске трактуется как отсутствие файла:
			// проход продолжается на дефолтах.
			return cfg, "", nil
		}
		path = found
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), path, fmt.Errorf("%s: failed to parse options: %w", path, err)
	}
	if cfg.RustcPath == "" {
		cfg.RustcPath = Default().RustcPath
	}
	if cfg.CargoPath == "" {
		cfg.CargoPath = Default().CargoPath
	}
	return cfg, path, nil
}
