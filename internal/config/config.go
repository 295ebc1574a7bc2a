// Package config holds the typed options for a lint pass.
//
// Options come from three layers, later wins: built-in defaults, the
// nearest ferrite.toml above the file under edit (or an explicit path),
// and command-line flags. The recognized keys are exactly the fields of
// Config; unknown keys in an options file are ignored, missing keys keep
// their defaults.
package config

// Config is the full set of recognized options for one lint pass.
type Config struct {
	// UseManifestBuild enables the whole-project build strategy when a
	// manifest is discoverable above the file under edit.
	UseManifestBuild bool `toml:"use-manifest-build"`
	// UseEntryPointBuild enables the crate-root build strategy when an
	// entry point is discoverable or overridden.
	UseEntryPointBuild bool `toml:"use-entry-point-build"`
	// EntryPointOverride pins the crate root explicitly. Trusted as-is,
	// never checked for existence.
	EntryPointOverride string `toml:"entry-point-override"`

	// RustcPath and CargoPath name the executables to invoke; bare names
	// resolve through PATH.
	RustcPath string `toml:"rustc-path"`
	CargoPath string `toml:"cargo-path"`
}

// Default returns the documented defaults: both broader strategies off,
// toolchain executables resolved from PATH.
func Default() Config {
	return Config{
		RustcPath: "rustc",
		CargoPath: "cargo",
	}
}
