package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ferrite/internal/config"
)

// loadPassConfig resolves the effective pass options: defaults, then the
// nearest ferrite.toml (or --config), then explicit strategy flags. The
// calling command must register the config and strategy flags. The
// returned path names the options file actually applied, if any.
func loadPassConfig(cmd *cobra.Command, startDir string) (config.Config, string, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	useManifest, err := cmd.Flags().GetBool("use-manifest-build")
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get use-manifest-build flag: %w", err)
	}
	useEntryPoint, err := cmd.Flags().GetBool("use-entry-point-build")
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get use-entry-point-build flag: %w", err)
	}
	entryPoint, err := cmd.Flags().GetString("entry-point")
	if err != nil {
		return config.Config{}, "", fmt.Errorf("failed to get entry-point flag: %w", err)
	}

	cfg, cfgPath, err := config.Load(startDir, explicit)
	if err != nil {
		return config.Config{}, "", err
	}

	// Флаги перекрывают файл опций только когда заданы явно.
	if cmd.Flags().Changed("use-manifest-build") {
		cfg.UseManifestBuild = useManifest
	}
	if cmd.Flags().Changed("use-entry-point-build") {
		cfg.UseEntryPointBuild = useEntryPoint
	}
	if entryPoint != "" {
		cfg.EntryPointOverride = entryPoint
		cfg.UseEntryPointBuild = true
	}
	return cfg, cfgPath, nil
}
