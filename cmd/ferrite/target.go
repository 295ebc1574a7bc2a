package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ferrite/internal/source"
	"ferrite/internal/target"
	"ferrite/internal/toolchain"
)

var targetCmd = &cobra.Command{
	Use:   "target [flags] <file.rs>",
	Short: "Show which build the toolchain would run for a file",
	Long: `Target resolves the build strategy for a file (manifest, entry point or
single-file scratch) and prints the resulting invocation without
running it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTarget,
}

func init() {
	targetCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	targetCmd.Flags().String("config", "", "explicit options file (default: nearest ferrite.toml)")
	targetCmd.Flags().Bool("use-manifest-build", false, "build the whole project when a manifest is discoverable")
	targetCmd.Flags().Bool("use-entry-point-build", false, "compile the crate root when one is discoverable")
	targetCmd.Flags().String("entry-point", "", "pin the crate root explicitly (implies --use-entry-point-build)")
}

// planScratch predicts the scratch location without touching the disk;
// the generated part of the path stays a pattern in the output.
type planScratch struct{}

func (planScratch) Materialize(src *source.File) (string, string, func(), error) {
	dir := filepath.Join(os.TempDir(), "ferrite-scratch-*")
	name := filepath.Base(src.Abs)
	if filepath.Ext(name) != ".rs" {
		name += ".rs"
	}
	return dir, filepath.Join(dir, name), func() {}, nil
}

type targetPlan struct {
	Kind         string   `json:"kind"`
	WorkDir      string   `json:"workdir"`
	Argv         []string `json:"argv"`
	CheckTarget  string   `json:"check_target"`
	ManifestPath string   `json:"manifest_path,omitempty"`
	RootPath     string   `json:"root_path,omitempty"`
	ScratchPath  string   `json:"scratch_path,omitempty"`
	Options      string   `json:"options,omitempty"`
}

func runTarget(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	src, err := source.Load(filePath, nil)
	if err != nil {
		return err
	}

	cfg, cfgPath, err := loadPassConfig(cmd, src.Dir)
	if err != nil {
		return err
	}

	st, cleanup, err := target.Select(cfg, src, planScratch{})
	if err != nil {
		return err
	}
	defer cleanup()

	// Каталог метаданных entry-point сборки создаётся только на
	// настоящем проходе; здесь показываем шаблон.
	artifactDir := ""
	if st.Kind == target.KindEntryPoint {
		artifactDir = filepath.Join(os.TempDir(), "ferrite-meta-*")
	}
	argv, workDir := toolchain.Command(st, cfg, artifactDir)

	plan := targetPlan{
		Kind:         st.Kind.String(),
		WorkDir:      workDir,
		Argv:         argv,
		CheckTarget:  st.CheckTarget(src),
		ManifestPath: st.ManifestPath,
		RootPath:     st.RootPath,
		ScratchPath:  st.ScratchPath,
		Options:      cfgPath,
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	fmt.Fprintf(out, "strategy: %s\n", plan.Kind)
	fmt.Fprintf(out, "workdir:  %s\n", plan.WorkDir)
	fmt.Fprintf(out, "command:  %s\n", strings.Join(plan.Argv, " "))
	fmt.Fprintf(out, "checks:   %s\n", plan.CheckTarget)
	if plan.ManifestPath != "" {
		fmt.Fprintf(out, "manifest: %s\n", plan.ManifestPath)
	}
	if plan.RootPath != "" {
		fmt.Fprintf(out, "root:     %s\n", plan.RootPath)
	}
	if plan.Options != "" {
		fmt.Fprintf(out, "options:  %s\n", plan.Options)
	}
	return nil
}
