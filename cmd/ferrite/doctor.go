package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ferrite/internal/cache"
	"ferrite/internal/config"
	"ferrite/internal/toolchain"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Probe the Rust toolchain ferrite would invoke",
	Long: `Doctor resolves and interrogates the configured rustc and cargo
executables, reporting version, commit and release date. Probe results
are cached; --no-cache forces live probes.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	doctorCmd.Flags().String("config", "", "explicit options file (default: nearest ferrite.toml)")
	doctorCmd.Flags().Bool("no-cache", false, "probe the executables even when cached results are fresh")
}

type toolReport struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Release string `json:"release,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	Error   string `json:"error,omitempty"`
}

type doctorReport struct {
	Tools    []toolReport `json:"tools"`
	CacheDir string       `json:"cache_dir,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	startDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, _, err := config.Load(startDir, explicit)
	if err != nil {
		return err
	}

	// Без кеша пробы живые; ошибка открытия кеша тоже деградирует в
	// живые пробы, doctor не должен падать из-за кеша.
	var c *cache.DiskCache
	if !noCache {
		c, _ = cache.Open("ferrite")
	}

	runner := &toolchain.ExecRunner{}
	report := doctorReport{CacheDir: c.Dir()}
	broken := false
	for _, name := range []string{cfg.RustcPath, cfg.CargoPath} {
		tr := toolReport{Name: name}
		tool, probeErr := toolchain.CachedProbe(cmd.Context(), runner, name, c)
		if probeErr != nil {
			tr.Error = probeErr.Error()
			broken = true
		} else {
			tr.OK = true
			tr.Path = tool.Path
			tr.Version = tool.Version
			tr.Release = tool.Release
			tr.Commit = tool.Commit
			tr.Date = tool.Date
		}
		report.Tools = append(report.Tools, tr)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
		renderDoctorPretty(out, report, useColor)
	}

	if broken {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

func renderDoctorPretty(out io.Writer, report doctorReport, useColor bool) {
	okMark := color.New(color.FgGreen, color.Bold)
	badMark := color.New(color.FgRed, color.Bold)
	applyColor(okMark, useColor)
	applyColor(badMark, useColor)

	for _, tr := range report.Tools {
		if !tr.OK {
			fmt.Fprintf(out, "%s %s: %s\n", badMark.Sprint("✗"), tr.Name, tr.Error)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", okMark.Sprint("✓"), tr.Version)
		fmt.Fprintf(out, "    path: %s\n", tr.Path)
		if tr.Commit != "" && tr.Date != "" {
			fmt.Fprintf(out, "    commit: %s (%s)\n", tr.Commit, tr.Date)
		}
	}
	if report.CacheDir != "" {
		fmt.Fprintf(out, "probe cache: %s\n", report.CacheDir)
	}
}

func applyColor(c *color.Color, on bool) {
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}
