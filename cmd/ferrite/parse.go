package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ferrite/internal/diag"
	"ferrite/internal/diagfmt"
	"ferrite/internal/parse"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [output.txt]",
	Short: "Parse raw compiler output into structured diagnostics",
	Long: `Parse reads raw rustc/cargo output from a file (or stdin when no file is
given) and prints the diagnostics the line grammar recognizes. Lines
that do not match are skipped, exactly as during a check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "short", "output format (short|raw|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	var raw []byte
	if len(args) == 1 && args[0] != "-" {
		raw, err = os.ReadFile(args[0]) // #nosec G304 -- path is provided by the user
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	parsed := parse.Output(raw)
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range parsed {
		if !bag.Add(d) {
			break
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "short":
		diagfmt.Short(out, bag, diagfmt.PathModeAuto, "")
	case "raw":
		diagfmt.Raw(out, bag)
	case "json":
		if err := diagfmt.JSON(out, bag, diagfmt.JSONOpts{}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !quiet && format != "json" {
		msg := fmt.Sprintf("parsed %d diagnostics", len(parsed))
		if bag.Len() < len(parsed) {
			msg += fmt.Sprintf(" (showing %d)", bag.Len())
		}
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}
	return nil
}
