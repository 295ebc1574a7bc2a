package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ferrite/internal/cache"
	"ferrite/internal/toolchain"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove ferrite scratch directories and the probe cache",
	Long: `Clean sweeps the temp directory for scratch and metadata directories
leaked by interrupted passes, and drops cached toolchain probe results.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().Bool("keep-cache", false, "sweep temp directories but keep cached probe results")
}

func runClean(cmd *cobra.Command, args []string) error {
	keepCache, err := cmd.Flags().GetBool("keep-cache")
	if err != nil {
		return fmt.Errorf("failed to get keep-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	out := cmd.OutOrStdout()

	removed, err := toolchain.SweepScratch("")
	if err != nil {
		return fmt.Errorf("failed to sweep scratch directories: %w", err)
	}
	if !quiet {
		switch removed {
		case 0:
			fmt.Fprintln(out, "no scratch directories found")
		case 1:
			fmt.Fprintln(out, "removed 1 scratch directory")
		default:
			fmt.Fprintf(out, "removed %d scratch directories\n", removed)
		}
	}

	if keepCache {
		return nil
	}
	c, err := cache.Open("ferrite")
	if err != nil {
		return fmt.Errorf("failed to open probe cache: %w", err)
	}
	if err := c.DropAll(); err != nil {
		return fmt.Errorf("failed to drop probe cache: %w", err)
	}
	if !quiet {
		fmt.Fprintf(out, "dropped probe cache at %s\n", c.Dir())
	}
	return nil
}
