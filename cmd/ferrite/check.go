package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ferrite/internal/diag"
	"ferrite/internal/diagfmt"
	"ferrite/internal/lint"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rs|directory>",
	Short: "Run the Rust toolchain and report diagnostics for the file under edit",
	Long: `Check builds the file's project (or the file alone, isolated in a scratch
copy), parses the compiler output and keeps only the diagnostics that
belong to the checked file. For a directory, every *.rs file underneath
is checked in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// init registers the flags of the check command.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|raw|json)")
	checkCmd.Flags().String("config", "", "explicit options file (default: nearest ferrite.toml)")
	checkCmd.Flags().Bool("use-manifest-build", false, "build the whole project when a manifest is discoverable")
	checkCmd.Flags().Bool("use-entry-point-build", false, "compile the crate root when one is discoverable")
	checkCmd.Flags().String("entry-point", "", "pin the crate root explicitly (implies --use-entry-point-build)")
	checkCmd.Flags().Int("jobs", 0, "max parallel passes for directory checks (0=auto)")
	checkCmd.Flags().Duration("timeout", 0, "abort the toolchain after this long (0=no limit)")
	checkCmd.Flags().Bool("stdin", false, "check content read from stdin, attributed to the given path")
	checkCmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit non-zero on warnings too")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-context", false, "omit source context lines in pretty output")
	checkCmd.Flags().Int("width", 0, "truncate context lines to this display width (0=off)")
	checkCmd.Flags().String("ui", "auto", "progress UI for directory checks (auto|on|off)")
}

// reportOpts bundles the presentation settings shared by the single-file
// and directory paths of runCheck.
type reportOpts struct {
	format           string
	pretty           diagfmt.PrettyOpts
	json             diagfmt.JSONOpts
	warningsAsErrors bool
	quiet            bool
	showTimings      bool
}

// runCheck executes the check command: it resolves flags and options,
// runs one pass (or a parallel pass per file for a directory), prints
// the surviving diagnostics in the chosen format, and exits non-zero
// when any error-class diagnostic or pass failure was seen.
func runCheck(cmd *cobra.Command, args []string) error {
	checkPath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "raw", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	noContext, err := cmd.Flags().GetBool("no-context")
	if err != nil {
		return fmt.Errorf("failed to get no-context flag: %w", err)
	}

	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("failed to get timeout flag: %w", err)
	}

	fromStdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return fmt.Errorf("failed to get stdin flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	st, err := os.Stat(checkPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() && fromStdin {
		return fmt.Errorf("--stdin requires a file path, not a directory")
	}

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer traceCleanup()
	defer dumpTraceOnPanic(traceCleanup)

	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer profCleanup()

	// Таймаут ограничивает весь проход, включая вызов компилятора.
	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	startDir := checkPath
	if !st.IsDir() {
		startDir = filepath.Dir(checkPath)
	}
	cfg, _, err := loadPassConfig(cmd, startDir)
	if err != nil {
		return err
	}

	opts := lint.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		EnableTimings:  showTimings,
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	baseDir, _ := os.Getwd()

	ro := reportOpts{
		format: format,
		pretty: diagfmt.PrettyOpts{
			Color:    useColor,
			Context:  !noContext,
			PathMode: pathMode,
			BaseDir:  baseDir,
			Width:    width,
		},
		json: diagfmt.JSONOpts{
			PathMode: pathMode,
			BaseDir:  baseDir,
		},
		warningsAsErrors: warningsAsErrors,
		quiet:            quiet,
		showTimings:      showTimings,
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	runFile := func() (int, error) {
		var content []byte
		if fromStdin {
			content, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return 0, fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		res := lint.Run(ctx, checkPath, content, opts)
		if noWarnings && res.Bag != nil {
			res.Bag = dropWarnings(res.Bag)
		}
		return reportResult(out, errOut, res, ro), nil
	}

	runDir := func() (int, error) {
		mode, err := readUIMode(uiFlag)
		if err != nil {
			return 0, err
		}

		files, err := lint.ListRustFiles(checkPath)
		if err != nil {
			return 0, fmt.Errorf("failed to list rust files: %w", err)
		}
		if len(files) == 0 {
			if !quiet {
				fmt.Fprintln(out, "no rust files found")
			}
			return 0, nil
		}

		// TUI несовместим с машинными форматами на том же stdout.
		useTUI := shouldUseTUI(mode) && format == "pretty" && !quiet

		var results []*lint.Result
		var runErr error
		if useTUI {
			results, runErr = runChecksWithUI(ctx, "ferrite check", files, opts)
		} else {
			results, runErr = lint.RunFiles(ctx, files, opts)
		}
		if runErr != nil {
			// Частичные результаты всё равно печатаем вместе с причиной
			// остановки.
			fmt.Fprintf(errOut, "check interrupted: %v\n", runErr)
		}

		if noWarnings {
			for _, r := range results {
				if r != nil && r.Bag != nil {
					r.Bag = dropWarnings(r.Bag)
				}
			}
		}

		exit := 0
		if format == "json" {
			output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
			for _, r := range results {
				if r == nil {
					continue
				}
				if r.Status == lint.StatusProcessFailure {
					fmt.Fprintf(errOut, "%s: check failed: %v\n", r.Path, r.Failure)
					exit = 1
					continue
				}
				output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, ro.json)
				if r.Bag.HasErrors() || (warningsAsErrors && r.Bag.HasWarnings()) {
					exit = 1
				}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(output); err != nil {
				return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
			}
		} else {
			shown := 0
			for _, r := range results {
				if r == nil {
					continue
				}
				hasOutput := r.Status == lint.StatusProcessFailure || r.Bag.Len() > 0
				if format == "pretty" && hasOutput {
					if shown > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "== %s ==\n", r.Path)
					shown++
				}
				if c := reportResult(out, errOut, r, ro); c != 0 {
					exit = 1
				}
			}
			if format == "pretty" && !quiet {
				clean := 0
				for _, r := range results {
					if r != nil && r.Status == lint.StatusClean {
						clean++
					}
				}
				fmt.Fprintf(out, "checked %d files: %d clean\n", len(results), clean)
			}
		}

		if runErr != nil && exit == 0 {
			exit = 1
		}
		return exit, nil
	}

	var exitCode int
	var resultErr error
	if st.IsDir() {
		exitCode, resultErr = runDir()
	} else {
		exitCode, resultErr = runFile()
	}

	if resultErr != nil {
		return resultErr
	}
	if exitCode != 0 {
		// Диагностики уже напечатаны; cobra ничего не добавляет.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

// reportResult prints one pass result and returns its exit-code
// contribution (0 or 1). Failures go to errOut, diagnostics to out.
func reportResult(out, errOut io.Writer, res *lint.Result, ro reportOpts) int {
	if res == nil {
		return 0
	}
	if res.Status == lint.StatusProcessFailure {
		fmt.Fprintf(errOut, "%s: check failed: %v\n", res.Path, res.Failure)
		if len(res.Raw) > 0 && !ro.quiet {
			_, _ = errOut.Write(res.Raw)
		}
		return 1
	}

	switch ro.format {
	case "pretty":
		diagfmt.Pretty(out, res.Bag, res.Src, ro.pretty)
	case "short":
		diagfmt.Short(out, res.Bag, ro.pretty.PathMode, ro.pretty.BaseDir)
	case "raw":
		diagfmt.Raw(out, res.Bag)
	case "json":
		// Каталожный режим собирает общий JSON сам; сюда попадает только
		// одиночный файл.
		if err := diagfmt.JSON(out, res.Bag, ro.json); err != nil {
			fmt.Fprintf(errOut, "failed to format diagnostics: %v\n", err)
			return 1
		}
	}

	if ro.showTimings {
		printPassTimings(errOut, res.Path, res.Timing)
	}

	if res.Bag.HasErrors() {
		return 1
	}
	if ro.warningsAsErrors && res.Bag.HasWarnings() {
		return 1
	}
	return 0
}

// dropWarnings returns a copy of bag without warning-level entries,
// preserving order.
func dropWarnings(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			out.Add(d)
		}
	}
	return out
}
