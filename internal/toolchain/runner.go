// Package toolchain owns everything about invoking the Rust toolchain:
// the process runner, per-strategy command construction, scratch-file
// materialization for single-file builds, and executable probing.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes one toolchain command and returns its combined output.
// Output must be returned even when the command fails: diagnostics ride
// stderr, a compile error exits non-zero, and a killed process leaves
// partial output worth parsing.
type Runner interface {
	Run(ctx context.Context, argv []string, dir string, env []string) ([]byte, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	// PrintCommands echoes each invocation to stdout before running it.
	PrintCommands bool
}

func (r ExecRunner) Run(ctx context.Context, argv []string, dir string, env []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	if r.PrintCommands {
		if _, err := fmt.Fprintf(os.Stdout, "%s\n", strings.Join(argv, " ")); err != nil {
			return nil, fmt.Errorf("failed to print command: %w", err)
		}
	}
	// #nosec G204 -- argv is assembled from typed strategy and config data
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	return out, err
}
