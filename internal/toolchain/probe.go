package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Tool identifies one toolchain executable.
type Tool struct {
	Name    string
	Path    string
	Version string // first line of --version output
	Release string // bare version, e.g. "1.79.0"
	Commit  string // short hash, when the line carries one
	Date    string // release date, when the line carries one
}

// versionPattern matches the conventional version line, e.g.
// "rustc 1.79.0 (129f3b996 2024-06-10)"; the parenthesized part is
// optional on custom builds.
var versionPattern = regexp.MustCompile(`^\S+\s+(\S+)(?:\s+\(([0-9a-f]+)\s+(\d{4}-\d{2}-\d{2})\))?`)

// Probe resolves name through PATH and interrogates it with --version.
// name may also be an explicit path, matching config semantics.
func Probe(ctx context.Context, r Runner, name string) (Tool, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return Tool{}, fmt.Errorf("%s not found: %w", name, err)
	}
	out, err := r.Run(ctx, []string{path, "--version"}, "", nil)
	if err != nil {
		return Tool{}, fmt.Errorf("%s --version: %w", name, err)
	}

	t := Tool{
		Name:    strings.TrimSuffix(strings.ToLower(baseName(path)), ".exe"),
		Path:    path,
		Version: firstLine(out),
	}
	if m := versionPattern.FindStringSubmatch(t.Version); m != nil {
		t.Release = m[1]
		t.Commit = m[2]
		t.Date = m[3]
	}
	return t, nil
}

func firstLine(out []byte) string {
	if i := bytes.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return strings.TrimSpace(string(out))
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
