package diagfmt

import (
	"bytes"
	"path/filepath"
	"testing"

	"ferrite/internal/diag"
)

func TestShortFormat(t *testing.T) {
	bag := bagOf(t,
		diag.Diagnostic{Path: "/work/src/main.rs", Line: 3, Col: 5, EndLine: 3, EndCol: 9, Severity: diag.SevError, Message: "mismatched types"},
		diag.Diagnostic{Path: "/work/src/main.rs", Line: 7, Col: 1, EndLine: 7, EndCol: 2, Severity: diag.SevWarning, Message: "unused import"},
	)

	var buf bytes.Buffer
	Short(&buf, bag, PathModeAuto, "")

	want := "/work/src/main.rs:3:5: error: mismatched types\n" +
		"/work/src/main.rs:7:1: warning: unused import\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShortPathModes(t *testing.T) {
	d := diag.Diagnostic{Path: "/work/src/main.rs", Line: 1, Col: 1, EndLine: 1, EndCol: 1, Severity: diag.SevError, Message: "x"}

	tests := []struct {
		name    string
		mode    PathMode
		baseDir string
		want    string
	}{
		{"auto keeps attributed path without base", PathModeAuto, "", "/work/src/main.rs:1:1: error: x\n"},
		{"auto relativizes under base", PathModeAuto, "/work", filepath.Join("src", "main.rs") + ":1:1: error: x\n"},
		{"relative outside base keeps path", PathModeRelative, "/elsewhere", "/work/src/main.rs:1:1: error: x\n"},
		{"basename", PathModeBasename, "", "main.rs:1:1: error: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Short(&buf, bagOf(t, d), tt.mode, tt.baseDir)
			if got := buf.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRawMatchesWireFormat(t *testing.T) {
	d := diag.Diagnostic{Path: "lib.rs", Line: 2, Col: 4, EndLine: 2, EndCol: 9, Severity: diag.SevFatal, Message: "aborting"}

	var buf bytes.Buffer
	Raw(&buf, bagOf(t, d))

	want := "lib.rs:2:4: 2:9 fatal error: aborting\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
