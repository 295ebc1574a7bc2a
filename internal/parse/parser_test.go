package parse

import (
	"strings"
	"testing"

	"ferrite/internal/diag"
)

func TestLineParsesErrorDiagnostic(t *testing.T) {
	d, ok := Line("src/foo.rs:3:5: 3:10 error: mismatched types")
	if !ok {
		t.Fatalf("expected a diagnostic")
	}
	if d.Path != "src/foo.rs" {
		t.Errorf("Path = %q, want %q", d.Path, "src/foo.rs")
	}
	if d.Line != 3 || d.Col != 5 {
		t.Errorf("position = %d:%d, want 3:5", d.Line, d.Col)
	}
	if d.EndLine != 3 || d.EndCol != 10 {
		t.Errorf("span = %d:%d, want 3:10", d.EndLine, d.EndCol)
	}
	if d.Severity != diag.SevError {
		t.Errorf("Severity = %v, want error", d.Severity)
	}
	if d.Message != "mismatched types" {
		t.Errorf("Message = %q, want %q", d.Message, "mismatched types")
	}
}

func TestLineSeverities(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want diag.Severity
	}{
		{"warning", "lib.rs:1:1: 1:5 warning: unused variable: `x`", diag.SevWarning},
		{"error", "lib.rs:1:1: 1:5 error: cannot find value", diag.SevError},
		{"fatal error", "lib.rs:1:1: 1:5 fatal error: internal compiler error", diag.SevFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Line(tt.raw)
			if !ok {
				t.Fatalf("Line(%q) produced no diagnostic", tt.raw)
			}
			if d.Severity != tt.want {
				t.Fatalf("Severity = %v, want %v", d.Severity, tt.want)
			}
		})
	}
}

func TestLineSkipsNonDiagnostics(t *testing.T) {
	lines := []string{
		"",
		"   Compiling foo v0.1.0 (/proj)",
		"error: aborting due to previous error",
		"src/foo.rs:3:5: 3:10 note: consider borrowing here",
		"src/foo.rs:3:5: 3:10 Error: case matters",
		"warning: unused import",
		"foo.rs:3: 3:10 error: missing column",
		"random build chatter without any structure",
	}

	for _, raw := range lines {
		if d, ok := Line(raw); ok {
			t.Errorf("Line(%q) unexpectedly parsed: %+v", raw, d)
		}
	}
}

func TestLineSkipsBadPositions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"zero line", "foo.rs:0:5: 3:10 error: boom"},
		{"zero col", "foo.rs:3:0: 3:10 error: boom"},
		{"line overflow", "foo.rs:99999999999999999999:5: 3:10 error: boom"},
		{"col beyond uint32", "foo.rs:3:4294967296: 3:10 error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Line(tt.raw); ok {
				t.Fatalf("Line(%q) must be skipped", tt.raw)
			}
		})
	}
}

func TestLinePathWithColons(t *testing.T) {
	d, ok := Line(`C:\proj\foo.rs:3:5: 3:10 error: boom`)
	if !ok {
		t.Fatalf("expected a diagnostic")
	}
	if d.Path != `C:\proj\foo.rs` {
		t.Fatalf("Path = %q, want %q", d.Path, `C:\proj\foo.rs`)
	}
}

func TestLineMessageWithColons(t *testing.T) {
	d, ok := Line("foo.rs:1:1: 1:2 error: expected `i32`: found `&str`")
	if !ok {
		t.Fatalf("expected a diagnostic")
	}
	if d.Message != "expected `i32`: found `&str`" {
		t.Fatalf("Message = %q", d.Message)
	}
}

func TestLineTrimsCarriageReturn(t *testing.T) {
	d, ok := Line("foo.rs:1:1: 1:2 warning: unused\r")
	if !ok {
		t.Fatalf("expected a diagnostic")
	}
	if strings.HasSuffix(d.Message, "\r") {
		t.Fatalf("Message kept the carriage return: %q", d.Message)
	}
}

func TestOutputPreservesOrder(t *testing.T) {
	raw := strings.Join([]string{
		"   Compiling foo v0.1.0 (/proj)",
		"src/foo.rs:9:1: 9:4 warning: unused function",
		"src/lib.rs:2:5: 2:9 error: cannot find type `Foo`",
		"some chatter in between",
		"src/foo.rs:2:5: 2:9 error: mismatched types",
		"error: aborting due to 2 previous errors",
	}, "\n")

	got := Output([]byte(raw))
	if len(got) != 3 {
		t.Fatalf("parsed %d diagnostics, want 3", len(got))
	}

	wantOrder := []uint32{9, 2, 2}
	for i, d := range got {
		if d.Line != wantOrder[i] {
			t.Fatalf("diagnostic %d has line %d, want %d (order not preserved)", i, d.Line, wantOrder[i])
		}
	}
	if got[0].Path != "src/foo.rs" || got[1].Path != "src/lib.rs" || got[2].Path != "src/foo.rs" {
		t.Fatalf("paths out of order: %+v", got)
	}
}

func TestOutputToleratesTruncation(t *testing.T) {
	raw := "src/foo.rs:3:5: 3:10 error: mismatched types\nsrc/foo.rs:4:1: 4:2 warn"
	got := Output([]byte(raw))
	if len(got) != 1 {
		t.Fatalf("parsed %d diagnostics from truncated output, want 1", len(got))
	}
	if got[0].Line != 3 {
		t.Fatalf("kept the wrong diagnostic: %+v", got[0])
	}
}

func TestOutputCRLF(t *testing.T) {
	raw := "src/foo.rs:3:5: 3:10 error: boom\r\nsrc/foo.rs:7:1: 7:2 warning: dusty\r\n"
	got := Output([]byte(raw))
	if len(got) != 2 {
		t.Fatalf("parsed %d diagnostics, want 2", len(got))
	}
	for _, d := range got {
		if strings.Contains(d.Message, "\r") {
			t.Fatalf("message carries CR: %q", d.Message)
		}
	}
}
