package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ferrite/internal/diag"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag := bagOf(t,
		diag.Diagnostic{Path: "/p/a.rs", Line: 1, Col: 2, EndLine: 1, EndCol: 5, Severity: diag.SevError, Message: "first"},
		diag.Diagnostic{Path: "/p/a.rs", Line: 9, Col: 1, EndLine: 10, EndCol: 3, Severity: diag.SevWarning, Message: "second"},
	)

	out := BuildDiagnosticsOutput(bag, JSONOpts{})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, len = %d, want 2", out.Count, len(out.Diagnostics))
	}

	first := out.Diagnostics[0]
	if first.Severity != "error" || first.Message != "first" {
		t.Fatalf("first = %+v", first)
	}
	loc := first.Location
	if loc.File != "/p/a.rs" || loc.StartLine != 1 || loc.StartCol != 2 || loc.EndLine != 1 || loc.EndCol != 5 {
		t.Fatalf("location = %+v", loc)
	}
}

func TestBuildDiagnosticsOutputMax(t *testing.T) {
	bag := bagOf(t,
		diag.Diagnostic{Path: "a.rs", Line: 1, Col: 1, Severity: diag.SevError, Message: "one"},
		diag.Diagnostic{Path: "a.rs", Line: 2, Col: 1, Severity: diag.SevError, Message: "two"},
		diag.Diagnostic{Path: "a.rs", Line: 3, Col: 1, Severity: diag.SevError, Message: "three"},
	)

	out := BuildDiagnosticsOutput(bag, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, len = %d, want 2", out.Count, len(out.Diagnostics))
	}
	if out.Diagnostics[1].Message != "two" {
		t.Fatalf("truncation must keep compiler order, got %q", out.Diagnostics[1].Message)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	bag := bagOf(t, diag.Diagnostic{
		Path: "/p/b.rs", Line: 4, Col: 8, EndLine: 4, EndCol: 12,
		Severity: diag.SevFatal, Message: "aborting due to previous error",
	})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Count != 1 {
		t.Fatalf("count = %d, want 1", decoded.Count)
	}
	d := decoded.Diagnostics[0]
	if d.Severity != "fatal error" {
		t.Fatalf("severity = %q", d.Severity)
	}
	if d.Location.File != "b.rs" {
		t.Fatalf("file = %q, want basename", d.Location.File)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(0), JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Count != 0 || len(decoded.Diagnostics) != 0 {
		t.Fatalf("want empty output, got %+v", decoded)
	}
}
