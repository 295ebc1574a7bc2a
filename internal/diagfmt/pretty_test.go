package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

func bagOf(t *testing.T, diags ...diag.Diagnostic) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(0)
	for _, d := range diags {
		bag.Add(d)
	}
	return bag
}

func virtualFile(t *testing.T, content string) *source.File {
	t.Helper()
	src, err := source.Load("main.rs", []byte(content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return src
}

func TestPrettyPlain(t *testing.T) {
	src := virtualFile(t, "fn main() {\n    let x = 1;\n}\n")
	bag := bagOf(t, diag.Diagnostic{
		Path: "main.rs", Line: 2, Col: 9, EndLine: 2, EndCol: 10,
		Severity: diag.SevWarning, Message: "unused variable: `x`",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, src, PrettyOpts{Context: true})

	want := "warning: unused variable: `x`\n" +
		"  --> main.rs:2:9\n" +
		"   |\n" +
		" 2 |     let x = 1;\n" +
		"   |         ^\n" +
		"\n"
	if got := buf.String(); got != want {
		t.Fatalf("output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyTabAlignment(t *testing.T) {
	src := virtualFile(t, "\tlet x = 1;\n")
	bag := bagOf(t, diag.Diagnostic{
		Path: "main.rs", Line: 1, Col: 6, EndLine: 1, EndCol: 7,
		Severity: diag.SevError, Message: "mismatched types",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, src, PrettyOpts{Context: true})

	out := buf.String()
	// Tab раскрыт и в строке, и в отступе каретки.
	if !strings.Contains(out, " 1 |     let x = 1;\n") {
		t.Fatalf("tab not expanded in context line:\n%s", out)
	}
	if !strings.Contains(out, "   |         ^\n") {
		t.Fatalf("caret misaligned after tab expansion:\n%s", out)
	}
}

func TestPrettySpanUnderline(t *testing.T) {
	src := virtualFile(t, "let count = undeclared;\n")
	bag := bagOf(t, diag.Diagnostic{
		Path: "main.rs", Line: 1, Col: 13, EndLine: 1, EndCol: 23,
		Severity: diag.SevError, Message: "cannot find value `undeclared`",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, src, PrettyOpts{Context: true})

	if !strings.Contains(buf.String(), "^^^^^^^^^^") {
		t.Fatalf("span underline missing:\n%s", buf.String())
	}
}

func TestPrettyMultiLineSpan(t *testing.T) {
	src := virtualFile(t, "foo(bar,\n    baz);\n")
	bag := bagOf(t, diag.Diagnostic{
		Path: "main.rs", Line: 1, Col: 5, EndLine: 2, EndCol: 8,
		Severity: diag.SevError, Message: "this function takes 1 argument",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, src, PrettyOpts{Context: true})

	// Подчёркивание идёт от колонки до конца первой строки.
	if !strings.Contains(buf.String(), "   |     ^^^^\n") {
		t.Fatalf("multi-line span underline wrong:\n%s", buf.String())
	}
}

func TestPrettyNoContextForUnknownLine(t *testing.T) {
	src := virtualFile(t, "fn main() {}\n")
	bag := bagOf(t, diag.Diagnostic{
		Path: "main.rs", Line: 42, Col: 1, EndLine: 42, EndCol: 1,
		Severity: diag.SevError, Message: "beyond the file",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, src, PrettyOpts{Context: true})

	want := "error: beyond the file\n  --> main.rs:42:1\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettyWidthDropsOffscreenCaret(t *testing.T) {
	line := "    let value_with_a_really_long_name = compute_everything();\n"
	src := virtualFile(t, line)
	bag := bagOf(t, diag.Diagnostic{
		Path: "main.rs", Line: 1, Col: 43, EndLine: 1, EndCol: 62,
		Severity: diag.SevError, Message: "cannot find function",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, src, PrettyOpts{Context: true, Width: 20})

	out := buf.String()
	if strings.Contains(out, "^") {
		t.Fatalf("caret should be dropped when it falls past the truncated line:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("truncated line should end with ellipsis:\n%s", out)
	}
}

func TestPrettyColorEscapes(t *testing.T) {
	src := virtualFile(t, "fn main() {}\n")
	bag := bagOf(t, diag.Diagnostic{
		Path: "main.rs", Line: 1, Col: 1, EndLine: 1, EndCol: 3,
		Severity: diag.SevError, Message: "boom",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, src, PrettyOpts{Context: true, Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("expected ANSI escapes with Color enabled")
	}

	buf.Reset()
	Pretty(&buf, bag, src, PrettyOpts{Context: true, Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("expected no ANSI escapes with Color disabled")
	}
}

func TestPrettyNilSource(t *testing.T) {
	bag := bagOf(t, diag.Diagnostic{
		Path: "lib.rs", Line: 3, Col: 7, EndLine: 3, EndCol: 8,
		Severity: diag.SevFatal, Message: "aborting due to previous error",
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{Context: true})

	want := "fatal error: aborting due to previous error\n  --> lib.rs:3:7\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
