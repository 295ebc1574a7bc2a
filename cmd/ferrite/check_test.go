package main

import (
	"testing"

	"ferrite/internal/diag"
)

func TestDropWarnings(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Path: "main.rs", Line: 1, Col: 1, Severity: diag.SevWarning, Message: "unused variable"})
	bag.Add(diag.Diagnostic{Path: "main.rs", Line: 2, Col: 5, Severity: diag.SevError, Message: "mismatched types"})
	bag.Add(diag.Diagnostic{Path: "main.rs", Line: 3, Col: 1, Severity: diag.SevWarning, Message: "dead code"})
	bag.Add(diag.Diagnostic{Path: "main.rs", Line: 9, Col: 2, Severity: diag.SevFatal, Message: "aborting"})

	got := dropWarnings(bag)
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	items := got.Items()
	if items[0].Severity != diag.SevError || items[0].Line != 2 {
		t.Fatalf("first kept diagnostic = %+v, want the error at line 2", items[0])
	}
	if items[1].Severity != diag.SevFatal || items[1].Line != 9 {
		t.Fatalf("second kept diagnostic = %+v, want the fatal at line 9", items[1])
	}
	if got.Cap() != bag.Cap() {
		t.Fatalf("Cap = %d, want %d", got.Cap(), bag.Cap())
	}
}

func TestDropWarningsEmpty(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{Path: "lib.rs", Line: 1, Col: 1, Severity: diag.SevWarning, Message: "unused import"})

	got := dropWarnings(bag)
	if got.Len() != 0 {
		t.Fatalf("Len = %d, want 0", got.Len())
	}
	if got.HasErrors() || got.HasWarnings() {
		t.Fatal("filtered bag must report neither errors nor warnings")
	}
}
