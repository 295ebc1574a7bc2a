package diag

import "fmt"

// Diagnostic is one structured record extracted from a single line of
// toolchain output. It exists only for the duration of one lint pass.
type Diagnostic struct {
	// Path is the file path exactly as the toolchain reported it.
	// It may be relative to the build working directory.
	Path string
	// Line and Col are 1-based and locate the diagnostic in the file.
	Line uint32
	Col  uint32
	// EndLine and EndCol are the span half of the duplicated position
	// pair the toolchain emits after the primary one. They are captured
	// but play no part in attribution.
	EndLine uint32
	EndCol  uint32

	Severity Severity
	Message  string
}

// String renders the diagnostic back into the wire shape it was parsed from.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %d:%d %s: %s",
		d.Path, d.Line, d.Col, d.EndLine, d.EndCol, d.Severity, d.Message)
}
