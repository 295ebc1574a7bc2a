package diagfmt

import (
	"fmt"
	"io"

	"ferrite/internal/diag"
)

// Short prints one diagnostic per line in grep-friendly form:
//
//	path:line:col: severity: message
func Short(w io.Writer, bag *diag.Bag, mode PathMode, baseDir string) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			displayPath(d.Path, mode, baseDir), d.Line, d.Col, d.Severity, d.Message)
	}
}
