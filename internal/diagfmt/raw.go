package diagfmt

import (
	"fmt"
	"io"

	"ferrite/internal/diag"
)

// Raw replays diagnostics in the exact line shape the toolchain emitted
// them in, paths included. Useful for piping into tools that already
// understand rustc output.
func Raw(w io.Writer, bag *diag.Bag) {
	for _, d := range bag.Items() {
		fmt.Fprintln(w, d.String())
	}
}
