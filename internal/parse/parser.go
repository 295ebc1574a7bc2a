// Package parse turns raw toolchain output into structured diagnostics.
//
// The toolchain's diagnostic grammar is one line per record:
//
//	<path>:<line>:<col>: <endline>:<endcol> <severity>: <message>
//
// Everything else the build prints (progress chatter, notes, summaries)
// does not match the grammar and produces no diagnostic. A malformed or
// truncated line is skipped silently; parsing never fails a lint pass.
package parse

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"ferrite/internal/diag"
)

// linePattern is the diagnostic grammar. The position pair is duplicated
// by the toolchain (position in the file, then the span of the finding);
// both are captured, only the first drives attribution. Severity keywords
// are exact and case-sensitive.
var linePattern = regexp.MustCompile(
	`^(.+?):(\d+):(\d+):\s+(\d+):(\d+)\s+(error|fatal error|warning):\s+(.+)$`,
)

// Line parses one raw output line. The second result is false when the
// line is not a diagnostic or carries an out-of-range position; such
// lines are skipped, never surfaced as errors.
func Line(raw string) (diag.Diagnostic, bool) {
	raw = strings.TrimSuffix(raw, "\r")

	m := linePattern.FindStringSubmatch(raw)
	if m == nil {
		return diag.Diagnostic{}, false
	}

	line, ok := parsePos(m[2])
	if !ok {
		return diag.Diagnostic{}, false
	}
	col, ok := parsePos(m[3])
	if !ok {
		return diag.Diagnostic{}, false
	}
	endLine, ok := parsePos(m[4])
	if !ok {
		return diag.Diagnostic{}, false
	}
	endCol, ok := parsePos(m[5])
	if !ok {
		return diag.Diagnostic{}, false
	}
	sev, ok := diag.ParseSeverity(m[6])
	if !ok {
		return diag.Diagnostic{}, false
	}

	return diag.Diagnostic{
		Path:     m[1],
		Line:     line,
		Col:      col,
		EndLine:  endLine,
		EndCol:   endCol,
		Severity: sev,
		Message:  m[7],
	}, true
}

// Output scans raw toolchain output line by line and returns the parsed
// diagnostics in input order. Partial output from a killed process is
// fine: a truncated final line either parses or is skipped like any
// other non-matching line.
func Output(raw []byte) []diag.Diagnostic {
	var out []diag.Diagnostic

	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if d, ok := Line(sc.Text()); ok {
			out = append(out, d)
		}
	}
	// Scanner errors (an oversized line) stop the scan; the remainder of
	// the output is treated the same as any non-matching text.
	return out
}

// parsePos parses a 1-based position capture. The grammar guarantees
// digits, not that they fit: zero or overflow is a skip for the line.
func parsePos(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	pos, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, false
	}
	return pos, true
}
