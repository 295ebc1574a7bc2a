package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

// tabStop expands tabs in context lines so carets stay aligned.
const tabStop = "    "

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает:
//
//	<severity>: <message>
//	  --> <path>:<line>:<col>
//	   |
//	 N | <строка исходника>
//	   |     ^^^^
//
// src даёт строки контекста; при nil блок контекста опускается.
func Pretty(w io.Writer, bag *diag.Bag, src *source.File, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, src, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, src *source.File, opts PrettyOpts) {
	sev := severityColor(d.Severity)
	accent := color.New(color.FgBlue, color.Bold)
	applyColor(sev, opts.Color)
	applyColor(accent, opts.Color)

	fmt.Fprintf(w, "%s: %s\n", sev.Sprint(d.Severity.String()), d.Message)

	path := displayPath(d.Path, opts.PathMode, opts.BaseDir)
	fmt.Fprintf(w, "  %s %s:%d:%d\n", accent.Sprint("-->"), path, d.Line, d.Col)

	if opts.Context && src != nil {
		writeContext(w, d, src, opts, sev, accent)
	}
	fmt.Fprintln(w)
}

// writeContext prints the gutter block with the offending line and a
// caret underline sized to the reported span.
func writeContext(w io.Writer, d diag.Diagnostic, src *source.File, opts PrettyOpts, sev, accent *color.Color) {
	raw := src.Line(d.Line)
	if raw == "" {
		return
	}

	rawRunes := []rune(raw)
	col := clamp(int(d.Col), 1, len(rawRunes)+1)

	// Ширина отступа до каретки: табы раскрываем и в префиксе, и в
	// отображаемой строке, иначе подчёркивание съезжает.
	prefix := strings.ReplaceAll(string(rawRunes[:col-1]), "\t", tabStop)
	padWidth := runewidth.StringWidth(prefix)

	span := 1
	switch {
	case d.EndLine == d.Line && int(d.EndCol) > col:
		endCol := clamp(int(d.EndCol), col+1, len(rawRunes)+1)
		span = runewidth.StringWidth(string(rawRunes[col-1 : endCol-1]))
	case d.EndLine > d.Line:
		// Многострочный span: подчёркиваем до конца строки.
		span = runewidth.StringWidth(string(rawRunes[col-1:]))
	}
	if span < 1 {
		span = 1
	}

	display := strings.ReplaceAll(raw, "\t", tabStop)
	if opts.Width > 0 {
		display = runewidth.Truncate(display, opts.Width, "…")
	}

	lineNo := strconv.FormatUint(uint64(d.Line), 10)
	gut := len(lineNo)
	fmt.Fprintf(w, " %*s %s\n", gut, "", accent.Sprint("|"))
	fmt.Fprintf(w, " %s %s %s\n", accent.Sprint(lineNo), accent.Sprint("|"), display)
	if opts.Width > 0 && padWidth >= opts.Width {
		// Каретка указывает за обрезанный край - строку с ней опускаем.
		return
	}
	fmt.Fprintf(w, " %*s %s %s%s\n", gut, "", accent.Sprint("|"), strings.Repeat(" ", padWidth), sev.Sprint(strings.Repeat("^", span)))
}

func severityColor(s diag.Severity) *color.Color {
	if s.IsError() {
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgYellow, color.Bold)
}

func applyColor(c *color.Color, on bool) {
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
