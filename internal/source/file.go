package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// utf8BOM is stripped from content on load: the toolchain reports
// columns relative to the text after it, and the scratch copy must
// match that accounting.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// FileFlags encodes metadata about a source file.
type FileFlags uint8

const (
	// FileVirtual indicates the content was supplied by the caller
	// (editor buffer, stdin) rather than read from disk.
	FileVirtual FileFlags = 1 << iota
)

// File is the file under edit: identity plus content, fixed for the
// duration of one lint pass.
type File struct {
	// Path is the path exactly as the caller provided it.
	Path string
	// Abs is the absolute (but not symlink-resolved) form of Path.
	Abs string
	// Canon is the canonical identity: absolute, symlinks resolved, NFC.
	Canon string
	// Dir is the canonical containing directory; upward searches start here.
	Dir string

	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// Load reads the file under edit and fixes its identity for the pass.
// When content is non-nil it is used verbatim and the file is marked
// virtual; the path must still name the on-disk file the surviving
// diagnostics will be attributed to.
func Load(path string, content []byte) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	flags := FileFlags(0)
	if content == nil {
		// #nosec G304 -- path is provided by the caller
		content, err = os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else {
		flags |= FileVirtual
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	canon, err := Canonicalize(abs)
	if err != nil {
		// Файл может ещё не существовать на диске (несохранённый буфер):
		// identity падает обратно на очищенный абсолютный путь.
		canon = norm.NFC.String(filepath.Clean(abs))
	}

	return &File{
		Path:    path,
		Abs:     abs,
		Canon:   canon,
		Dir:     filepath.Dir(canon),
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	}, nil
}

// Virtual reports whether the content came from the caller, not disk.
func (f *File) Virtual() bool {
	return f.Flags&FileVirtual != 0
}

// Line возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end, lenLineIdx, lenContent uint32
	var err error
	lenLineIdx, err = safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err = safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return strings.TrimSuffix(string(f.Content[start:end]), "\r")
}
