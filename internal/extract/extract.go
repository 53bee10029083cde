// Package extract turns uploaded engineering documents into ordered
// (locator, text) segments. A locator is a 1-based position inside the source
// file: page number for PDF, paragraph-group index for DOCX, sheet index for
// spreadsheets. Segments with no text are skipped, so locators need not be
// contiguous.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type Segment struct {
	Locator int
	Text    string
}

// File is the minimal handle extractors need. *os.File, multipart.File and
// *bytes.Reader all satisfy it.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
}

type Extractor func(f File, size int64) ([]Segment, error)

var registry = map[string]Extractor{}

func Register(ext string, fn Extractor) {
	key := strings.ToLower(strings.TrimSpace(ext))
	if key == "" || fn == nil {
		return
	}
	registry[key] = fn
}

// Supported reports whether the file name has a registered extractor.
func Supported(fileName string) bool {
	_, ok := registry[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

func Extract(f File, size int64, fileName string) ([]Segment, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	fn := registry[ext]
	if fn == nil {
		return nil, fmt.Errorf("unsupported document type: %s", ext)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return fn(f, size)
}
