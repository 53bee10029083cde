package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DOCX paragraphs are grouped this many per segment to avoid a flood of tiny
// chunks.
const docxParagraphsPerSegment = 10

func init() {
	Register(".docx", extractDOCX)
}

func extractDOCX(f File, size int64) ([]Segment, error) {
	zr, err := zip.NewReader(f, size)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	var doc *zip.File
	for _, file := range zr.File {
		if file.Name == "word/document.xml" {
			doc = file
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("docx has no word/document.xml")
	}
	rc, err := doc.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return nil, err
	}

	var segments []Segment
	var buffer []string
	locator := 1
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		segments = append(segments, Segment{Locator: locator, Text: strings.Join(buffer, "\n")})
		locator++
		buffer = nil
	}
	for _, p := range paragraphs {
		buffer = append(buffer, p)
		if len(buffer) >= docxParagraphsPerSegment {
			flush()
		}
	}
	flush()
	return segments, nil
}

// docxParagraphs streams document.xml and returns the non-empty paragraph
// texts: <w:t> runs joined per <w:p> element.
func docxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	inText := false
	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteByte('\t')
				}
			case "br":
				if inParagraph {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				inParagraph = false
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
