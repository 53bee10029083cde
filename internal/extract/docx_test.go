package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, paragraphs []string) *bytes.Reader {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func TestExtractDOCX_GroupsParagraphs(t *testing.T) {
	paragraphs := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("Paragraph %d", i))
	}
	r := buildDOCX(t, paragraphs)

	segments, err := Extract(r, r.Size(), "report.docx")
	require.NoError(t, err)
	require.Len(t, segments, 2)
	require.Equal(t, 1, segments[0].Locator)
	require.Equal(t, 2, segments[1].Locator)
	require.Contains(t, segments[0].Text, "Paragraph 1")
	require.Contains(t, segments[0].Text, "Paragraph 10")
	require.Equal(t, "Paragraph 11\nParagraph 12", segments[1].Text)
}

func TestExtractDOCX_SkipsEmptyParagraphs(t *testing.T) {
	r := buildDOCX(t, []string{"First", "", "   ", "Second"})

	segments, err := Extract(r, r.Size(), "report.docx")
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.Equal(t, "First\nSecond", segments[0].Text)
}

func TestExtractDOCX_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	r := bytes.NewReader(buf.Bytes())

	_, err = Extract(r, r.Size(), "broken.docx")
	require.Error(t, err)
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	r := bytes.NewReader([]byte("plain text"))
	_, err := Extract(r, r.Size(), "notes.txt")
	require.Error(t, err)
}

func TestSupported(t *testing.T) {
	require.True(t, Supported("a.pdf"))
	require.True(t, Supported("A.DOCX"))
	require.True(t, Supported("sheet.xlsx"))
	require.False(t, Supported("notes.txt"))
	require.False(t, Supported("noext"))
}
