// Package pdftest provides an in-memory Codec for tests. Documents are plain
// text: "%PDF-FAKE:" followed by comma separated page labels. Rotated pages
// are encoded as "label@angle".
package pdftest

import (
	"fmt"
	"io"
	"strings"

	"pdf_pages/pdf"
)

// Prefix starts every fake document.
const Prefix = "%PDF-FAKE:"

// Content returns the encoded form of a document with the given page labels.
func Content(labels ...string) string {
	return Prefix + strings.Join(labels, ",")
}

type source struct {
	name   string
	labels []string
}

func (s *source) Name() string   { return s.name }
func (s *source) PageCount() int { return len(s.labels) }

// Codec is a pdf.Codec over the fake text format.
type Codec struct{}

func (Codec) Decode(name string, rs io.ReadSeeker) (*pdf.Document, error) {
	data, err := io.ReadAll(rs)
	if err != nil {
		return nil, err
	}
	text, ok := strings.CutPrefix(strings.TrimSpace(string(data)), Prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %s", pdf.ErrDecode, name)
	}
	return pdf.NewDocument(&source{name: name, labels: strings.Split(text, ",")}), nil
}

func (Codec) Encode(w io.Writer, doc *pdf.Document) error {
	if doc.PageCount() == 0 {
		return pdf.ErrEmptyDocument
	}
	labels := make([]string, 0, doc.PageCount())
	for _, page := range doc.Pages {
		src, ok := page.Source.(*source)
		if !ok {
			return pdf.ErrForeignSource
		}
		label := src.labels[page.Number-1]
		if page.Rotation != pdf.Angle0 {
			label += fmt.Sprintf("@%d", page.Rotation)
		}
		labels = append(labels, label)
	}
	_, err := io.WriteString(w, Content(labels...))
	return err
}
