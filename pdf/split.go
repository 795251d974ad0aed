package pdf

import (
	"fmt"
	"iter"
)

// SplitName returns the file name of the i-th (1-based) page produced by Split.
func SplitName(baseName string, pageNum int) string {
	return fmt.Sprintf("%s_page_%d.pdf", baseName, pageNum)
}

// Split yields one single-page document per page of src, named
// "{baseName}_page_{n}.pdf". Each document is built only when the
// consumer asks for it.
func Split(src *Document, baseName string) iter.Seq2[string, *Document] {
	return func(yield func(string, *Document) bool) {
		for i, page := range src.Pages {
			doc := &Document{
				Name:  SplitName(baseName, i+1),
				Pages: []Page{page},
			}
			if !yield(doc.Name, doc) {
				return
			}
		}
	}
}
