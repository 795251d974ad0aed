package pdf

// RemovePages builds a new document from src without the selected pages.
// Selecting every page yields an empty document.
func RemovePages(src *Document, sel Selection) *Document {
	selected := sel.Set()
	out := src.derive(len(src.Pages))
	for i, page := range src.Pages {
		if selected[i] {
			continue
		}
		out.Pages = append(out.Pages, page)
	}
	return out
}
