package pdf

// Extract builds a new document from the selected pages of src, in selection order.
func Extract(src *Document, sel Selection) *Document {
	out := src.derive(len(sel))
	for _, index := range sel {
		if index < 0 || index >= len(src.Pages) {
			continue
		}
		out.Pages = append(out.Pages, src.Pages[index])
	}
	return out
}
