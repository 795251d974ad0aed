package pdf

// Rotate builds a new document with the same pages as src in source order,
// turning the selected pages clockwise by angle.
func Rotate(src *Document, sel Selection, angle Angle) *Document {
	if !angle.Valid() {
		angle = Angle0
	}
	selected := sel.Set()
	out := src.derive(len(src.Pages))
	for i, page := range src.Pages {
		if selected[i] {
			page = page.Rotate(angle)
		}
		out.Pages = append(out.Pages, page)
	}
	return out
}
