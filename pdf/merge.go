package pdf

// Merge appends the pages of every additional document, in order, after the
// pages of base.
func Merge(base *Document, additional ...*Document) *Document {
	total := base.PageCount()
	for _, doc := range additional {
		total += doc.PageCount()
	}

	out := base.derive(total)
	out.Pages = append(out.Pages, base.Pages...)
	for _, doc := range additional {
		if doc == nil {
			continue
		}
		out.Pages = append(out.Pages, doc.Pages...)
	}
	return out
}
