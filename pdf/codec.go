package pdf

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// pdfSource is a document decoded by pdfcpu.
type pdfSource struct {
	name string
	ctx  *model.Context
}

func (s *pdfSource) Name() string   { return s.name }
func (s *pdfSource) PageCount() int { return s.ctx.PageCount }

// PdfCodec is the Codec backed by pdfcpu. pdfcpu records the running command
// in its configuration, so every call gets a fresh one.
type PdfCodec struct {
	log logrus.FieldLogger
}

// NewPdfCodec creates a codec with pdfcpu's default configuration.
func NewPdfCodec(log logrus.FieldLogger) *PdfCodec {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PdfCodec{log: log}
}

// Decode reads and validates a PDF.
func (c *PdfCodec) Decode(name string, rs io.ReadSeeker) (*Document, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, name, err)
	}
	c.log.WithFields(logrus.Fields{
		"file":  name,
		"pages": ctx.PageCount,
	}).Debug("PDF decoded")
	return NewDocument(&pdfSource{name: name, ctx: ctx}), nil
}

// pageRun is a maximal stretch of consecutive pages sharing one source.
type pageRun struct {
	src   *pdfSource
	pages []Page
}

// Encode writes doc as a single PDF. Consecutive pages from the same source
// are cut out together; runs from different sources are merged afterwards.
func (c *PdfCodec) Encode(w io.Writer, doc *Document) error {
	if doc.PageCount() == 0 {
		return ErrEmptyDocument
	}

	runs, err := c.runs(doc)
	if err != nil {
		return err
	}

	if len(runs) == 1 {
		return c.writeRun(w, runs[0])
	}

	parts := make([]io.ReadSeeker, 0, len(runs))
	for _, run := range runs {
		var buf bytes.Buffer
		if err := c.writeRun(&buf, run); err != nil {
			return err
		}
		parts = append(parts, bytes.NewReader(buf.Bytes()))
	}

	c.log.WithField("parts", len(parts)).Debug("Merging page runs")
	if err := api.MergeRaw(parts, w, false, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("merge page runs: %v", err)
	}
	return nil
}

func (c *PdfCodec) runs(doc *Document) ([]pageRun, error) {
	var runs []pageRun
	for _, page := range doc.Pages {
		src, ok := page.Source.(*pdfSource)
		if !ok {
			return nil, fmt.Errorf("%w: page %d", ErrForeignSource, page.Number)
		}
		if n := len(runs); n > 0 && runs[n-1].src == src {
			runs[n-1].pages = append(runs[n-1].pages, page)
			continue
		}
		runs = append(runs, pageRun{src: src, pages: []Page{page}})
	}
	return runs, nil
}

// writeRun extracts the pages of one run, in order, and applies their
// rotations. Rotation is done through api.Rotate, one pass per angle.
func (c *PdfCodec) writeRun(w io.Writer, run pageRun) error {
	pageNrs := make([]int, len(run.pages))
	rotations := make(map[Angle][]string)
	for i, page := range run.pages {
		pageNrs[i] = page.Number
		if page.Rotation != Angle0 {
			// pages are renumbered 1..n in the extracted context
			rotations[page.Rotation] = append(rotations[page.Rotation], strconv.Itoa(i+1))
		}
	}

	ctx, err := pdfcpu.ExtractPages(run.src.ctx, pageNrs, false)
	if err != nil {
		return fmt.Errorf("extract pages from %s: %v", run.src.name, err)
	}

	if len(rotations) == 0 {
		return api.WriteContext(ctx, w)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return err
	}

	angles := make([]int, 0, len(rotations))
	for a := range rotations {
		angles = append(angles, int(a))
	}
	sort.Ints(angles)

	data := buf.Bytes()
	for _, a := range angles {
		var out bytes.Buffer
		if err := api.Rotate(bytes.NewReader(data), &out, a, rotations[Angle(a)], model.NewDefaultConfiguration()); err != nil {
			return fmt.Errorf("rotate pages by %d: %v", a, err)
		}
		data = out.Bytes()
	}

	_, err = w.Write(data)
	return err
}
