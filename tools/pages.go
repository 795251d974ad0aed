package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"pdf_pages/pdf"
)

type PageInfoQuery struct {
	Path string `json:"path" jsonschema:"absolute path to the PDF file"`
}

type PageInfoResponse struct {
	Path       string `json:"path"`
	TotalPages int    `json:"total_pages"`
}

// PageQuery selects pages of one document. Pages is a comma separated list
// of 1-based page numbers, or "all".
type PageQuery struct {
	Path       string `json:"path" jsonschema:"absolute path to the source PDF file"`
	Pages      string `json:"pages" jsonschema:"comma separated 1-based page numbers, or all"`
	Angle      int    `json:"angle,omitempty" jsonschema:"clockwise rotation in degrees: 90, 180 or 270 (pdf-rotate only)"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"where to write the result; defaults to the source name with a suffix"`
}

type MergeQuery struct {
	Path       string   `json:"path" jsonschema:"absolute path to the base PDF file"`
	Files      []string `json:"files" jsonschema:"PDF files appended after the base, in order"`
	OutputPath string   `json:"output_path,omitempty" jsonschema:"where to write the result; defaults to {name}_merged.pdf"`
}

type SplitQuery struct {
	Path string `json:"path" jsonschema:"absolute path to the PDF file"`
}

type PageResponse struct {
	OutputPath    string `json:"output_path,omitempty"`
	TotalPages    int    `json:"total_pages"`
	SelectedPages []int  `json:"selected_pages,omitempty"`
	Warning       string `json:"warning,omitempty"`
}

type SplitResponse struct {
	Files []string `json:"files"`
}

func tool[T any](name, description string) *mcp.Tool {
	inputschema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputschema,
	}
}

func PageInfoTool() *mcp.Tool {
	return tool[PageInfoQuery]("pdf-info", "Report the number of pages of a PDF file")
}

func ExtractTool() *mcp.Tool {
	return tool[PageQuery]("pdf-extract", "Copy the selected pages, in the order given, into a new PDF file")
}

func RotateTool() *mcp.Tool {
	return tool[PageQuery]("pdf-rotate", "Write a copy of a PDF with the selected pages rotated clockwise. Unsupported angles rotate nothing.")
}

func DeleteTool() *mcp.Tool {
	return tool[PageQuery]("pdf-delete", "Write a copy of a PDF without the selected pages")
}

func MergeTool() *mcp.Tool {
	return tool[MergeQuery]("pdf-merge", "Append whole PDF files, in order, after a base PDF")
}

func SplitTool() *mcp.Tool {
	return tool[SplitQuery]("pdf-split", "Write every page of a PDF as {name}_page_{n}.pdf next to the source file")
}

// Handlers implements the page tools on top of a codec.
type Handlers struct {
	Codec pdf.Codec
	Log   logrus.FieldLogger
}

func (h *Handlers) open(path string) (*pdf.Document, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	return pdf.OpenFile(h.Codec, path)
}

func (h *Handlers) save(doc *pdf.Document, query PageQuery, modifier string, resp *PageResponse) (*mcp.CallToolResult, *PageResponse, error) {
	target := query.OutputPath
	if target == "" {
		target = pdf.SuggestName(query.Path, modifier)
	}
	if doc.PageCount() == 0 {
		return nil, nil, fmt.Errorf("nothing to write to %s: %w", target, pdf.ErrEmptyDocument)
	}

	path, err := pdf.SaveFile(h.Codec, doc, target)
	if err != nil {
		return nil, nil, err
	}
	h.Log.WithFields(logrus.Fields{
		"file":  path,
		"pages": doc.PageCount(),
	}).Info("Document written")

	resp.OutputPath = path
	resp.TotalPages = doc.PageCount()
	return textResult(fmt.Sprintf("Wrote %d pages to %s", resp.TotalPages, path)), resp, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (h *Handlers) PageInfo(ctx context.Context, req *mcp.CallToolRequest, query PageInfoQuery) (*mcp.CallToolResult, *PageInfoResponse, error) {
	doc, err := h.open(query.Path)
	if err != nil {
		return nil, nil, err
	}
	resp := &PageInfoResponse{Path: query.Path, TotalPages: doc.PageCount()}
	return textResult(fmt.Sprintf("%s has %d pages", query.Path, resp.TotalPages)), resp, nil
}

func (h *Handlers) Extract(ctx context.Context, req *mcp.CallToolRequest, query PageQuery) (*mcp.CallToolResult, *PageResponse, error) {
	h.Log.Info("pdf-extract tool called")
	doc, err := h.open(query.Path)
	if err != nil {
		return nil, nil, err
	}
	sel := pdf.ParseSelection(query.Pages, doc.PageCount())
	return h.save(pdf.Extract(doc, sel), query, pdf.SuffixSelected, &PageResponse{SelectedPages: sel.PageNumbers()})
}

func (h *Handlers) Rotate(ctx context.Context, req *mcp.CallToolRequest, query PageQuery) (*mcp.CallToolResult, *PageResponse, error) {
	h.Log.Info("pdf-rotate tool called")
	doc, err := h.open(query.Path)
	if err != nil {
		return nil, nil, err
	}
	sel := pdf.ParseSelection(query.Pages, doc.PageCount())
	resp := &PageResponse{SelectedPages: sel.PageNumbers()}
	angle, err := pdf.NormalizeAngle(query.Angle)
	if err != nil {
		resp.Warning = err.Error()
	}
	return h.save(pdf.Rotate(doc, sel, angle), query, pdf.SuffixRotated, resp)
}

func (h *Handlers) Delete(ctx context.Context, req *mcp.CallToolRequest, query PageQuery) (*mcp.CallToolResult, *PageResponse, error) {
	h.Log.Info("pdf-delete tool called")
	doc, err := h.open(query.Path)
	if err != nil {
		return nil, nil, err
	}
	sel := pdf.ParseSelection(query.Pages, doc.PageCount())
	return h.save(pdf.RemovePages(doc, sel), query, pdf.SuffixCleared, &PageResponse{SelectedPages: sel.PageNumbers()})
}

func (h *Handlers) Merge(ctx context.Context, req *mcp.CallToolRequest, query MergeQuery) (*mcp.CallToolResult, *PageResponse, error) {
	h.Log.WithField("files", len(query.Files)).Info("pdf-merge tool called")
	doc, err := h.open(query.Path)
	if err != nil {
		return nil, nil, err
	}
	additional := make([]*pdf.Document, 0, len(query.Files))
	for _, path := range query.Files {
		other, err := h.open(path)
		if err != nil {
			return nil, nil, err
		}
		additional = append(additional, other)
	}
	pageQuery := PageQuery{Path: query.Path, OutputPath: query.OutputPath}
	return h.save(pdf.Merge(doc, additional...), pageQuery, pdf.SuffixMerged, &PageResponse{})
}

func (h *Handlers) Split(ctx context.Context, req *mcp.CallToolRequest, query SplitQuery) (*mcp.CallToolResult, *SplitResponse, error) {
	h.Log.Info("pdf-split tool called")
	doc, err := h.open(query.Path)
	if err != nil {
		return nil, nil, err
	}
	files, err := pdf.SaveSplit(h.Codec, doc, pdf.SplitBase(query.Path))
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("Wrote %d files", len(files))), &SplitResponse{Files: files}, nil
}
