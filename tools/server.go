package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"pdf_pages/pdf"
)

// CreateServer registers the page tools on a new MCP server.
func CreateServer(codec pdf.Codec, log logrus.FieldLogger, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "pdf_pages", Version: version}, nil)

	h := &Handlers{Codec: codec, Log: log}
	mcp.AddTool(server, PageInfoTool(), h.PageInfo)
	mcp.AddTool(server, ExtractTool(), h.Extract)
	mcp.AddTool(server, RotateTool(), h.Rotate)
	mcp.AddTool(server, DeleteTool(), h.Delete)
	mcp.AddTool(server, MergeTool(), h.Merge)
	mcp.AddTool(server, SplitTool(), h.Split)

	return server
}
