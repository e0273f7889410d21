// Package mcpserver exposes the scanner as MCP tools over stdio so that
// agents can vet SVG content before accepting it.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/report"
	"github.com/Easy-Infra-Ltd/svg-scanner/src/sanitizer"
	"github.com/Easy-Infra-Ltd/svg-scanner/src/scan"
)

const (
	ToolScanSVG   = "scan_svg"
	ToolScanFiles = "scan_files"
)

// Server wraps an MCP server with the scanner tools registered.
type Server struct {
	Server     *mcp.Server
	engine     sanitizer.Engine
	aggregator *scan.Aggregator
	logger     *slog.Logger
}

// SVGResult is the scan_svg tool output: the file result plus the
// sanitized document.
type SVGResult struct {
	Errors    int               `json:"errors"`
	Messages  []sanitizer.Issue `json:"messages"`
	Sanitized string            `json:"sanitized,omitempty"`
}

type scanSVGArgs struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type scanFilesArgs struct {
	Paths []string `json:"paths"`
}

// New creates a Server. version is reported to MCP clients.
func New(engine sanitizer.Engine, aggregator *scan.Aggregator, version string, logger *slog.Logger) *Server {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    "svg-scanner",
			Version: version,
		},
		&mcp.ServerOptions{Logger: logger},
	)
	s := &Server{
		Server:     srv,
		engine:     engine,
		aggregator: aggregator,
		logger:     logger.With("area", "mcp"),
	}
	s.register()
	return s
}

// Run serves MCP over stdio until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting stdio transport")
	return s.Server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) register() {
	s.Server.AddTool(&mcp.Tool{
		Name:        ToolScanSVG,
		Description: "Sanitize an SVG document and list every construct that was removed.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":    map[string]any{"type": "string", "description": "label used in messages"},
				"content": map[string]any{"type": "string", "description": "SVG document"},
			},
			"required": []string{"content"},
		},
	}, s.handleScanSVG)

	s.Server.AddTool(&mcp.Tool{
		Name:        ToolScanFiles,
		Description: "Scan SVG files on the server's filesystem and return the aggregated report.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"paths": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []string{"paths"},
		},
	}, s.handleScanFiles)
}

func (s *Server) handleScanSVG(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args scanSVGArgs
	if err := decodeArgs(req, &args); err != nil {
		return errorResult(err.Error()), nil
	}
	if args.Name == "" {
		args.Name = "input.svg"
	}

	res := s.engine.Sanitize([]byte(args.Content))
	fr := scan.Classify(args.Name, res)
	out := SVGResult{Errors: fr.Errors, Messages: fr.Messages}
	if !res.Failed() {
		out.Sanitized = string(res.Content)
	}
	s.logger.Debug("scanned content", "name", args.Name, "errors", fr.Errors)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, errors.Wrap(err, "encoding result")
	}
	return textResult(buf.String()), nil
}

func (s *Server) handleScanFiles(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args scanFilesArgs
	if err := decodeArgs(req, &args); err != nil {
		return errorResult(err.Error()), nil
	}

	out, _, err := report.Emit(s.aggregator.RunAll(args.Paths))
	if err != nil {
		return nil, err
	}
	return textResult(string(out)), nil
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return errors.Wrap(err, "invalid arguments")
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
