// Package mcpserver serves the gateway operations as MCP tools using the
// official MCP Go SDK.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/germanamz/llmgate/pkg/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler runs a tool with its raw JSON arguments and returns the text result.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool is one callable operation.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// MCPServer serves tools over the MCP protocol. Every call is logged with
// the tool name, its duration and, on failure, the error kind.
type MCPServer struct {
	server *mcp.Server
	log    *slog.Logger
}

// New creates a new MCPServer with the given name and version. A nil log
// discards call records.
func New(name, version string, log *slog.Logger) *MCPServer {
	if log == nil {
		log = logging.Discard()
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	return &MCPServer{server: server, log: log}
}

// Register adds tools to the server.
func (s *MCPServer) Register(tools ...Tool) {
	for _, t := range tools {
		s.server.AddTool(toSDKTool(t), s.toSDKHandler(t.Name, t.Handler))
	}
}

// Serve reads requests from in and writes responses to out. It blocks until
// ctx is cancelled or the transport closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

func toSDKTool(t Tool) *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// toSDKHandler reports handler errors as IsError results prefixed with the
// tool name, so the client sees the message instead of a protocol failure.
func (s *MCPServer) toSDKHandler(name string, h Handler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = json.RawMessage("{}")
		}

		start := time.Now()
		result, err := h(ctx, args)
		if err != nil {
			s.log.WarnContext(ctx, "tool failed",
				"tool", name,
				"kind", apperr.KindOf(err).String(),
				"duration", time.Since(start),
				logging.Error(err),
			)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: name + ": " + err.Error()}},
				IsError: true,
			}, nil
		}

		s.log.DebugContext(ctx, "tool called", "tool", name, "duration", time.Since(start))

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result}},
		}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
