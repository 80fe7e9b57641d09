// Package mcp exposes mark rendering as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/pkg/marker"
)

// DictionaryURI is the resource holding the active classification dictionary.
const DictionaryURI = "flexmark://dictionary"

// RenderArgs are the arguments of the render_marks tool.
type RenderArgs struct {
	Markdown string `json:"markdown"`
	Format   string `json:"format,omitempty"`
}

// RenderResponse aligns with the HTTP adapter's response body.
type RenderResponse struct {
	Output string `json:"output" jsonschema_description:"The rendered document"`
	Format string `json:"format" jsonschema_description:"The output format (html or tree)"`
}

// Engine is the part of flexmark.Engine the tools need.
type Engine interface {
	Render(source []byte, format flexmark.Format) (string, error)
	Config() *marker.Config
}

// Server wraps an engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards logs.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine: engine,
		logger: logger,
		mcpServer: server.NewMCPServer("flexmark-mcp", strings.TrimSpace(flexmark.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	renderTool := mcp.NewTool("render_marks",
		mcp.WithDescription("Render Markdown, turning ==text== and =r=text== spans into highlighted marks."),
		mcp.WithString("markdown", mcp.Required(), mcp.Description("The Markdown source")),
		mcp.WithString("format", mcp.Description("Output format: html (default) or tree"), mcp.Enum("html", "tree")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRender))

	s.mcpServer.AddTool(mcp.NewTool("list_colors",
		mcp.WithDescription("List the one-letter classifications and the colour each selects."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(s.engine.Config().Dictionary().String()), nil
	})
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args RenderArgs) (RenderResponse, error) {
	if args.Format == "" {
		args.Format = string(flexmark.FormatHTML)
	}
	format, err := flexmark.ParseFormat(args.Format)
	if err != nil {
		return RenderResponse{}, err
	}
	if format == flexmark.FormatTerm {
		return RenderResponse{}, fmt.Errorf("%w: %q", flexmark.ErrUnknownFormat, args.Format)
	}

	out, err := s.engine.Render([]byte(args.Markdown), format)
	if err != nil {
		s.logger.Error("MCP render failed", "error", err)
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return RenderResponse{Output: out, Format: string(format)}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DictionaryURI, "Classification dictionary",
		mcp.WithMIMEType("application/json"),
	), s.readDictionary)
}

func (s *Server) readDictionary(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.engine.Config().Dictionary())
	if err != nil {
		return nil, fmt.Errorf("failed to encode dictionary: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DictionaryURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
