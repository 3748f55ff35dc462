package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/deckgen"
	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/styles"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StylesURI is the resource listing the available styles.
const StylesURI = "deckgen://styles"

// OutlineResponse is the structured result of both outline tools.
type OutlineResponse struct {
	Style        string               `json:"style"`
	Presentation *domain.Presentation `json:"presentation"`
}

// GenerateArgs are the generate_outline tool arguments.
type GenerateArgs struct {
	Topic string `json:"topic"`
	Style string `json:"style,omitempty"`
}

// ValidateArgs are the validate_outline tool arguments.
type ValidateArgs struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// Generator defines the pipeline operations exposed as tools.
type Generator interface {
	Generate(ctx context.Context, topic, style string) (*deckgen.Result, error)
	Process(raw, style string) (*domain.Presentation, error)
	Styles() *styles.Catalog
}

// Server wraps a Generator and exposes it as an MCP Server.
type Server struct {
	gen       Generator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(gen Generator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		gen:       gen,
		logger:    logger,
		mcpServer: server.NewMCPServer("deckgen-mcp", strings.TrimSpace(deckgen.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down mcp server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	generateTool := mcp.NewTool("generate_outline",
		mcp.WithDescription("Generate a validated presentation outline about a topic."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("What the presentation is about")),
		mcp.WithString("style", mcp.Description("Style name (see "+StylesURI+"); defaults to "+styles.DefaultStyle)),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	validateTool := mcp.NewTool("validate_outline",
		mcp.WithDescription("Extract, normalize and validate an outline from raw model text without calling the model."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw model output containing an outline JSON object")),
		mcp.WithString("style", mcp.Description("Style whose theme fills missing colors and fonts")),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args GenerateArgs) (OutlineResponse, error) {
	res, err := s.gen.Generate(ctx, args.Topic, args.Style)
	if err != nil {
		f := deckgen.Classify(err)
		s.logger.Warn("mcp generate failed", "kind", f.Kind, "err", err)
		return OutlineResponse{}, errors.New(f.Message)
	}
	return OutlineResponse{Style: res.Style.Name, Presentation: res.Presentation}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (OutlineResponse, error) {
	p, err := s.gen.Process(args.Text, args.Style)
	if err != nil {
		f := deckgen.Classify(err)
		s.logger.Debug("mcp validate rejected outline", "kind", f.Kind, "err", err)
		return OutlineResponse{}, errors.New(f.Message)
	}

	name := args.Style
	if name == "" {
		name = styles.DefaultStyle
	}
	return OutlineResponse{Style: strings.ToLower(strings.TrimSpace(name)), Presentation: p}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StylesURI, "Available presentation styles",
		mcp.WithMIMEType("application/json"),
	), s.readStyles)
}

func (s *Server) readStyles(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.gen.Styles().List())
	if err != nil {
		return nil, fmt.Errorf("failed to encode styles: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StylesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
