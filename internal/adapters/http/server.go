package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/deckgen"
	"github.com/aretw0/deckgen/pkg/artifact"
	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/observability"
	"github.com/aretw0/deckgen/pkg/outline"
	"github.com/aretw0/deckgen/pkg/ports"
	"github.com/aretw0/deckgen/pkg/render"
	"github.com/aretw0/deckgen/pkg/styles"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodySize bounds every request body.
const MaxBodySize = 1 << 20

// Generator is the pipeline the handlers drive.
type Generator interface {
	Generate(ctx context.Context, topic, style string) (*deckgen.Result, error)
	Prepare(c outline.Candidate, style string) (*domain.Presentation, error)
	Render(ctx context.Context, p *domain.Presentation, format render.Format, w io.Writer) error
	Styles() *styles.Catalog
}

// Server holds the handler dependencies.
type Server struct {
	Generator Generator
	Store     ports.ArtifactStore
	Metrics   *observability.Metrics
	Logger    *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithStore persists exports and enables GET /download/{filename}.
func WithStore(store ports.ArtifactStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithMetrics enables GET /metrics and per-route request counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.Metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for gen.
func NewHandler(gen Generator, opts ...Option) (http.Handler, error) {
	server := &Server{
		Generator: gen,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(server.requestContext)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if server.Metrics != nil {
		r.Handle("/metrics", server.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(limitBody)
		r.Use(validate)

		r.Get("/health", server.GetHealth)
		r.Get("/info", server.GetInfo(doc.Info.Version))
		r.Get("/styles", server.ListStyles)
		r.Post("/generate", server.Generate)
		r.Post("/export/ppt", server.Export(render.FormatPPTX))
		r.Post("/export/pdf", server.Export(render.FormatPDF))
		r.Get("/download/{filename}", server.Download)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Artifact-Name, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>deckgen API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Topic string `json:"topic"`
	Style string `json:"style,omitempty"`
}

// ExportRequest is the body of POST /export/{ppt,pdf}.
type ExportRequest struct {
	Presentation map[string]any `json:"presentation"`
	Style        string         `json:"style,omitempty"`
}

// PresentationResponse wraps a validated outline.
type PresentationResponse struct {
	Presentation *domain.Presentation `json:"presentation"`
}

// ErrorResponse is the JSON body of every failure.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Generate handles the POST /generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context())

	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Warn("Generate: Invalid request body", "err", err)
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	res, err := s.Generator.Generate(r.Context(), body.Topic, body.Style)
	if err != nil {
		s.fail(w, r, "Generate", err)
		return
	}

	writeJSON(w, r, http.StatusOK, PresentationResponse{Presentation: res.Presentation})
}

// Export returns the handler for POST /export/{ppt,pdf}.
func (s *Server) Export(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := loggerFrom(r.Context()).With("format", format)

		var body ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.Warn("Export: Invalid request body", "err", err)
			writeError(w, r, http.StatusBadRequest, "invalid_request", "Invalid request body")
			return
		}
		if body.Presentation == nil {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "No presentation data provided")
			return
		}

		p, err := s.Generator.Prepare(outline.Candidate(body.Presentation), body.Style)
		if err != nil {
			s.fail(w, r, "Export", err)
			return
		}

		var buf bytes.Buffer
		if err := s.Generator.Render(r.Context(), p, format, &buf); err != nil {
			s.fail(w, r, "Export", err)
			return
		}

		if s.Store != nil {
			a, err := s.Store.Save(r.Context(), string(format), bytes.NewReader(buf.Bytes()))
			if err != nil {
				s.fail(w, r, "Export", errors.Join(render.ErrSave, err))
				return
			}
			w.Header().Set("X-Artifact-Name", a.Name)
		}

		logger.Info("export ready", "title", p.Title, "bytes", buf.Len())
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// Download handles the GET /download/{filename} request.
func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, r, http.StatusNotFound, "not_found", "File not found")
		return
	}

	name := chi.URLParam(r, "filename")
	f, a, err := s.Store.Open(r.Context(), name)
	switch {
	case errors.Is(err, artifact.ErrInvalidName):
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Invalid filename")
		return
	case errors.Is(err, artifact.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", "File not found")
		return
	case err != nil:
		s.fail(w, r, "Download", err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+a.Name+`"`)
	http.ServeContent(w, r, a.Name, a.ModTime, f)
}

// ListStyles handles the GET /styles request.
func (s *Server) ListStyles(w http.ResponseWriter, r *http.Request) {
	type styleView struct {
		Name        string       `json:"name"`
		Description string       `json:"description"`
		Theme       domain.Theme `json:"theme"`
	}
	list := s.Generator.Styles().List()
	views := make([]styleView, len(list))
	for i, st := range list {
		views[i] = styleView{Name: st.Name, Description: st.Description, Theme: st.Theme}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"styles": views, "default": styles.DefaultStyle})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo returns the handler for GET /info.
func (s *Server) GetInfo(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{
			"app":         "deckgen-http",
			"version":     deckgen.Version,
			"api_version": apiVersion,
		})
	}
}

// fail logs err with context and answers with its classification.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	f := deckgen.Classify(err)
	logger := loggerFrom(r.Context())
	if f.Status >= http.StatusInternalServerError {
		logger.Error(op+" failed", "kind", f.Kind, "status", f.Status, "err", err)
	} else {
		logger.Warn(op+" rejected", "kind", f.Kind, "status", f.Status, "err", err)
	}
	if f.Retryable {
		w.Header().Set("Retry-After", "5")
	}
	writeError(w, r, f.Status, f.Kind, f.Message)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFrom(r.Context()).Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, kind, msg string) {
	writeJSON(w, r, status, ErrorResponse{
		Error:     msg,
		Kind:      kind,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
