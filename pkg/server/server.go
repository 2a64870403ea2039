// Package server exposes the gateway over HTTP. Every handler performs at
// most one call to its collaborator and renders the result as JSON.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/germanamz/llmgate/pkg/catalog"
	"github.com/germanamz/llmgate/pkg/logging"
	"github.com/germanamz/llmgate/pkg/modeladapter"
	"github.com/germanamz/llmgate/pkg/processing"
	"github.com/germanamz/llmgate/pkg/storage"
	"github.com/rs/cors"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// TimestampFormat renders response timestamps in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000"

const defaultMaxUploadBytes = 32 << 20

// Prompter runs model invocations.
type Prompter interface {
	Invoke(ctx context.Context, req modeladapter.Request) (modeladapter.Result, error)
}

// FileStore uploads, lists and presigns stored CSV files.
type FileStore interface {
	Upload(ctx context.Context, content []byte, filename, contentType string) (storage.UploadResult, error)
	List(ctx context.Context, prefix string) ([]storage.FileInfo, error)
	Presign(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Processor delegates CSV processing.
type Processor interface {
	Process(ctx context.Context, req processing.Request) (json.RawMessage, error)
}

// Options configures a Server.
type Options struct {
	AppName        string
	CORSOrigins    []string
	MaxUploadBytes int64
	Logger         *slog.Logger
	Now            func() time.Time // Defaults to time.Now.
}

// Server routes HTTP requests to the gateway services.
type Server struct {
	prompter  Prompter
	files     FileStore
	processor Processor
	opts      Options
	log       *slog.Logger
}

// New creates a Server.
func New(prompter Prompter, files FileStore, processor Processor, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	return &Server{
		prompter:  prompter,
		files:     files,
		processor: processor,
		opts:      opts,
		log:       opts.Logger,
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("POST /api/prompt", s.handlePrompt)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/files", s.handleFiles)
	mux.HandleFunc("GET /api/files/presign", s.handlePresign)
	mux.HandleFunc("POST /api/process", s.handleProcess)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	var h http.Handler = mux
	h = gziphandler.GzipHandler(h)
	h = cors.New(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	}).Handler(h)
	h = s.accessLog(h)
	h = requestID(h)
	h = s.recoverer(h)

	return h
}

func (s *Server) timestamp() string {
	return s.opts.Now().UTC().Format(TimestampFormat)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "LLM Prompt Tester API - Backend is running!",
		"version": Version,
		"endpoints": map[string]string{
			"health":  "/api/health",
			"models":  "/api/models",
			"prompt":  "/api/prompt",
			"upload":  "/api/upload",
			"files":   "/api/files",
			"presign": "/api/files/presign",
			"process": "/api/process",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"app":       s.opts.AppName,
		"timestamp": s.timestamp(),
	})
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Models())
}
