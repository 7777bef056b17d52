package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/errors"
	"github.com/matzehuels/stepgraph/pkg/pipeline"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// Request body limits.
const (
	MaxBodySize   = 1 << 20
	MaxUploadSize = 32 << 20
)

// Extractor turns an uploaded PDF into lines. *ingest.Client implements it.
type Extractor interface {
	Extract(ctx context.Context, filename string, r io.Reader, mode diagram.Mode) ([]string, error)
}

// Options wires a Server. Runner and Store are required.
type Options struct {
	Runner    *pipeline.Runner
	Store     store.Store
	Extractor Extractor    // nil disables uploads
	Metrics   http.Handler // nil disables /metrics
	Logger    *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	store     store.Store
	extractor Extractor
	metrics   http.Handler
	logger    *log.Logger
}

// New creates a server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:    opts.Runner,
		store:     opts.Store,
		extractor: opts.Extractor,
		metrics:   opts.Metrics,
		logger:    logger,
	}
}

// Handler returns the router with every route and middleware registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/diagram", s.handleDiagram)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleCreateDocument)
			r.Delete("/", s.handleClearDocuments)
			r.Post("/upload", s.handleUpload)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDocument)
				r.Delete("/", s.handleDeleteDocument)
				r.Get("/diagram", s.handleDocumentDiagram)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})
	return r
}

// Timeouts bounds request handling and shutdown.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, t Timeouts) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
		IdleTimeout:  time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown := t.Shutdown
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdown)
	defer cancel()

	s.logger.Info("server stopping")
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes err as a JSON error response.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errors.UserMessage(err), Code: string(code)})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}
