package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stepgraph/pkg/core/layout"
	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/errors"
	"github.com/matzehuels/stepgraph/pkg/pipeline"
	"github.com/matzehuels/stepgraph/pkg/render"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// LatestID addresses the newest snapshot in document routes.
const LatestID = "latest"

type diagramRequest struct {
	Lines    []string         `json:"lines"`
	Mode     string           `json:"mode,omitempty"`
	Geometry *layout.Geometry `json:"geometry,omitempty"`
	Refresh  bool             `json:"refresh,omitempty"`
}

type diagramResponse struct {
	Graph      *diagram.Graph `json:"graph"`
	Hash       string         `json:"hash"`
	Stats      diagram.Stats  `json:"stats"`
	Cached     bool           `json:"cached"`
	DocumentID string         `json:"document_id,omitempty"`
}

type documentRequest struct {
	Lines  []string `json:"lines"`
	Source string   `json:"source,omitempty"`
}

type documentSummary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source,omitempty"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

// handleDiagram handles POST /v1/diagram.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := checkLines(req.Lines); err != nil {
		writeError(w, err)
		return
	}

	mode := req.Mode
	if q := r.URL.Query().Get("mode"); q != "" {
		mode = q
	}
	opts, format, err := diagramOptions(r, mode)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Geometry = req.Geometry
	opts.Refresh = req.Refresh

	res, err := s.runner.Execute(r.Context(), req.Lines, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, res, format)
}

// handleListDocuments handles GET /v1/documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]documentSummary, len(all))
	for i, d := range all {
		out[i] = documentSummary{ID: d.ID, Source: d.Source, Lines: len(d.Lines), CreatedAt: d.CreatedAt}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": out})
}

// handleCreateDocument handles POST /v1/documents.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := checkLines(req.Lines); err != nil {
		writeError(w, err)
		return
	}
	s.saveDocument(w, r, req.Lines, req.Source)
}

// handleUpload handles POST /v1/documents/upload.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "uploads are disabled: no extraction service configured"))
		return
	}
	mode, err := diagram.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid multipart upload"))
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing form field \"file\""))
		return
	}
	defer file.Close()
	if err := errors.ValidateUploadFilename(hdr.Filename); err != nil {
		writeError(w, err)
		return
	}

	lines, err := s.extractor.Extract(r.Context(), hdr.Filename, file, mode)
	if err != nil {
		s.logger.Warn("extraction failed", "file", hdr.Filename, "error", err)
		writeError(w, err)
		return
	}
	s.logger.Info("extracted document", "file", hdr.Filename, "mode", mode, "lines", len(lines))
	s.saveDocument(w, r, lines, hdr.Filename)
}

func (s *Server) saveDocument(w http.ResponseWriter, r *http.Request, lines []string, source string) {
	snap := store.New(lines, source)
	if err := s.store.Set(r.Context(), snap); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// handleClearDocuments handles DELETE /v1/documents.
func (s *Server) handleClearDocuments(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetDocument handles GET /v1/documents/{id}.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := store.Resolve(r.Context(), s.store, documentID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleDeleteDocument handles DELETE /v1/documents/{id}.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDocumentID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDocumentDiagram handles GET /v1/documents/{id}/diagram.
func (s *Server) handleDocumentDiagram(w http.ResponseWriter, r *http.Request) {
	opts, format, err := diagramOptions(r, r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.ExecuteDocument(r.Context(), s.store, documentID(r), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, res, format)
}

// documentID returns the {id} parameter, or "" for the newest snapshot.
func documentID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if id == LatestID {
		return ""
	}
	return id
}

// diagramOptions reads the mode and format parameters.
func diagramOptions(r *http.Request, mode string) (pipeline.Options, render.Format, error) {
	if _, err := diagram.ParseMode(mode); err != nil {
		return pipeline.Options{}, "", err
	}
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return pipeline.Options{}, "", err
	}
	opts := pipeline.Options{Mode: mode}
	if format != render.FormatJSON {
		opts.Formats = []string{string(format)}
	}
	return opts, format, nil
}

func checkLines(lines []string) error {
	if len(lines) == 0 {
		return errors.NoData()
	}
	return diagram.CheckLines(lines)
}

func writeResult(w http.ResponseWriter, res *pipeline.Result, format render.Format) {
	if format != render.FormatJSON {
		w.Header().Set("Content-Type", render.ContentType(format))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[string(format)])
		return
	}
	resp := diagramResponse{
		Graph:  res.Graph,
		Hash:   res.GraphHash,
		Stats:  res.Graph.Stats(),
		Cached: res.CacheInfo.BuildHit,
	}
	if res.Document != nil {
		resp.DocumentID = res.Document.ID
	}
	writeJSON(w, http.StatusOK, resp)
}
