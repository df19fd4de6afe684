package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/dgallion1/charsheet/internal/parser"
	"github.com/dgallion1/charsheet/internal/pipeline"
	"github.com/dgallion1/charsheet/internal/sheets"
	"github.com/go-chi/chi/v5"
)

// handleExtract decodes an uploaded sheet and returns the record and the
// cell writes it would produce. Nothing is sent to the spreadsheet.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res, err := pipeline.Extract(doc, s.layout)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"source":  doc.Source,
		"anchors": res.Anchors,
		"record":  res.Record,
		"writes":  res.Writes,
	})
}

// handleSync decodes an uploaded sheet and writes it to the named
// spreadsheet in one batch.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	spreadsheet := strings.TrimSpace(r.FormValue("spreadsheet"))
	if spreadsheet == "" {
		jsonError(w, "spreadsheet is required", http.StatusBadRequest)
		return
	}
	worksheet := strings.TrimSpace(r.FormValue("worksheet"))
	if worksheet == "" {
		worksheet = s.cfg.Worksheet
	}

	run := pipeline.NewRun(doc.Source, sheets.Target{Spreadsheet: spreadsheet, Worksheet: worksheet})
	s.runs.Put(run)

	_, err := s.runner.Process(r.Context(), run, doc)
	status := http.StatusOK
	var ext *sheets.ExternalServiceError
	switch {
	case errors.As(err, &ext):
		status = http.StatusBadGateway
	case err != nil:
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"run":      run.Snapshot(),
		"poll_url": fmt.Sprintf("/api/runs/%s", run.ID),
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run := s.runs.Get(runID)
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run.Snapshot())
}

// readUpload pulls the multipart "file" field and decodes it. On failure it
// has already written the error response.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*document.Document, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	p, err := parser.ForFile(filename, parser.Options{FallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}

	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("decode failed", "filename", filename, "error", err)
		jsonError(w, "decode: "+err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}
	return doc, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
