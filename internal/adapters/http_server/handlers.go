// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
)

type Handlers struct {
	Previews    domain.PreviewStore
	Spots       *app.Resource[domain.Spot]
	Services    *app.Resource[domain.Service]
	Instructors *app.Resource[domain.Instructor]
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/previews/{token}", h.getPreview)
	s.mux.Get("/v1/spots", func(w http.ResponseWriter, r *http.Request) { serveSnapshot(w, r, h.Spots) })
	s.mux.Get("/v1/services", func(w http.ResponseWriter, r *http.Request) { serveSnapshot(w, r, h.Services) })
	s.mux.Get("/v1/instructors", func(w http.ResponseWriter, r *http.Request) { serveSnapshot(w, r, h.Instructors) })
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func etagOf(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	return etagOf(body), body
}

// notModified answers 304 when the client already holds etag.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if inm := r.Header.Get("If-None-Match"); inm != "" && etag != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (h *Handlers) getPreview(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	f, err := h.Previews.Get(r.Context(), token)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "preview released or expired")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("token", token).Msg("preview lookup failed")
		writeProblem(w, http.StatusBadGateway, "Preview store unavailable", "")
		return
	}

	etag := etagOf(f.Data)
	if notModified(w, r, etag) {
		return
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(f.Data); err != nil {
		log.Error().Err(err).Msg("failed to write preview body")
	}
}

// serveSnapshot returns the last successful fetch without triggering one.
func serveSnapshot[T any](w http.ResponseWriter, r *http.Request, res *app.Resource[T]) {
	if res == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "")
		return
	}
	items, ok := res.Snapshot()
	if !ok {
		writeProblem(w, http.StatusServiceUnavailable, "Not loaded", res.Name()+" has not been fetched yet")
		return
	}

	etag, body := calcETagAndBody(items)
	if notModified(w, r, etag) {
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("resource", res.Name()).Msg("failed to write snapshot body")
	}
}
