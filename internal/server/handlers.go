package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
	"github.com/btraven00/pub2agents/internal/storage"
)

const maxBodyBytes = 16 << 20

type handlers struct {
	engine Analyzer
	store  storage.PublicationStore
}

// Pass1Request is the body of POST /api/pass1.
type Pass1Request struct {
	Publication *publication.Publication `json:"publication"`
	Name        string                   `json:"name,omitempty"`
	URLs        []string                 `json:"urls,omitempty"`
}

// Pass1Response carries the results of one publication and the link
// buckets derived from them.
type Pass1Response struct {
	RequestID string          `json:"request_id"`
	Results   []*pass1.Result `json:"results"`
	Web       []string        `json:"web"`
	Doc       []string        `json:"doc"`
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		LoggerFromContext(r.Context()).Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, ErrorResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Error:     msg,
	})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"engine": "ok"}
	if h.engine == nil {
		checks["engine"] = "missing"
	}

	status, code := "healthy", http.StatusOK
	switch {
	case h.store == nil:
		checks["store"] = "unconfigured"
	default:
		if _, err := h.store.Count(r.Context()); err != nil {
			LoggerFromContext(r.Context()).Warn("store health check failed", "err", err)
			checks["store"] = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	}
	if h.engine == nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	writeJSON(w, r, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

func (h *handlers) pass1(w http.ResponseWriter, r *http.Request) {
	var req Pass1Request
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Publication == nil {
		writeError(w, r, http.StatusBadRequest, "missing publication")
		return
	}
	if req.Publication.Title == "" && req.Publication.Abstract == "" {
		writeError(w, r, http.StatusBadRequest, "publication has neither title nor abstract")
		return
	}

	req.Publication.Clean()
	h.run(w, r, req.Publication, pass1.Request{Name: req.Name, URLs: req.URLs})
}

func (h *handlers) publicationPass1(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, "no publication store configured")
		return
	}

	raw, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id: "+err.Error())
		return
	}
	id, err := publication.ParseID(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pub, err := h.store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "publication "+raw+" not found")
		return
	}
	if err != nil {
		LoggerFromContext(r.Context()).Error("failed to load publication", "id", raw, "err", err)
		writeError(w, r, http.StatusInternalServerError, "failed to load publication")
		return
	}

	h.run(w, r, pub, pass1.Request{})
}

func (h *handlers) run(w http.ResponseWriter, r *http.Request, pub *publication.Publication, req pass1.Request) {
	if h.engine == nil {
		writeError(w, r, http.StatusServiceUnavailable, "engine not configured")
		return
	}

	results, err := h.engine.Process(pub, req)
	if err != nil {
		LoggerFromContext(r.Context()).Error("pass1 failed", "id", pub.ID().String(), "err", err)
		writeError(w, r, http.StatusInternalServerError, "pass1 failed")
		return
	}
	pass1.SortResults(results)

	web, doc := pass1.Buckets(results, req.URLs)
	for i := range web {
		web[i] = pass1.WithScheme(web[i])
	}
	for i := range doc {
		doc[i] = pass1.WithScheme(doc[i])
	}
	if web == nil {
		web = []string{}
	}
	if doc == nil {
		doc = []string{}
	}
	if results == nil {
		results = []*pass1.Result{}
	}

	writeJSON(w, r, http.StatusOK, Pass1Response{
		RequestID: RequestIDFromContext(r.Context()),
		Results:   results,
		Web:       web,
		Doc:       doc,
	})
}
