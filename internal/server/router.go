// Package server exposes pass1 over HTTP.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/btraven00/pub2agents/internal/logger"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
	"github.com/btraven00/pub2agents/internal/storage"
)

// Analyzer runs pass1 on one publication. *pass1.Engine implements it.
type Analyzer interface {
	Process(pub *publication.Publication, req pass1.Request) ([]*pass1.Result, error)
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine Analyzer
	// Store may be nil, in which case publication lookups answer 503.
	Store storage.PublicationStore
	Log   *log.Logger
}

// NewRouter creates the HTTP router.
func NewRouter(deps *Deps) http.Handler {
	l := deps.Log
	if l == nil {
		l = logger.New("server")
	}

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Logger(l))

	h := &handlers{engine: deps.Engine, store: deps.Store}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Post("/pass1", h.pass1)
		r.Get("/publications/{id}/pass1", h.publicationPass1)
	})

	return r
}
