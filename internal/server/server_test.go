package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"

	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
	"github.com/btraven00/pub2agents/internal/storage"
	storage_mocks "github.com/btraven00/pub2agents/internal/storage/mocks"
)

type fakeEngine struct {
	lastPub *publication.Publication
	lastReq pass1.Request
	err     error
}

func (f *fakeEngine) Process(pub *publication.Publication, req pass1.Request) ([]*pass1.Result, error) {
	f.lastPub, f.lastReq = pub, req
	if f.err != nil {
		return nil, f.err
	}
	return []*pass1.Result{{
		PubIDs: pub.ID(),
		Title:  pub.Title,
		Suggestions: []*pass1.Suggestion{{
			Score:         100,
			Extracted:     "g:Profiler",
			Processed:     "g profil",
			LinksAbstract: []string{"biit.cs.ut.ee/gprofiler"},
			LinksFulltext: []string{},
		}},
	}}, nil
}

func newTestRouter(engine Analyzer, store storage.PublicationStore) http.Handler {
	return NewRouter(&Deps{Engine: engine, Store: store, Log: log.New(io.Discard)})
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockPublicationStore(ctrl)

	tests := []struct {
		name       string
		countErr   error
		wantStatus int
		wantStore  string
	}{
		{"store ok", nil, http.StatusOK, "ok"},
		{"store down", errors.New("disk gone"), http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.EXPECT().Count(gomock.Any()).Return(3, tt.countErr)

			rec := httptest.NewRecorder()
			newTestRouter(&fakeEngine{}, store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Checks["store"] != tt.wantStore {
				t.Errorf("store check = %q, want %q", resp.Checks["store"], tt.wantStore)
			}
		})
	}
}

func TestPass1Post(t *testing.T) {
	engine := &fakeEngine{}
	router := newTestRouter(engine, nil)

	body, _ := json.Marshal(Pass1Request{
		Publication: &publication.Publication{PMID: "27098042", Title: "g:Profiler-a web server", Abstract: "<p>Gene lists.</p>"},
		Name:        "g:Profiler",
		URLs:        []string{"https://biit.cs.ut.ee/gprofiler"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/pass1", bytes.NewReader(body))
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(RequestIDHeader); got != "req-1" {
		t.Errorf("X-Request-ID = %q, want req-1", got)
	}

	var resp Pass1Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.RequestID != "req-1" || len(resp.Results) != 1 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Web) != 1 || resp.Web[0] != "http://biit.cs.ut.ee/gprofiler" {
		t.Errorf("web = %v", resp.Web)
	}
	if engine.lastReq.Name != "g:Profiler" || engine.lastReq.Batch {
		t.Errorf("engine request = %+v", engine.lastReq)
	}
	if engine.lastPub.Abstract != "Gene lists." {
		t.Errorf("markup not stripped: %q", engine.lastPub.Abstract)
	}
}

func TestPass1PostErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		engineErr  error
		wantStatus int
	}{
		{"invalid json", "{", nil, http.StatusBadRequest},
		{"missing publication", `{"name":"x"}`, nil, http.StatusBadRequest},
		{"empty publication", `{"publication":{"pmid":"1"}}`, nil, http.StatusBadRequest},
		{"engine failure", `{"publication":{"title":"t"}}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeEngine{err: tt.engineErr}, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/pass1", bytes.NewBufferString(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error == "" || resp.RequestID == "" {
				t.Errorf("error response = %+v", resp)
			}
		})
	}
}

func TestPublicationPass1(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockPublicationStore(ctrl)

	pub := &publication.Publication{PMID: "27098042", Title: "g:Profiler"}

	tests := []struct {
		name       string
		path       string
		setup      func()
		wantStatus int
	}{
		{
			name: "found by pmid",
			path: "/api/publications/27098042/pass1",
			setup: func() {
				store.EXPECT().Get(gomock.Any(), publication.ID{PMID: "27098042"}).Return(pub, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "escaped doi",
			path: "/api/publications/10.1093%2Fnar%2Fgkw199/pass1",
			setup: func() {
				store.EXPECT().Get(gomock.Any(), publication.ID{DOI: "10.1093/nar/gkw199"}).Return(pub, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/publications/PMC1/pass1",
			setup: func() {
				store.EXPECT().Get(gomock.Any(), publication.ID{PMCID: "PMC1"}).Return(nil, storage.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store failure",
			path: "/api/publications/1/pass1",
			setup: func() {
				store.EXPECT().Get(gomock.Any(), publication.ID{PMID: "1"}).Return(nil, errors.New("locked"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "bad id",
			path:       "/api/publications/nonsense/pass1",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			rec := httptest.NewRecorder()
			newTestRouter(&fakeEngine{}, store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestPublicationPass1WithoutStore(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeEngine{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/publications/1/pass1", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("request id %q, header %q", seen, rec.Header().Get(RequestIDHeader))
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("expected empty id outside a request")
	}
}
