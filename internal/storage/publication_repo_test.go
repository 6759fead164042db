package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/btraven00/pub2agents/internal/publication"
)

func newTestRepo(t *testing.T) *PublicationRepo {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	return NewPublicationRepo(db)
}

func TestPublicationRepoPutGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	pub := &publication.Publication{
		PMID:     "27098042",
		PMCID:    "PMC4987924",
		DOI:      "10.1093/NAR/GKW199",
		Title:    "g:Profiler-a web server for functional interpretation of gene lists (2016 update)",
		Abstract: "g:Profiler is available at https://biit.cs.ut.ee/gprofiler/.",
		PubDate:  1460937600000,
	}
	if err := repo.Put(ctx, pub); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	testCases := []struct {
		name string
		id   publication.ID
	}{
		{"by pmid", publication.ID{PMID: "27098042"}},
		{"by pmcid", publication.ID{PMCID: "PMC4987924"}},
		{"by doi any case", publication.ID{DOI: "10.1093/nar/gkw199"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Get(ctx, tc.id)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Title != pub.Title || got.PubDate != pub.PubDate {
				t.Errorf("Get() = %+v", got)
			}
		})
	}
}

func TestPublicationRepoNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), publication.ID{PMID: "1"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	_, err = repo.Get(context.Background(), publication.ID{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(empty) error = %v, want ErrNotFound", err)
	}
}

func TestPublicationRepoPutReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.Put(ctx, &publication.Publication{PMID: "1", Title: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Put(ctx, &publication.Publication{PMID: "1", DOI: "10.1/x", Title: "new"}); err != nil {
		t.Fatal(err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
	got, err := repo.Get(ctx, publication.ID{DOI: "10.1/x"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "new" {
		t.Errorf("Title = %q, want new", got.Title)
	}
}

func TestPublicationRepoPutWithoutID(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Put(context.Background(), &publication.Publication{Title: "x"}); err == nil {
		t.Error("expected error for publication without identifier")
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, p := range []*publication.Publication{
		{PMID: "1", DOI: "10.1/a", Title: "a"},
		{PMID: "2", Title: "b"},
	} {
		if err := repo.Put(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	ids := []publication.ID{
		{PMID: "2"},
		{DOI: "10.1/a"},
		{PMID: "1"},
		{PMID: "3"},
	}
	pubs, missing, err := Resolve(ctx, repo, ids)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(pubs) != 2 || pubs[0].Title != "b" || pubs[1].Title != "a" {
		t.Errorf("Resolve() pubs = %+v", pubs)
	}
	if len(missing) != 1 || missing[0].PMID != "3" {
		t.Errorf("Resolve() missing = %+v", missing)
	}
}
