package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_publication_store.go -package=mocks github.com/btraven00/pub2agents/internal/storage PublicationStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/btraven00/pub2agents/internal/publication"
)

var (
	// ErrNotFound is returned when no publication matches an id.
	ErrNotFound = errors.New("publication not found")
)

// PublicationStore reads and writes publications.
type PublicationStore interface {
	// Get returns the publication matching any identifier of id, trying
	// PMID, then PMCID, then DOI. Returns ErrNotFound on a miss.
	Get(ctx context.Context, id publication.ID) (*publication.Publication, error)
	// Put inserts pub, or replaces the stored publication sharing one of
	// its identifiers.
	Put(ctx context.Context, pub *publication.Publication) error
	// List returns every stored publication in insertion order.
	List(ctx context.Context) ([]*publication.Publication, error)
	// Count returns the number of stored publications.
	Count(ctx context.Context) (int, error)
}

// PublicationRepo implements PublicationStore on SQLite.
type PublicationRepo struct {
	db *sql.DB
}

// NewPublicationRepo creates a new PublicationRepo.
func NewPublicationRepo(db *sql.DB) *PublicationRepo {
	return &PublicationRepo{db: db}
}

var _ PublicationStore = (*PublicationRepo)(nil)

func (r *PublicationRepo) lookup(ctx context.Context, id publication.ID) (int64, string, error) {
	keys := []struct {
		column string
		value  string
	}{
		{"pmid", id.PMID},
		{"pmcid", id.PMCID},
		{"doi", strings.ToLower(id.DOI)},
	}

	for _, k := range keys {
		if k.value == "" {
			continue
		}
		var rowID int64
		var data string
		err := r.db.QueryRowContext(ctx,
			"SELECT id, data FROM publications WHERE "+k.column+" = ? ORDER BY id LIMIT 1",
			k.value,
		).Scan(&rowID, &data)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return 0, "", fmt.Errorf("failed to query publication: %w", err)
		}
		return rowID, data, nil
	}
	return 0, "", ErrNotFound
}

// Get returns the publication matching id.
func (r *PublicationRepo) Get(ctx context.Context, id publication.ID) (*publication.Publication, error) {
	if id.Empty() {
		return nil, ErrNotFound
	}
	_, data, err := r.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	var pub publication.Publication
	if err := json.Unmarshal([]byte(data), &pub); err != nil {
		return nil, fmt.Errorf("failed to decode publication %s: %w", id, err)
	}
	return &pub, nil
}

// Put stores pub.
func (r *PublicationRepo) Put(ctx context.Context, pub *publication.Publication) error {
	id := pub.ID()
	if id.Empty() {
		return fmt.Errorf("publication has no identifier")
	}
	data, err := json.Marshal(pub)
	if err != nil {
		return fmt.Errorf("failed to encode publication %s: %w", id, err)
	}

	rowID, _, err := r.lookup(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if errors.Is(err, ErrNotFound) {
		_, err = r.db.ExecContext(ctx,
			"INSERT INTO publications (pmid, pmcid, doi, data) VALUES (?, ?, ?, ?)",
			id.PMID, id.PMCID, strings.ToLower(id.DOI), string(data),
		)
		if err != nil {
			return fmt.Errorf("failed to insert publication: %w", err)
		}
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE publications SET pmid = ?, pmcid = ?, doi = ?, data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		id.PMID, id.PMCID, strings.ToLower(id.DOI), string(data), rowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update publication: %w", err)
	}
	return nil
}

// List returns all publications.
func (r *PublicationRepo) List(ctx context.Context) ([]*publication.Publication, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT data FROM publications ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query publications: %w", err)
	}
	defer rows.Close()

	var pubs []*publication.Publication
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		var pub publication.Publication
		if err := json.Unmarshal([]byte(data), &pub); err != nil {
			return nil, fmt.Errorf("failed to decode publication: %w", err)
		}
		pubs = append(pubs, &pub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate publications: %w", err)
	}
	return pubs, nil
}

// Count returns the number of publications.
func (r *PublicationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM publications").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count publications: %w", err)
	}
	return n, nil
}

// Resolve loads the publications for ids in order. Ids resolving to an
// already loaded publication are dropped. Misses are returned separately.
func Resolve(ctx context.Context, store PublicationStore, ids []publication.ID) ([]*publication.Publication, []publication.ID, error) {
	var pubs []*publication.Publication
	var missing []publication.ID
	seen := make(map[publication.ID]bool)

	for _, id := range ids {
		pub, err := store.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		key := pub.ID()
		if seen[key] {
			continue
		}
		seen[key] = true
		pubs = append(pubs, pub)
	}
	return pubs, missing, nil
}
