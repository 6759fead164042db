// Package publication holds the publication records read by pass1 and the
// helpers to load them from JSON and id lists.
package publication

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Publication is one scientific article with whatever parts of it could be
// fetched. Empty strings mean the part is missing.
type Publication struct {
	PMID     string `json:"pmid"`
	PMIDURL  string `json:"pmid_url,omitempty"`
	PMCID    string `json:"pmcid"`
	PMCIDURL string `json:"pmcid_url,omitempty"`
	DOI      string `json:"doi"`
	DOIURL   string `json:"doi_url,omitempty"`

	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Fulltext string `json:"fulltext,omitempty"`

	// FulltextFile is a document on disk to convert into Fulltext on import.
	FulltextFile string `json:"fulltext_file,omitempty"`

	OA           bool   `json:"oa"`
	Preprint     bool   `json:"preprint"`
	JournalTitle string `json:"journal_title,omitempty"`
	// PubDate and CitationsTimestamp are milliseconds since the epoch, or a
	// negative value when unknown.
	PubDate            int64 `json:"pub_date"`
	CitationsCount     int   `json:"citations_count"`
	CitationsTimestamp int64 `json:"citations_timestamp"`

	CorrespAuthors []CorrespAuthor `json:"corresp_author,omitempty"`
}

// CorrespAuthor is a corresponding author as listed by the publisher.
type CorrespAuthor struct {
	Name  string `json:"name"`
	Orcid string `json:"orcidid"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	URI   string `json:"uri"`
}

// ID identifies a publication by any of its three identifiers.
type ID struct {
	PMID  string `json:"pmid"`
	PMCID string `json:"pmcid"`
	DOI   string `json:"doi"`
}

// Empty reports whether no identifier is set.
func (id ID) Empty() bool {
	return id.PMID == "" && id.PMCID == "" && id.DOI == ""
}

func (id ID) String() string {
	return "[" + id.PMID + ", " + id.PMCID + ", " + id.DOI + "]"
}

// ID returns the identifiers of p.
func (p *Publication) ID() ID {
	return ID{PMID: p.PMID, PMCID: p.PMCID, DOI: p.DOI}
}

// AbstractLength and FulltextLength count characters, not bytes.
func (p *Publication) AbstractLength() int {
	return len([]rune(p.Abstract))
}

func (p *Publication) FulltextLength() int {
	return len([]rune(p.Fulltext))
}

// Human renders a millisecond timestamp as RFC 3339, or "" when unknown.
func Human(ms int64) string {
	if ms < 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// LoadFile reads a JSON array of publications, or a single publication
// object, from path.
func LoadFile(path string) ([]*Publication, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read publications: %w", err)
	}
	return Decode(data)
}

// Decode parses a JSON array of publications or a single publication object.
// null entries of an array are dropped.
func Decode(data []byte) ([]*Publication, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var p Publication
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse publication: %w", err)
		}
		return []*Publication{&p}, nil
	}
	var pubs []*Publication
	if err := json.Unmarshal(data, &pubs); err != nil {
		return nil, fmt.Errorf("failed to parse publications: %w", err)
	}
	out := pubs[:0]
	for _, p := range pubs {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
