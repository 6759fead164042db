// Package diff compares pass1 results with the entries of an existing tool
// registry and reports what each result would add to or change in the
// entry it belongs to.
package diff

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/btraven00/pub2agents/internal/publication"
)

// Entry is one tool of the registry, reduced to the fields a diff looks at.
type Entry struct {
	ID            string           `json:"biotoolsID,omitempty"`
	Name          string           `json:"name"`
	Homepage      string           `json:"homepage"`
	Link          []Link           `json:"link,omitempty"`
	Download      []Link           `json:"download,omitempty"`
	Documentation []Link           `json:"documentation,omitempty"`
	Publication   []publication.ID `json:"publication,omitempty"`
	Credit        []Credit         `json:"credit,omitempty"`
}

// Link is a typed URL of an entry. The registry stores types as a list;
// a single string is accepted too.
type Link struct {
	URL  string    `json:"url"`
	Type TypeNames `json:"type,omitempty"`
}

// TypeNames decodes from a string or an array of strings.
type TypeNames []string

func (t *TypeNames) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TypeNames{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

// Credit is a person or organisation credited in an entry.
type Credit struct {
	Name  string `json:"name"`
	Orcid string `json:"orcidid"`
	Email string `json:"email"`
}

// LoadRegistry reads registry entries from a JSON array or from a registry
// API page of the form {"list": [...]}.
func LoadRegistry(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	return DecodeRegistry(data)
}

// DecodeRegistry parses what LoadRegistry reads.
func DecodeRegistry(data []byte) ([]Entry, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var page struct {
			List []Entry `json:"list"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("failed to parse registry: %w", err)
		}
		return page.List, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	return entries, nil
}

// publicationMatch reports whether id and other share a non-empty
// identifier. DOIs compare case-insensitively.
func publicationMatch(id, other publication.ID) bool {
	return id.PMID != "" && strings.TrimSpace(other.PMID) == id.PMID ||
		id.PMCID != "" && strings.EqualFold(strings.TrimSpace(other.PMCID), id.PMCID) ||
		id.DOI != "" && strings.EqualFold(normaliseDOI(other.DOI), id.DOI)
}

// publicationConflict reports whether other sets an identifier of id to a
// different value.
func publicationConflict(id, other publication.ID) bool {
	pmid, pmcid, doi := strings.TrimSpace(other.PMID), strings.TrimSpace(other.PMCID), normaliseDOI(other.DOI)
	return id.PMID != "" && pmid != "" && pmid != id.PMID ||
		id.PMCID != "" && pmcid != "" && !strings.EqualFold(pmcid, id.PMCID) ||
		id.DOI != "" && doi != "" && !strings.EqualFold(doi, id.DOI)
}

func normaliseDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	if id, err := publication.ParseID(doi); err == nil && id.DOI != "" {
		return id.DOI
	}
	return doi
}
