package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btraven00/pub2agents/internal/diff"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

// Diff file names inside the output directory.
const (
	DiffJSONFile = "diff.json"
	DiffCSVFile  = "diff.csv"
)

// ReadJSON reads results written by WriteJSON.
func ReadJSON(path string) ([]*pass1.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	var results []*pass1.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return results, nil
}

// WriteDiffs writes diff.json and diff.csv to dir and returns the paths
// written.
func WriteDiffs(dir string, diffs []*diff.Diff, registry []diff.Entry) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name string
		fn   func(w io.Writer) error
	}{
		{DiffJSONFile, func(w io.Writer) error { return WriteDiffJSON(w, diffs) }},
		{DiffCSVFile, func(w io.Writer) error { return WriteDiffCSV(w, diffs, registry) }},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.fn); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// WriteDiffJSON writes diffs as an indented JSON array.
func WriteDiffJSON(w io.Writer, diffs []*diff.Diff) error {
	if diffs == nil {
		diffs = []*diff.Diff{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(diffs)
}

var diffCSVHeader = []string{
	"pmid", "pmcid", "doi", "name", "score", "existing_id", "existing_name",
	"possibly_related", "modify_publications", "add_publications",
	"modify_name", "modify_homepage", "add_links", "add_downloads",
	"add_documentations", "modify_credits", "add_credits",
}

// WriteDiffCSV writes one row per diff. Related entries are listed by name.
func WriteDiffCSV(w io.Writer, diffs []*diff.Diff, registry []diff.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(diffCSVHeader); err != nil {
		return err
	}

	entryName := func(i int) string {
		if i < 0 || i >= len(registry) {
			return ""
		}
		if registry[i].ID != "" {
			return registry[i].ID
		}
		return registry[i].Name
	}

	for _, d := range diffs {
		related := make([]string, len(d.PossiblyRelated))
		for i, idx := range d.PossiblyRelated {
			related[i] = entryName(idx)
		}
		row := []string{
			d.PubIDs.PMID,
			d.PubIDs.PMCID,
			d.PubIDs.DOI,
			d.Name,
			strconv.FormatFloat(d.Score, 'f', 3, 64),
			entryName(d.Existing),
			d.ExistingName,
			strings.Join(related, " | "),
			joinIDs(d.ModifyPublications),
			joinIDs(d.AddPublications),
			d.ModifyName,
			d.ModifyHomepage,
			joinBioLinks(d.AddLinks),
			joinBioLinks(d.AddDownloads),
			joinBioLinks(d.AddDocumentations),
			joinCredits(d.ModifyCredits),
			joinCredits(d.AddCredits),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func joinIDs(ids []publication.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, " | ")
}

func joinBioLinks(links []pass1.BioLink) string {
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = l.URL + " (" + l.Type + ")"
	}
	return strings.Join(parts, " | ")
}

func joinCredits(credits []publication.CorrespAuthor) string {
	parts := make([]string, len(credits))
	for i, c := range credits {
		var fields []string
		for _, f := range []string{c.Name, c.Orcid, c.Email} {
			if f != "" {
				fields = append(fields, f)
			}
		}
		parts[i] = strings.Join(fields, ", ")
	}
	return strings.Join(parts, " | ")
}
