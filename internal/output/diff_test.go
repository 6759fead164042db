package output

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btraven00/pub2agents/internal/diff"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

func sampleDiffs() ([]*diff.Diff, []diff.Entry) {
	registry := []diff.Entry{
		{ID: "gprofiler", Name: "g:Profiler"},
		{Name: "gProfiler mirror"},
	}
	diffs := []*diff.Diff{{
		PubIDs:          publication.ID{PMID: "27098042"},
		Name:            "g:Profiler",
		Score:           1200,
		Existing:        0,
		ExistingName:    "g:Profiler",
		PossiblyRelated: []int{1},
		AddPublications: []publication.ID{{PMID: "27098042"}},
		AddLinks:        []pass1.BioLink{{URL: "https://github.com/x/y", Kind: pass1.KindLink, Type: pass1.TypeRepository}},
		AddCredits:      []publication.CorrespAuthor{{Name: "Jane Doe", Email: "jane@uni.edu"}},
	}}
	return diffs, registry
}

func TestWriteDiffCSV(t *testing.T) {
	diffs, registry := sampleDiffs()

	var buf bytes.Buffer
	if err := WriteDiffCSV(&buf, diffs, registry); err != nil {
		t.Fatalf("WriteDiffCSV() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	row := map[string]string{}
	for i, h := range diffCSVHeader {
		row[h] = rows[1][i]
	}
	expected := map[string]string{
		"existing_id":      "gprofiler",
		"possibly_related": "gProfiler mirror",
		"add_publications": "[27098042, , ]",
		"add_links":        "https://github.com/x/y (Repository)",
		"add_credits":      "Jane Doe, jane@uni.edu",
		"score":            "1200.000",
	}
	for key, want := range expected {
		if row[key] != want {
			t.Errorf("%s = %q, want %q", key, row[key], want)
		}
	}
}

func TestWriteDiffs(t *testing.T) {
	diffs, registry := sampleDiffs()
	dir := filepath.Join(t.TempDir(), "out")

	written, err := WriteDiffs(dir, diffs, registry)
	if err != nil {
		t.Fatalf("WriteDiffs() error = %v", err)
	}
	if len(written) != 2 || filepath.Base(written[0]) != DiffJSONFile || filepath.Base(written[1]) != DiffCSVFile {
		t.Errorf("written = %v", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, DiffJSONFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"existing_name": "g:Profiler"`) {
		t.Errorf("diff.json missing existing name: %s", data)
	}
}

func TestReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), JSONFile)
	if err := writeFile(path, func(w io.Writer) error { return WriteJSON(w, sampleResults()) }); err != nil {
		t.Fatal(err)
	}

	results, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(results) != 2 || results[0].Top() == nil || results[0].Top().Extracted != "g:Profiler" {
		t.Errorf("ReadJSON() = %+v", results)
	}

	if _, err := ReadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}
