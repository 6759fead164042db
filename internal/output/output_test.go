package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

func sampleResults() []*pass1.Result {
	return []*pass1.Result{
		{
			PubIDs: publication.ID{PMID: "27098042", DOI: "10.1093/nar/gkw199"},
			Title:  "g:Profiler-a web server",
			Suggestions: []*pass1.Suggestion{
				{
					Score:         1200,
					Extracted:     "g:Profiler",
					Processed:     "g profil",
					LinksAbstract: []string{"biit.cs.ut.ee/gprofiler", "https://github.com/x/gprofiler/wiki"},
					LinksFulltext: []string{"https://biit.cs.ut.ee/gprofiler/page/docs"},
				},
				{Score: 60, Extracted: "GO", Processed: "go"},
			},
		},
		{PubIDs: publication.ID{PMID: "1"}, Title: "Nothing here"},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d results, want 2", len(decoded))
	}
	if _, ok := decoded[0]["leftover_links_abstract"]; !ok {
		t.Error("missing leftover_links_abstract key")
	}

	buf.Reset()
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", got)
	}
}

func TestWriteLinksAddsScheme(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLinks(&buf, []string{"biit.cs.ut.ee/gprofiler", "https://gprofiler.org"}); err != nil {
		t.Fatal(err)
	}
	expected := "http://biit.cs.ut.ee/gprofiler\nhttps://gprofiler.org\n"
	if buf.String() != expected {
		t.Errorf("WriteLinks() = %q, want %q", buf.String(), expected)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResults()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4 (header, 2 suggestions, 1 empty result)", len(rows))
	}
	if rows[1][6] != "g:Profiler" || rows[1][4] != "1" || rows[2][4] != "2" {
		t.Errorf("unexpected suggestion rows: %v", rows[1:3])
	}
	if rows[3][0] != "1" || rows[3][6] != "" {
		t.Errorf("unexpected empty result row: %v", rows[3])
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	written, err := WriteAll(dir, sampleResults(), []string{"https://provided.org/tool"}, Options{CSV: true, XLSX: true})
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if len(written) != 5 {
		t.Errorf("wrote %d files, want 5: %v", len(written), written)
	}

	web, err := os.ReadFile(filepath.Join(dir, WebFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(web), "http://biit.cs.ut.ee/gprofiler\n") {
		t.Errorf("web.txt missing schemeless link: %q", web)
	}
	if !strings.Contains(string(web), "https://provided.org/tool\n") {
		t.Errorf("web.txt missing provided link: %q", web)
	}

	doc, err := os.ReadFile(filepath.Join(dir, DocFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc), "https://biit.cs.ut.ee/gprofiler/page/docs") {
		t.Errorf("doc.txt missing documentation link: %q", doc)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, XLSXFile))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(resultsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("Results sheet has %d rows, want 3", len(rows))
	}
	links, err := f.GetRows(linksSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 4 {
		t.Errorf("Links sheet has %d rows, want 4", len(links))
	}
}

func TestWriteHuman(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHuman(&buf, sampleResults(), 1); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"1. g:Profiler [1200.00]", "... and 1 more", "No suggestions"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
