package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btraven00/pub2agents/internal/publication"
	"github.com/btraven00/pub2agents/internal/textproc"
)

func TestBuildPublication(t *testing.T) {
	dir := t.TempDir()
	abstractFile := filepath.Join(dir, "abstract.txt")
	if err := os.WriteFile(abstractFile, []byte("Abstract from file."), 0644); err != nil {
		t.Fatalf("failed to write abstract: %v", err)
	}

	tests := []struct {
		name     string
		input    analyzeInput
		title    string
		abstract string
		wantErr  bool
	}{
		{
			name:     "flags only",
			input:    analyzeInput{Title: "g:Profiler: a web server", Abstract: "An abstract.", PMID: " 31066453 "},
			title:    "g:Profiler: a web server",
			abstract: "An abstract.",
		},
		{
			name:     "abstract file wins",
			input:    analyzeInput{Title: "Tool", Abstract: "ignored", AbstractFile: abstractFile},
			title:    "Tool",
			abstract: "Abstract from file.",
		},
		{
			name:     "markup stripped",
			input:    analyzeInput{Title: "<i>DeepTool</i>", Abstract: "Fast &amp; small."},
			title:    "DeepTool",
			abstract: "Fast & small.",
		},
		{
			name:    "missing title and abstract",
			input:   analyzeInput{PMID: "1"},
			wantErr: true,
		},
		{
			name:    "missing abstract file",
			input:   analyzeInput{Title: "Tool", AbstractFile: filepath.Join(dir, "none.txt")},
			wantErr: true,
		},
		{
			name:    "missing fulltext file",
			input:   analyzeInput{Title: "Tool", FulltextFile: filepath.Join(dir, "none.pdf")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub, err := buildPublication(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pub.Title != tt.title || pub.Abstract != tt.abstract {
				t.Errorf("got title %q abstract %q", pub.Title, pub.Abstract)
			}
			if pub.PubDate != -1 || pub.CitationsTimestamp != -1 {
				t.Error("expected unknown dates")
			}
		})
	}
}

func TestBuildPublicationTrimsIDs(t *testing.T) {
	pub, err := buildPublication(analyzeInput{Title: "Tool", PMID: " 1 ", DOI: "10.1/x "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub.ID() != (publication.ID{PMID: "1", DOI: "10.1/x"}) {
		t.Errorf("unexpected id %+v", pub.ID())
	}
}

func TestBuildIDF(t *testing.T) {
	pubs := []*publication.Publication{
		{Title: "Gene tool", Abstract: "A gene tool.", Fulltext: "rare"},
		{Title: "Protein tool", Abstract: "Proteins."},
		nil,
	}
	tp := textproc.New()

	table := buildIDF(tp, pubs, false)
	if table.Documents() != 2 {
		t.Fatalf("expected 2 documents, got %d", table.Documents())
	}
	if table.Has("rare") {
		t.Error("full text must not be counted without the flag")
	}
	if got := table.Get("tool"); got != 0 {
		t.Errorf("token in every document should weigh 0, got %v", got)
	}

	table = buildIDF(tp, pubs, true)
	if !table.Has("rare") {
		t.Error("expected full text tokens")
	}
}
