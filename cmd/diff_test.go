package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btraven00/pub2agents/internal/diff"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

func TestPrintDiffs(t *testing.T) {
	registry := []diff.Entry{
		{ID: "gprofiler", Name: "g:Profiler"},
		{Name: "gProfiler mirror"},
	}

	tests := []struct {
		name     string
		diff     *diff.Diff
		contains []string
		excludes []string
	}{
		{
			name: "new publication and link",
			diff: &diff.Diff{
				PubIDs:          publication.ID{PMID: "27098042"},
				Name:            "g:Profiler",
				Score:           1200,
				ExistingName:    "g:Profiler",
				PossiblyRelated: []int{1},
				AddPublications: []publication.ID{{PMID: "27098042"}},
				AddLinks:        []pass1.BioLink{{URL: "https://github.com/x/y", Kind: pass1.KindLink, Type: pass1.TypeRepository}},
			},
			contains: []string{"g:Profiler (1200.0)", "? related: gProfiler mirror", "+ link: https://github.com/x/y (Repository)"},
			excludes: []string{"~ name", "~ homepage"},
		},
		{
			name: "renamed entry",
			diff: &diff.Diff{
				Name:           "gProfiler",
				ExistingName:   "g:Profiler",
				ModifyName:     "gProfiler",
				ModifyHomepage: "https://biit.cs.ut.ee/gprofiler",
				AddCredits:     []publication.CorrespAuthor{{Name: "Jane Doe", Email: "jane@uni.edu"}},
			},
			contains: []string{"~ name: gProfiler", "~ homepage: https://biit.cs.ut.ee/gprofiler", "+ credit: Jane Doe"},
			excludes: []string{"related", "+ link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printDiffs(&buf, []*diff.Diff{tt.diff}, registry)
			got := buf.String()

			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q, got:\n%s", unwanted, got)
				}
			}
		})
	}
}
