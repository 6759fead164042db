package textproc

import (
	"reflect"
	"testing"

	"github.com/btraven00/pub2agents/internal/pass1"
)

func TestSentences(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "two sentences",
			text:     "We present a tool. It is fast.",
			expected: []string{"We present a tool.", "It is fast."},
		},
		{
			name:     "lower case after period does not split",
			text:     "See e.g. the manual. Done",
			expected: []string{"See e.g. the manual.", "Done"},
		},
		{
			name:     "line breaks split",
			text:     "First line\nSecond line",
			expected: []string{"First line", "Second line"},
		},
		{
			name:     "digit starts new sentence",
			text:     "Results improved. 42 genes were found.",
			expected: []string{"Results improved.", "42 genes were found."},
		},
		{
			name:     "empty",
			text:     "   ",
			expected: nil,
		},
	}

	p := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Sentences(tc.text)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Sentences(%q) = %q, want %q", tc.text, got, tc.expected)
			}
		})
	}
}

func TestTokensStayAligned(t *testing.T) {
	p := New(WithStopWords([]string{"the", "a"}))
	got := p.Tokens("The g:Profiler tool (a web server).")
	expected := []pass1.Token{
		{Surface: "g:Profiler", Processed: "gprofiler"},
		{Surface: "tool", Processed: "tool"},
		{Surface: "web", Processed: "web"},
		{Surface: "server", Processed: "server"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Tokens() = %+v, want %+v", got, expected)
	}
}

func TestExtractKeepsStopWords(t *testing.T) {
	p := New(WithStopWords([]string{"the"}))
	got := p.Extract("(the  Tool),")
	expected := []string{"the", "Tool"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Extract() = %q, want %q", got, expected)
	}
}

func TestProcessStemming(t *testing.T) {
	plain := New()
	if got := plain.Process("Aligners"); got != "aligners" {
		t.Errorf("Process without stemming = %q, want %q", got, "aligners")
	}
	stemmed := New(WithStemming(true))
	if got := stemmed.Process("Running"); got != "run" {
		t.Errorf("Process with stemming = %q, want %q", got, "run")
	}
	if got := plain.Process("--"); got != "" {
		t.Errorf("Process(%q) = %q, want empty", "--", got)
	}
}

func TestLinks(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "scheme url with trailing period",
			text:     "It is available at https://biit.cs.ut.ee/gprofiler2/.",
			expected: []string{"https://biit.cs.ut.ee/gprofiler2/"},
		},
		{
			name:     "www and schemeless",
			text:     "See www.example.org/tool and github.com/user/repo for code",
			expected: []string{"www.example.org/tool", "github.com/user/repo"},
		},
		{
			name:     "parenthesised url",
			text:     "(http://example.com/a)",
			expected: []string{"http://example.com/a"},
		},
		{
			name:     "doi",
			text:     "doi: 10.1234/abc.def",
			expected: []string{"https://doi.org/10.1234/abc.def"},
		},
		{
			name:     "pdf running head glued on",
			text:     "https://example.org/dataCorrespondence to",
			expected: []string{"https://example.org/data"},
		},
		{
			name:     "no links",
			text:     "Nothing to see here.",
			expected: nil,
		},
	}

	p := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Links(tc.text)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Links(%q) = %q, want %q", tc.text, got, tc.expected)
			}
		})
	}
}

func TestRemoveLinks(t *testing.T) {
	p := New()
	got := p.RemoveLinks("Available at https://example.org/x. Try it.")
	expected := "Available at . Try it."
	if got != expected {
		t.Errorf("RemoveLinks() = %q, want %q", got, expected)
	}
}
