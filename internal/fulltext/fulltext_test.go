package fulltext

import (
	"path/filepath"
	"testing"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "joins wrapped lines",
			input:    "g:Profiler is a web\nserver for gene lists.\n\nSecond paragraph.",
			expected: "g:Profiler is a web server for gene lists.\n\nSecond paragraph.",
		},
		{
			name:     "rejoins hyphenated words",
			input:    "functional inter-\npretation",
			expected: "functional interpretation",
		},
		{
			name:     "normalises quotes and spaces",
			input:    "“Tool” is\t\tfree",
			expected: "\"Tool\" is free",
		},
		{
			name:     "drops control characters and blank runs",
			input:    "a\x07b\n\n\n\n\nc",
			expected: "ab\n\nc",
		},
		{
			name:     "keeps url hyphens",
			input:    "see https://example.org/my-tool here",
			expected: "see https://example.org/my-tool here",
		},
	}

	c := NewConverter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Clean(tc.input); got != tc.expected {
				t.Errorf("Clean(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCleanKeepLines(t *testing.T) {
	c := NewConverter()
	c.KeepLines = true
	if got, want := c.Clean("line one\nline two"), "line one\nline two"; got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestConvertFileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
