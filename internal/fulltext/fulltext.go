// Package fulltext turns article documents (PDF, DOC(X), HTML, ...) into the
// plain text pass1 scans for late name mentions and links.
package fulltext

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"code.sajari.com/docconv/v2"
)

// Document is a converted file.
type Document struct {
	Filename string
	Text     string
	Meta     map[string]string
}

// Converter normalises docconv output into running text.
type Converter struct {
	// KeepLines keeps the original line breaks instead of joining wrapped
	// lines back into paragraphs.
	KeepLines bool

	whitespace *regexp.Regexp
	control    *regexp.Regexp
	paragraphs *regexp.Regexp
	hyphenWrap *regexp.Regexp
}

// NewConverter creates a converter.
func NewConverter() *Converter {
	return &Converter{
		whitespace: regexp.MustCompile(`[ \t\f\v]+`),
		control:    regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`),
		paragraphs: regexp.MustCompile(`\n\s*\n`),
		hyphenWrap: regexp.MustCompile(`(\p{Ll})-\n(\p{Ll})`),
	}
}

// ConvertFile extracts the text of filename.
func (c *Converter) ConvertFile(filename string) (*Document, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("file does not exist: %s", filename)
	}

	response, err := docconv.ConvertPath(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to convert file '%s': %w", filename, err)
	}

	if strings.TrimSpace(response.Body) == "" {
		return nil, fmt.Errorf("no readable text found in %s", filename)
	}

	return &Document{
		Filename: filename,
		Text:     c.Clean(response.Body),
		Meta:     response.Meta,
	}, nil
}

// Clean normalises extraction artifacts: non-breaking spaces, hyphen and
// quote variants, control characters and runs of blank lines. Unless
// KeepLines is set, lines wrapped inside a paragraph are joined with a
// space and words hyphenated across a line break are rejoined.
func (c *Converter) Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !c.KeepLines {
		text = c.hyphenWrap.ReplaceAllString(text, "$1$2")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\u00a0", " ")
		line = strings.ReplaceAll(line, "\u2010", "-")
		line = strings.ReplaceAll(line, "\u2011", "-")
		line = strings.ReplaceAll(line, "\u201c", "\"")
		line = strings.ReplaceAll(line, "\u201d", "\"")
		line = strings.ReplaceAll(line, "\u2018", "'")
		line = strings.ReplaceAll(line, "\u2019", "'")
		line = c.control.ReplaceAllString(line, "")
		line = c.whitespace.ReplaceAllString(line, " ")
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	paragraphs := c.paragraphs.Split(strings.TrimSpace(text), -1)
	kept := paragraphs[:0]
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !c.KeepLines {
			p = strings.Join(strings.Fields(strings.ReplaceAll(p, "\n", " ")), " ")
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "\n\n")
}

// Load converts filename with a default converter and returns its text.
func Load(filename string) (string, error) {
	doc, err := NewConverter().ConvertFile(filename)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}
