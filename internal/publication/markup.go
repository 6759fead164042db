package publication

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var markupHint = regexp.MustCompile(`<[a-zA-Z/][^>]*>|&[a-zA-Z#0-9]+;`)

// CleanMarkup returns the text content of s when it carries HTML or XML
// markup, and s unchanged otherwise.
func CleanMarkup(s string) string {
	if !markupHint.MatchString(s) {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// Clean strips markup from the text parts of p in place.
func (p *Publication) Clean() {
	p.Title = CleanMarkup(p.Title)
	p.Abstract = CleanMarkup(p.Abstract)
	p.JournalTitle = CleanMarkup(p.JournalTitle)
}
