package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/btraven00/pub2agents/internal/pass1"
)

// WriteHuman prints results for reading in a terminal. maxLinks caps the
// links listed per suggestion, 0 lists all of them.
func WriteHuman(w io.Writer, results []*pass1.Result, maxLinks int) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "📄 %s\n", r.PubIDs)
		fmt.Fprintf(w, "   Title: %s\n", r.Title)
		if r.ToolTitle != "" {
			fmt.Fprintf(w, "   Title name: %s", r.ToolTitle)
			if r.ToolTitleAcronym != "" {
				fmt.Fprintf(w, " (%s)", r.ToolTitleAcronym)
			}
			fmt.Fprintln(w)
		}
		if r.PubDateHuman != "" {
			fmt.Fprintf(w, "   Published: %s", r.PubDateHuman)
			if r.JournalTitle != "" {
				fmt.Fprintf(w, " in %s", r.JournalTitle)
			}
			fmt.Fprintln(w)
		}

		if len(r.Suggestions) == 0 {
			fmt.Fprintln(w, "   No suggestions")
		}
		for j, s := range r.Suggestions {
			name := s.Extracted
			if s.Original != "" {
				name += " (was " + s.Original + ")"
			}
			fmt.Fprintf(w, "   %d. %s [%.2f]\n", j+1, name, s.Score)
			writeLinks(w, "abstract", s.LinksAbstract, maxLinks)
			writeLinks(w, "fulltext", s.LinksFulltext, maxLinks)
		}

		if len(r.LeftoverLinksAbstract)+len(r.LeftoverLinksFulltext) > 0 {
			fmt.Fprintln(w, "   🔗 Leftover links:")
			writeLinks(w, "abstract", r.LeftoverLinksAbstract, maxLinks)
			writeLinks(w, "fulltext", r.LeftoverLinksFulltext, maxLinks)
		}

		if len(r.Explain) > 0 {
			fmt.Fprintln(w, "   📈 Top terms:")
			for _, t := range r.Explain {
				fmt.Fprintf(w, "      %-30s %.4f\n", t.Term, t.Score)
			}
		}
	}
	return nil
}

func writeLinks(w io.Writer, label string, links []string, max int) {
	if len(links) == 0 {
		return
	}
	shown := links
	if max > 0 && len(shown) > max {
		shown = shown[:max]
	}
	fmt.Fprintf(w, "      %s: %s", label, strings.Join(shown, ", "))
	if len(shown) < len(links) {
		fmt.Fprintf(w, " ... and %d more", len(links)-len(shown))
	}
	fmt.Fprintln(w)
}
