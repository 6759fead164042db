package pass1

import (
	"sort"

	"github.com/btraven00/pub2agents/internal/publication"
)

// Result is the outcome of one publication for one title segment.
type Result struct {
	PubIDs      publication.ID `json:"pub_ids"`
	Suggestions []*Suggestion  `json:"suggestions"`

	LeftoverLinksAbstract []string `json:"leftover_links_abstract"`
	LeftoverLinksFulltext []string `json:"leftover_links_fulltext"`

	Title                      string   `json:"title"`
	ToolTitleOthers            []string `json:"tool_title_others"`
	ToolTitleExtractedOriginal string   `json:"tool_title_extracted_original"`
	ToolTitle                  string   `json:"tool_title"`
	ToolTitlePruned            string   `json:"tool_title_pruned"`
	ToolTitleAcronym           string   `json:"tool_title_acronym"`

	AbstractSentences []string `json:"abstract_sentences"`

	OA                      bool   `json:"oa"`
	Preprint                bool   `json:"preprint"`
	JournalTitle            string `json:"journal_title"`
	PubDate                 int64  `json:"pub_date"`
	PubDateHuman            string `json:"pub_date_human"`
	CitationsCount          int    `json:"citations_count"`
	CitationsTimestamp      int64  `json:"citations_timestamp"`
	CitationsTimestampHuman string `json:"citations_timestamp_human"`

	CorrespAuthors []publication.CorrespAuthor `json:"corresp_author"`

	Explain []ScoredTerm `json:"explain,omitempty"`
}

func (e *Engine) newResult(pub *publication.Publication, seg Segment, acronym string, others []string) *Result {
	if others == nil {
		others = []string{}
	}
	r := &Result{
		PubIDs:                     e.sanitizeIDs(pub),
		Suggestions:                []*Suggestion{},
		LeftoverLinksAbstract:      []string{},
		LeftoverLinksFulltext:      []string{},
		Title:                      pub.Title,
		ToolTitleOthers:            others,
		ToolTitleExtractedOriginal: seg.ExtractedOriginal,
		ToolTitle:                  seg.Extracted,
		ToolTitlePruned:            seg.Pruned,
		ToolTitleAcronym:           acronym,
		OA:                         pub.OA,
		Preprint:                   pub.Preprint,
		JournalTitle:               pub.JournalTitle,
		PubDate:                    pub.PubDate,
		PubDateHuman:               publication.Human(pub.PubDate),
		CitationsCount:             pub.CitationsCount,
		CitationsTimestamp:         pub.CitationsTimestamp,
		CitationsTimestampHuman:    publication.Human(pub.CitationsTimestamp),
	}
	r.CorrespAuthors = e.sanitizeCredits(r.PubIDs, pub.CorrespAuthors)
	return r
}

// Top returns the first suggestion, or nil.
func (r *Result) Top() *Suggestion {
	if len(r.Suggestions) == 0 {
		return nil
	}
	return r.Suggestions[0]
}

func (r *Result) hasSuggestionLink(link string) bool {
	for _, s := range r.Suggestions {
		if containsString(s.LinksAbstract, link) || containsString(s.LinksFulltext, link) {
			return true
		}
	}
	return false
}

// setLeftovers stores the links that no suggestion holds yet.
func (r *Result) setLeftovers(abstract, fulltext []string) {
	r.LeftoverLinksAbstract = []string{}
	for _, link := range abstract {
		if !r.hasSuggestionLink(link) {
			r.LeftoverLinksAbstract = append(r.LeftoverLinksAbstract, link)
		}
	}
	r.LeftoverLinksFulltext = []string{}
	for _, link := range fulltext {
		if !r.hasSuggestionLink(link) {
			r.LeftoverLinksFulltext = append(r.LeftoverLinksFulltext, link)
		}
	}
}

// SortResults orders results by the score of their first suggestion,
// highest first. Results without suggestions go last. Equal results keep
// their order.
func SortResults(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Top(), results[j].Top()
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Score > b.Score
	})
}
