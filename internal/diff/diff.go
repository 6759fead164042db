package diff

import (
	"strings"

	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

// Proposal is the registry content a pass1 result suggests: its best name,
// the links of that name split by kind, and the credits of the publication.
type Proposal struct {
	PubIDs         publication.ID
	Name           string
	Score          float64
	Homepage       string
	Links          []pass1.BioLink
	Downloads      []pass1.BioLink
	Documentations []pass1.BioLink
	Credits        []publication.CorrespAuthor
}

// NewProposal builds the proposal of r from its first suggestion. The first
// plain link becomes the homepage. ok is false for results without
// suggestions.
func NewProposal(r *pass1.Result) (p Proposal, ok bool) {
	top := r.Top()
	if top == nil {
		return Proposal{}, false
	}
	p = Proposal{
		PubIDs:  r.PubIDs,
		Name:    top.Extracted,
		Score:   top.Score,
		Credits: r.CorrespAuthors,
	}

	var seen []string
	links := append(append([]string{}, top.LinksAbstract...), top.LinksFulltext...)
	for _, l := range pass1.ClassifyLinks(links) {
		trimmed := pass1.TrimURL(l.URL)
		if containsString(seen, trimmed) {
			continue
		}
		seen = append(seen, trimmed)

		switch {
		case l.Kind == pass1.KindLink && l.Type == pass1.TypeOther && p.Homepage == "":
			p.Homepage = l.URL
		case l.Kind == pass1.KindDownload:
			p.Downloads = append(p.Downloads, l)
		case l.Kind == pass1.KindDocumentation:
			p.Documentations = append(p.Documentations, l)
		default:
			p.Links = append(p.Links, l)
		}
	}
	return p, true
}

// Diff lists what a proposal adds to or changes in an existing entry.
type Diff struct {
	PubIDs publication.ID `json:"pub_ids"`
	Name   string         `json:"name"`
	Score  float64        `json:"score"`

	// Existing is the index of the entry in the registry, ExistingName its
	// name. PossiblyRelated are other entries with the same name or homepage.
	Existing        int    `json:"existing"`
	ExistingName    string `json:"existing_name"`
	PossiblyRelated []int  `json:"possibly_related,omitempty"`

	ModifyPublications []publication.ID `json:"modify_publications,omitempty"`
	AddPublications    []publication.ID `json:"add_publications,omitempty"`
	ModifyName         string           `json:"modify_name,omitempty"`
	ModifyHomepage     string           `json:"modify_homepage,omitempty"`

	AddLinks          []pass1.BioLink `json:"add_links,omitempty"`
	AddDownloads      []pass1.BioLink `json:"add_downloads,omitempty"`
	AddDocumentations []pass1.BioLink `json:"add_documentations,omitempty"`

	ModifyCredits []publication.CorrespAuthor `json:"modify_credits,omitempty"`
	AddCredits    []publication.CorrespAuthor `json:"add_credits,omitempty"`
}

// Include reports whether the diff has anything to report.
func (d *Diff) Include() bool {
	return len(d.PossiblyRelated) > 0 ||
		len(d.ModifyPublications) > 0 || len(d.AddPublications) > 0 ||
		d.ModifyName != "" || d.ModifyHomepage != "" ||
		len(d.AddLinks) > 0 || len(d.AddDownloads) > 0 || len(d.AddDocumentations) > 0 ||
		len(d.ModifyCredits) > 0 || len(d.AddCredits) > 0
}

// Find returns the entry p belongs to, or -1, and whether it was found by
// publication. An entry citing the publication wins over one with the same
// name. Other entries sharing the name or the homepage are returned as
// related.
func Find(registry []Entry, p Proposal) (existing int, byPublication bool, related []int) {
	existing = -1
	for i, e := range registry {
		for _, id := range e.Publication {
			if publicationMatch(p.PubIDs, id) {
				existing, byPublication = i, true
				break
			}
		}
		if byPublication {
			break
		}
	}
	if existing < 0 {
		for i, e := range registry {
			if sameName(e.Name, p.Name) {
				existing = i
				break
			}
		}
	}

	homepage := ""
	if p.Homepage != "" {
		homepage = pass1.TrimURL(p.Homepage)
	}
	for i, e := range registry {
		if i == existing {
			continue
		}
		if sameName(e.Name, p.Name) || homepage != "" && e.Homepage != "" && pass1.TrimURL(e.Homepage) == homepage {
			related = append(related, i)
		}
	}
	return existing, byPublication, related
}

func sameName(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Make compares p with registry[existing].
func Make(registry []Entry, existing int, byPublication bool, related []int, p Proposal) *Diff {
	e := registry[existing]
	d := &Diff{
		PubIDs:          p.PubIDs,
		Name:            p.Name,
		Score:           p.Score,
		Existing:        existing,
		ExistingName:    e.Name,
		PossiblyRelated: related,
	}

	if byPublication {
		for _, id := range e.Publication {
			if publicationMatch(p.PubIDs, id) && publicationConflict(p.PubIDs, id) {
				d.ModifyPublications = append(d.ModifyPublications, p.PubIDs)
				break
			}
		}
		if p.Name != "" && p.Name != e.Name {
			d.ModifyName = p.Name
		}
	} else {
		d.AddPublications = []publication.ID{p.PubIDs}
	}

	links := append([]pass1.BioLink{}, p.Links...)
	downloads := append([]pass1.BioLink{}, p.Downloads...)
	documentations := append([]pass1.BioLink{}, p.Documentations...)

	if p.Homepage != "" && !linksEqual(p.Homepage, e.Homepage) {
		d.ModifyHomepage = p.Homepage
		// The old homepage moves among the links of the entry.
		if old, ok := pass1.ClassifyLink(e.Homepage); ok {
			switch old.Kind {
			case pass1.KindDownload:
				downloads = appendLink(downloads, old)
			case pass1.KindDocumentation:
				documentations = appendLink(documentations, old)
			default:
				links = appendLink(links, old)
			}
		}
	}

	for _, l := range links {
		found := anyLinkEqual(l.URL, e.Link)
		if !found && l.Type == pass1.TypeOther {
			found = d.ModifyHomepage == "" && linksEqual(l.URL, e.Homepage) ||
				anyLinkEqual(l.URL, e.Download) ||
				anyLinkEqual(l.URL, e.Documentation)
		}
		if !found {
			d.AddLinks = append(d.AddLinks, l)
		}
	}
	for _, l := range downloads {
		if !anyLinkEqual(l.URL, e.Download) {
			d.AddDownloads = append(d.AddDownloads, l)
		}
	}
	for _, l := range documentations {
		if !anyLinkEqual(l.URL, e.Documentation) {
			d.AddDocumentations = append(d.AddDocumentations, l)
		}
	}

	for _, c := range p.Credits {
		found, foundModify := false, false
		for _, ec := range e.Credit {
			if (c.Name == "" || c.Name == ec.Name) &&
				(c.Orcid == "" || c.Orcid == ec.Orcid) &&
				(c.Email == "" || c.Email == ec.Email) {
				found = true
				break
			}
			if creditNameEqual(c.Name, ec.Name) || creditOrcidEqual(c.Orcid, ec.Orcid) || creditEmailEqual(c.Email, ec.Email) {
				foundModify = true
			}
		}
		switch {
		case found:
		case foundModify:
			d.ModifyCredits = append(d.ModifyCredits, c)
		default:
			d.AddCredits = append(d.AddCredits, c)
		}
	}

	return d
}

// Compare diffs every result with a suggestion against the registry. Results
// matching no entry and diffs with nothing to report are left out. Diffs of
// the same entry are kept next to each other.
func Compare(registry []Entry, results []*pass1.Result) []*Diff {
	var diffs []*Diff
	for _, r := range results {
		p, ok := NewProposal(r)
		if !ok {
			continue
		}
		existing, byPublication, related := Find(registry, p)
		if existing < 0 {
			continue
		}
		d := Make(registry, existing, byPublication, related, p)
		if !d.Include() {
			continue
		}
		diffs = insertGrouped(diffs, d)
	}
	return diffs
}

// insertGrouped places d after the last diff of the same entry, or at the
// end.
func insertGrouped(diffs []*Diff, d *Diff) []*Diff {
	for i := len(diffs) - 1; i >= 0; i-- {
		if diffs[i].Existing == d.Existing {
			diffs = append(diffs, nil)
			copy(diffs[i+2:], diffs[i+1:])
			diffs[i+1] = d
			return diffs
		}
	}
	return append(diffs, d)
}

func linksEqual(a, b string) bool {
	return a != "" && b != "" && pass1.TrimURL(a) == pass1.TrimURL(b)
}

func anyLinkEqual(url string, links []Link) bool {
	for _, l := range links {
		if linksEqual(url, l.URL) {
			return true
		}
	}
	return false
}

func appendLink(links []pass1.BioLink, l pass1.BioLink) []pass1.BioLink {
	for _, existing := range links {
		if linksEqual(existing.URL, l.URL) {
			return links
		}
	}
	return append(links, l)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
