package pass1

import (
	"strings"

	"github.com/btraven00/pub2agents/internal/publication"
)

// sanitizeIDs blanks identifiers that do not satisfy the registry schema.
func (e *Engine) sanitizeIDs(pub *publication.Publication) publication.ID {
	pmid, pmcid, doi := pub.PMID, pub.PMCID, pub.DOI
	if pmid != "" && !schemaPMID.MatchString(pmid) {
		e.log.Warn("Discarded invalid publication PMID", "pmid", pmid, "pmcid", pmcid, "doi", doi)
		pmid = ""
	}
	if pmcid != "" && !schemaPMCID.MatchString(pmcid) {
		e.log.Warn("Discarded invalid publication PMCID", "pmcid", pmcid, "pmid", pmid, "doi", doi)
		pmcid = ""
	}
	if doi != "" && !schemaDOI.MatchString(doi) {
		e.log.Warn("Discarded invalid publication DOI", "doi", doi, "pmid", pmid, "pmcid", pmcid)
		doi = ""
	}
	return publication.ID{PMID: pmid, PMCID: pmcid, DOI: doi}
}

// sanitizeCredits returns schema-valid copies of the corresponding authors.
// Credits left without name, email and url are dropped.
func (e *Engine) sanitizeCredits(id publication.ID, authors []publication.CorrespAuthor) []publication.CorrespAuthor {
	out := []publication.CorrespAuthor{}
	pub := id.String()

	for _, ca := range authors {
		name := strings.TrimSpace(whitespace.ReplaceAllString(ca.Name, " "))
		if runeLen(name) < schemaCreditNameMin && name != "" {
			name = fillToMin(name, schemaCreditNameMin)
			e.log.Warn("Credit name filled to min", "from", ca.Name, "to", name, "pub", pub)
		}
		if runeLen(name) > schemaCreditNameMax {
			name = pruneToMax(name, schemaCreditNameMax)
			e.log.Warn("Credit name pruned to max", "from", ca.Name, "to", name, "pub", pub)
		}

		orcid := ca.Orcid
		if strings.HasPrefix(orcid, "http://") {
			https := "https://" + strings.TrimPrefix(orcid, "http://")
			e.log.Debug("Changed credit orcidid to HTTPS", "from", orcid, "to", https)
			orcid = https
		}
		if orcid != "" && !schemaOrcid.MatchString(orcid) {
			e.log.Warn("Discarded invalid credit orcidid", "orcidid", orcid, "pub", pub)
			orcid = ""
		}

		email := ca.Email
		if email != "" && !schemaEmail.MatchString(email) {
			if fixed, ok := fixEmail(email); ok {
				e.log.Warn("Credit email changed", "from", email, "to", fixed, "pub", pub)
				email = fixed
			} else {
				e.log.Warn("Discarded invalid credit email", "email", email, "pub", pub)
				email = ""
			}
		}

		uri := ca.URI
		if uri != "" && !schemaURL.MatchString(uri) {
			e.log.Warn("Discarded invalid credit url", "url", uri, "pub", pub)
			uri = ""
		}

		if name == "" && email == "" && uri == "" {
			e.log.Warn("Discarded empty credit", "pub", pub)
			continue
		}
		out = append(out, publication.CorrespAuthor{
			Name:  name,
			Orcid: orcid,
			Email: email,
			Phone: ca.Phone,
			URI:   uri,
		})
	}
	return out
}

// fixEmail salvages an address from a malformed email field: one trailing
// period is dropped, then the first valid space-separated part wins.
func fixEmail(email string) (string, bool) {
	email = strings.TrimSuffix(email, ".")
	for _, part := range strings.Split(email, " ") {
		if schemaEmail.MatchString(part) {
			return part, true
		}
	}
	return "", false
}
