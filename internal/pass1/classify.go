package pass1

// LinkKind is the bucket a classified link falls into.
type LinkKind string

const (
	KindLink          LinkKind = "link"
	KindDownload      LinkKind = "download"
	KindDocumentation LinkKind = "documentation"
)

// Link types.
const (
	TypeSoftwareCatalogue = "Software catalogue"
	TypeIssueTracker      = "Issue tracker"
	TypeMailingList       = "Mailing list"
	TypeDiscussionForum   = "Discussion forum"
	TypeRepository        = "Repository"
	TypeHelpdesk          = "Helpdesk"
	TypeSocialMedia       = "Social media"
	TypeOther             = "Other"
)

// Download types.
const (
	TypeSoftwarePackage  = "Software package"
	TypeBinaries         = "Binaries"
	TypeAPISpecification = "API specification"
	TypeToolWrapperCWL   = "Tool wrapper (CWL)"
	TypeContainerFile    = "Container file"
	TypeSourceCode       = "Source code"
	TypeDownloadsPage    = "Downloads page"
)

// Documentation types.
const (
	TypeAPIDocumentation         = "API documentation"
	TypeFAQ                      = "FAQ"
	TypeTrainingMaterial         = "Training material"
	TypeInstallationInstructions = "Installation instructions"
	TypeQuickStartGuide          = "Quick start guide"
	TypeUserManual               = "User manual"
	TypeGeneral                  = "General"
	TypeCitationInstructions     = "Citation instructions"
	TypeTermsOfUse               = "Terms of use"
)

// BioLink is a URL with the registry link type it was classified as.
type BioLink struct {
	URL  string   `json:"url"`
	Kind LinkKind `json:"kind"`
	Type string   `json:"type"`
}

type linkRule struct {
	match func(string) bool
	kind  LinkKind
	typ   string
}

var documentationRules = []linkRule{
	{docAPI.MatchString, KindDocumentation, TypeAPIDocumentation},
	{docFAQ.MatchString, KindDocumentation, TypeFAQ},
	{docTraining.MatchString, KindDocumentation, TypeTrainingMaterial},
	{docTutorial.MatchString, KindDocumentation, TypeTrainingMaterial},
	{docInstall.MatchString, KindDocumentation, TypeInstallationInstructions},
	{docQuick.MatchString, KindDocumentation, TypeQuickStartGuide},
	{docManual.MatchString, KindDocumentation, TypeUserManual},
	{docGeneral.MatchString, KindDocumentation, TypeGeneral},
	{docCite.MatchString, KindDocumentation, TypeCitationInstructions},
	{docTerms.MatchString, KindDocumentation, TypeTermsOfUse},
	{docWiki.MatchString, KindDocumentation, TypeUserManual},
}

var downloadRules = []linkRule{
	{downloadExtPkgRe.MatchString, KindDownload, TypeSoftwarePackage},
	{downloadExtBinRe.MatchString, KindDownload, TypeBinaries},
	{downloadAPI.MatchString, KindDownload, TypeAPISpecification},
	{downloadCWL.MatchString, KindDownload, TypeToolWrapperCWL},
	{downloadContainer.MatchString, KindDownload, TypeContainerFile},
	{downloadFTP.MatchString, KindDownload, TypeBinaries},
	{downloadPkg.MatchString, KindDownload, TypeSoftwarePackage},
	{downloadSrcCode.MatchString, KindDownload, TypeSourceCode},
}

var afterDocumentationRules = []linkRule{
	{linkIssues.MatchString, KindLink, TypeIssueTracker},
	{linkListAddr.MatchString, KindLink, TypeMailingList},
	{linkForum.MatchString, KindLink, TypeDiscussionForum},
	{linkRepository.MatchString, KindLink, TypeRepository},
	{linkListBoth.MatchString, KindLink, TypeMailingList},
	{linkHelpdesk.MatchString, KindLink, TypeHelpdesk},
	{linkSocial.MatchString, KindLink, TypeSocialMedia},
	{downloadPage.MatchString, KindDownload, TypeDownloadsPage},
}

func firstRule(rules []linkRule, link string) (linkRule, bool) {
	for _, r := range rules {
		if r.match(link) {
			return r, true
		}
	}
	return linkRule{}, false
}

// ClassifyLink assigns one link its kind and type. The cascade order matters:
// catalogues, then document extensions, then download signals, then
// documentation words, then the remaining link types. Empty links are not
// classified.
func ClassifyLink(link string) (BioLink, bool) {
	if link == "" {
		return BioLink{}, false
	}
	if linkSoftwareCatalogue.MatchString(link) {
		return BioLink{link, KindLink, TypeSoftwareCatalogue}, true
	}
	if docExt.MatchString(link) {
		if r, ok := firstRule(documentationRules, link); ok {
			return BioLink{link, r.kind, r.typ}, true
		}
		return BioLink{link, KindDocumentation, TypeUserManual}, true
	}
	for _, rules := range [][]linkRule{downloadRules, documentationRules, afterDocumentationRules} {
		if r, ok := firstRule(rules, link); ok {
			return BioLink{link, r.kind, r.typ}, true
		}
	}
	return BioLink{link, KindLink, TypeOther}, true
}

// ClassifyLinks classifies every link in order.
func ClassifyLinks(links []string) []BioLink {
	out := make([]BioLink, 0, len(links))
	for _, link := range links {
		if l, ok := ClassifyLink(link); ok {
			out = append(out, l)
		}
	}
	return out
}

// Buckets splits the links of all suggestions into webpage URLs (links and
// downloads) and documentation URLs. Provided URLs found in neither bucket
// are classified and appended too.
func Buckets(results []*Result, provided []string) (web, doc []string) {
	add := func(links []BioLink) {
		for _, l := range links {
			if l.Kind == KindDocumentation {
				doc = append(doc, l.URL)
			} else {
				web = append(web, l.URL)
			}
		}
	}

	for _, r := range results {
		for _, s := range r.Suggestions {
			add(ClassifyLinks(s.LinksAbstract))
			add(ClassifyLinks(s.LinksFulltext))
		}
	}

	var missing []string
	for _, p := range provided {
		trimmed := TrimURL(p)
		seen := false
		for _, u := range web {
			if TrimURL(u) == trimmed {
				seen = true
				break
			}
		}
		for _, u := range doc {
			if TrimURL(u) == trimmed {
				seen = true
				break
			}
		}
		if !seen {
			missing = append(missing, prependHTTP(p))
		}
	}
	add(ClassifyLinks(missing))
	return web, doc
}

// WithScheme prefixes http:// to links without a scheme.
func WithScheme(link string) string {
	return prependHTTP(link)
}
