package pass1

import "regexp"

// Size limits applied in batch mode.
const (
	AbstractMaxLength = 5000
	FulltextMaxLength = 200000
)

const (
	titleSeparatorMaxWords   = 5
	titleStandaloneMaxChars  = 18
	compoundWords            = 5
	compoundDivider          = 2.0
	queryIDFScaling          = 2.0
	toolTitleMultiplier      = 24.0
	tier1Multiplier          = 6.0
	tier2Multiplier          = 3.0
	tier3Multiplier          = 1.5
	beforeAfterLimit         = 72.0
	pathIDFMin               = 0.5
	pathIDFMin2              = 0.24
	linkMultiplierAbstract   = 24.0
	linkMultiplierMinimum    = linkMultiplierAbstract / 2
	linkMultiplierAugment    = linkMultiplierAbstract / 4
	linkMultiplierNew        = linkMultiplierAbstract / 2
	linkMultiplierFulltext   = linkMultiplierAbstract / 2
	topScoreLimit            = 24.0
	SuggestionLimit          = 5
	schemaNameMin            = 1
	schemaNameMax            = 100
	schemaCreditNameMin      = 1
	schemaCreditNameMax      = 100
	schemaNameChars          = ` A-Za-z0-9+.,\-_:;()`
	leftoverAvailable        = `(available|availability|accessible|accessed)`
	toolTitleGeneral         = `database|data|web|server|webserver|web-server|package|agentkit|agentbox|suite|agentsuite|agents|agent|kit|framework|workbench|pipeline|software|program|platform|project|resource|r`
	downloadExtPkg           = `gz|zip|bz2|tar|tgz|7z|rar|xz`
	downloadExtBin           = `jar|exe`
	documentationCiteEither  = `citing`
	documentationGeneral     = `about|read[-_]?me|information|overview|description|features`
	documentationInstall     = `install|installation|installing`
	documentationQuick       = `quick[-_]?tour|getting[-_]?started|beginners?[-_]?guide|start[-_]?guide|quick[-_]?(start|guide)`
	documentationTermsEither = `terms[-_]?of[-_]?use|conditions[-_]?of[-_]?use`
	documentationTraining    = `training|exercise`
	documentationTutorial    = `tutorial|example|guided[-_]?tour`
	documentationEither      = `vignette|manual|documentation|how[-_]?to|introduction|instruction|users?[-_]?guide`
)

// Title segmentation.
var (
	titleSeparator     = regexp.MustCompile(`(?i)(: | - | \x{2014} | \x{2013} |--a |--an |--|-a |-an |:a |:an |, a |, an |\n|\r|\|)`)
	toolTitleInvalid   = regexp.MustCompile(`(?i)^(correction|erratum)( to)?$`)
	toolTitleSeparator = regexp.MustCompile(`(?i),? (and|&) `)
	toolTitleSplit     = regexp.MustCompile(`(?i)(,? (and|&) )|(, )`)
	toolTitlePrune     = regexp.MustCompile(`(?i)^(update|v|ver|version|(v|ver|version)?\p{N}+([.-]\p{N}+)*|` + toolTitleGeneral + `)$`)
	toolTitleTrim      = regexp.MustCompile(`( ?(db|v|ver|version|update))*( ?\p{N}{0,4})?( ?(db|v|ver|version|update))*$`)
	processedVersion   = regexp.MustCompile(` ?([v](er(sion)?)?)? ?\p{N}+$`)
	acronymStop        = regexp.MustCompile(`(?i)(http:|https:|ftp:|;|, |: )`)
	whitespace         = regexp.MustCompile(`[\p{Z}\p{Cc}\p{Cf}]+`)
	internalTrim       = regexp.MustCompile(`  +`)
)

// Link comparison and name derivation.
var (
	schemaStart        = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	knownSchemaStart   = regexp.MustCompile(`(?i)^(http|https|ftp)://`)
	linkCompareStart   = regexp.MustCompile(`(?i)^((http|https|ftp)://)?(www\.)?`)
	linkCompareEnd     = regexp.MustCompile(`/+$`)
	linkCompareIndex   = regexp.MustCompile(`/+index\.[\p{L}\p{N}]+$`)
	linkCompareRest    = regexp.MustCompile(`^(\p{Ll}\p{Lu}|./*[.]?["(\[{<>}\])]+[.]?|.\.\p{Lu}[\p{L}\p{N}'-]|//*\.|./+\.|./*--|./*[^/]+@[^/]+\.[^/]+)[\p{L}\p{N}'-]*$`)
	linkCompareSchema  = regexp.MustCompile(`(http|https|ftp)://`)
	linkWWW            = regexp.MustCompile(`^[^.]*www[^.]*\.`)
	linkEndRemove      = regexp.MustCompile(`([.?]\p{Lu}|--)[\p{L}\p{N}'-]*$`)
	linkEmailEnd       = regexp.MustCompile(`@[a-zA-Z0-9.-]+\.[a-z]{2,}$`)
	linkEmailRemove    = regexp.MustCompile(`\.[^/]+@[a-zA-Z0-9.-]+\.[a-z]{2,}$`)
	linkTwoPart        = regexp.MustCompile(`^[^./]+\.[^./]+$`)
	pathQuery          = regexp.MustCompile(`\?.*=`)
	pathPeriod         = regexp.MustCompile(`(\.[^\p{N}][^.]*$)|(\.$)`)
	pathNumber         = regexp.MustCompile(`^[vV-]?\p{N}+(\.\p{N}+)?$`)
	pathOneUppercase   = regexp.MustCompile(`^..*\p{Lu}.*$`)
	pathUni            = regexp.MustCompile(`^uni([\p{L}\p{N}]?-.*|[\p{L}\p{N}]{0,2})$`)
	pathSplit          = regexp.MustCompile(`[-_]`)
	goodStart          = regexp.MustCompile(`^(\p{Lu}|.[^\p{Ll}-]|.-[^\p{Ll}]|.[^-]*[^\p{L}-])[^-]*$`)
	goodEnd            = regexp.MustCompile(`^(.*[^\p{Ll}]|.*[^\p{Ll}-].|\p{Lu}.*|..)$`)
	goodStartMulti     = regexp.MustCompile(`^[^ ]+( \p{Lu}[^ ]*)*( v| ver| version)?( \p{Lu}[^ ]*| ([vV](er(sion)?)?)?\p{N}+([.-]\p{N}+)*)$`)
	toLink             = regexp.MustCompile(`^[^ ]*[^ \p{Ll}-][^ ]*( [^ ]*[^ \p{Ll}-][^ ]*)*$`)
	notToLink          = regexp.MustCompile(`^[^ ]( [^ ])*$`)
	leftoverExclude    = regexp.MustCompile(`(?i)(dataset|(^|[^\p{L}-])data([^\p{L}-]|$)|doi\.org/10\.(5061|21227|17632|7910|7946|15468))`)
	fixLink            = regexp.MustCompile(`([.]?["(\[{<>}\])]+[.]?|\.\p{Lu}|--)[\p{L}\p{N}'-]+$`)
	fixLinkKeep1       = regexp.MustCompile(`(\.[\p{Ll}\p{N}]+)\p{Lu}[\p{L}\p{N}'-]*$`)
	fixLinkKeep2       = regexp.MustCompile(`(/)\.[\p{L}\p{N}'-]*$`)
	fixLinkEmail1      = regexp.MustCompile(`[.]?[^/.]+@[^/]+\.[^/]+$`)
	fixLinkEmail2      = regexp.MustCompile(`[.]?[^/.]+\.[^/.]+@[^/]+\.[^/]+$`)
	fixLinkEmail3      = regexp.MustCompile(`[.]?[^/.]+\.[^/.]+\.[^/.]+@[^/]+\.[^/]+$`)
	urlFix             = regexp.MustCompile(`^([-\p{L}\p{N};/:@&=+$,_.!~*'()%]+(\?[-\p{L}\p{N};/?:@&=+$,_.!~*'()%]*)?(#[-\p{L}\p{N};/?:@&=+$,_.!~*'()%]*)?)`)
)

// Registry schema constraints.
var (
	schemaNamePattern     = regexp.MustCompile(`^[` + schemaNameChars + `]*$`)
	schemaNameInvalidChar = regexp.MustCompile(`[^` + schemaNameChars + `]`)
	schemaNameLetter      = regexp.MustCompile(`[A-Za-z]`)
	schemaNameQuotes      = regexp.MustCompile(`([\p{L}\p{N}])['"\x{60}\x{B4}\x{2018}\x{2019}\x{2BC}\x{201B}\x{91}\x{92}\x{AB}\x{BB}\x{201A}\x{201C}\x{201D}\x{201E}\x{201F}\x{2039}\x{203A}\x{2E42}]+([\p{L}\p{N}])`)
	schemaPMID            = regexp.MustCompile(`^[1-9][0-9]{0,8}$`)
	schemaPMCID           = regexp.MustCompile(`^(PMC)[1-9][0-9]{0,8}$`)
	schemaDOI             = regexp.MustCompile(`^10\.[0-9]{4,9}/[\[\]<>A-Za-z0-9:;)(_/.-]+$`)
	schemaOrcid           = regexp.MustCompile(`^https?://orcid\.org/[0-9]{4}-[0-9]{4}-[0-9]{4}-[0-9]{3}[0-9X]$`)
	schemaEmail           = regexp.MustCompile(`^[A-Za-z0-9_]+([-+.'][A-Za-z0-9_]+)*@[A-Za-z0-9_]+([-.][A-Za-z0-9_]+)*\.[A-Za-z0-9_]+([-.][A-Za-z0-9_]+)*$`)
	schemaURL             = regexp.MustCompile(`^https?://[^\s/$.?#]*\.[^\s]*$`)
)

var schemaNameReplacements = [][2]string{
	{"\u2010", "-"},
	{"&", " and "},
	{"@", "a"},
	{"α", "a"},
	{"β", "b"},
	{"μ", "u"},
	{"µ", "u"},
	{"²", "2"},
}

// Link classification.
var (
	linkHelpdesk          = regexp.MustCompile(`(?i)(^|[^\p{L}-])(contact|contactus|help[-_]?desk)s?([^\p{L}-]|$)`)
	linkIssues            = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(github\.com/+[^/]+/+[^/]+/+issues|sourceforge\.net/+p/+[^/]+/+tickets|code\.google\.com/+(archive/+)?p/+[^/]+/+issues|bitbucket\.org/+[^/]+/+[^/]+/+issues)([^\p{L}]|$)`)
	linkListAddr          = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(sourceforge\.net/+projects/+[^/]+/+lists)([^\p{L}]|$)`)
	linkListBoth          = regexp.MustCompile(`(?i)(^|[^\p{L}-])(mailman|listinfo|mailing[-_]?lists?)([^\p{L}-]|$)`)
	linkForum             = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(groups\.google\.com|gitter\.im|sourceforge\.net/+p/+[^/]+/+discussion)([^\p{L}]|$)`)
	linkSoftwareCatalogue = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(mybiosoftware\.com|biocatalogue\.org)([^\p{L}]|$)`)
	linkRepository        = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(bioconductor\.org|github\.com|sourceforge\.net|code\.google\.com|cran\.r-project\.org|bitbucket\.org|gitlab\.com|pypi\.(python\.)?org|apps\.cytoscape\.org)([^\p{L}]|$)`)
	linkSocial            = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(twitter\.com|facebook\.com)([^\p{L}]|$)`)
	downloadSrcCode       = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(git\.bioconductor\.org|github\.com/+[^/]+/+[^/]+/+tree|sourceforge\.net/+projects/+[^/]+/+files|code\.google\.com/+(archive/+)?p/+[^/]+/+source|bitbucket\.org/+[^/]+/+[^/]+/+src)([^\p{L}]|$)`)
	downloadPkg           = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(github\.com/+[^/]+/+[^/]+/+releases|sourceforge\.net/+projects/+[^/]+/+files/+.+/+download|code\.google\.com/+(archive/+)?p/+[^/]+/+downloads|bitbucket\.org/+[^/]+/+[^/]+/+downloads|apps\.cytoscape\.org/+download)([^\p{L}]|$)`)
	downloadExtPkgRe      = regexp.MustCompile(`(?i)\.(` + downloadExtPkg + `)([^\p{L}-]|$)`)
	downloadExtBinRe      = regexp.MustCompile(`(?i)\.(` + downloadExtBin + `)([^\p{L}-]|$)`)
	downloadFTP           = regexp.MustCompile(`(?i)^ftp://`)
	downloadAPI           = regexp.MustCompile(`(?i)\.(wsdl)([^\p{L}-]|$)`)
	downloadContainer     = regexp.MustCompile(`(?i)(^|[^\p{L}-])(docker)([^\p{L}-]|$)`)
	downloadCWL           = regexp.MustCompile(`(?i)\.(cwl)([^\p{L}-]|$)`)
	downloadPage          = regexp.MustCompile(`(?i)(^|[^\p{Ll}])download(s|ing)?([^\p{Ll}]|$)`)
	docAPI                = regexp.MustCompile(`(?i)(^|[^\p{L}-])(api|apidoc)s?([^\p{L}-]|$)`)
	docCite               = regexp.MustCompile(`(?i)((^|[^\p{L}-])(references|cite|citation)s?([^\p{L}-]|$))|((` + documentationCiteEither + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationCiteEither + `))`)
	docFAQ                = regexp.MustCompile(`(?i)(^|[^\p{L}])faqs?([^\p{L}]|$)`)
	docGeneral            = regexp.MustCompile(`(?i)((` + documentationGeneral + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationGeneral + `))`)
	docInstall            = regexp.MustCompile(`(?i)((` + documentationInstall + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationInstall + `))`)
	docQuick              = regexp.MustCompile(`(?i)((` + documentationQuick + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationQuick + `))`)
	docTerms              = regexp.MustCompile(`(?i)((^|[^\p{L}-])(terms|conditions|legal|license|copyright|copying)s?([^\p{L}-]|$))|((` + documentationTermsEither + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationTermsEither + `))`)
	docTraining           = regexp.MustCompile(`(?i)((` + documentationTraining + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationTraining + `))`)
	docTutorial           = regexp.MustCompile(`(?i)((^|[^\p{L}-])(demo|tour)s?([^\p{L}-]|$))|((` + documentationTutorial + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationTutorial + `))`)
	docManual             = regexp.MustCompile(`(?i)((^|[^\p{L}-])(usage|guide|how|use)s?([^\p{L}-]|$))|((help|doc|intro|` + documentationEither + `)s?([^\p{L}-]|$))|((^|[^\p{L}-])(` + documentationEither + `))`)
	docWiki               = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(github\.com/+[^/]+/+[^/]+/+wiki|sourceforge\.net/+p/+[^/]+/wiki|sourceforge\.net/+p/+[^/]+/+home|code\.google\.com/+(archive/+)?p/+[^/]+/+wikis?|bitbucket\.org/+[^/]+/+[^/]+/+wiki)([^\p{L}]|$)`)
	docExt                = regexp.MustCompile(`(?i)\.(pdf|ps|doc|docx|ppt|pptx)([^\p{L}-]|$)`)
)
