package pass1

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/btraven00/pub2agents/internal/publication"
)

// document is the working state for one (publication, title segment) pair.
// It is built fresh for every result and discarded afterwards.
type document struct {
	tp  TextProcessor
	idf IDF
	lex *compiledLexicon
	log *log.Logger

	pub *publication.Publication
	req Request

	title    string
	abstract string
	fulltext string

	titleWithoutLinks    string
	abstractWithoutLinks string

	sentences []string
	tokens    [][]Token

	scores  *termTable
	surface map[string]string

	seg     Segment
	acronym string

	titleAbstractLinks []string
	fulltextLinks      []string
	linksAbstract      *linkTable
	linksFulltext      *linkTable
	fromAbstractLinks  []string
}

func (e *Engine) newDocument(pub *publication.Publication, req Request, rest string, seg Segment, acronym string) *document {
	abstract := pub.Abstract
	if len(req.URLs) > 0 {
		abstract = strings.Join(req.URLs, " ") + " . " + abstract
	}
	if req.Name != "" {
		abstract = req.Name + " . " + abstract
	}

	d := &document{
		tp:       e.tp,
		idf:      e.idf,
		lex:      e.lex,
		log:      e.log,
		pub:      pub,
		req:      req,
		title:    pub.Title,
		abstract: abstract,
		fulltext: pub.Fulltext,
		scores:   newTermTable(),
		surface:  make(map[string]string),
		seg:      seg,
		acronym:  acronym,
	}

	d.titleWithoutLinks = e.tp.RemoveLinks(d.title)
	d.abstractWithoutLinks = e.tp.RemoveLinks(d.abstract)

	restWithoutLinks := strings.TrimSpace(e.tp.RemoveLinks(rest))
	d.sentences = e.tp.Sentences(sentenceText(restWithoutLinks, d.abstractWithoutLinks))
	d.tokens = make([][]Token, len(d.sentences))
	for i, sentence := range d.sentences {
		d.tokens[i] = e.tp.Tokens(sentence)
	}
	return d
}

func (d *document) score() {
	for _, s := range scoringStages {
		s(d)
	}
}

// linkBoost extracts the links of the publication, associates them with
// candidate terms and boosts the terms that got links. Links in the abstract
// that matched nothing inject the name derived from the link itself.
func linkBoost(d *document) {
	d.titleAbstractLinks = append(append([]string(nil), d.tp.Links(d.title)...), d.tp.Links(d.abstract)...)
	d.fulltextLinks = append([]string(nil), d.tp.Links(d.fulltext)...)

	allLinks := make([]string, 0, len(d.titleAbstractLinks)+len(d.fulltextLinks))
	for _, link := range d.titleAbstractLinks {
		allLinks = append(allLinks, stripLinkStart(link))
	}
	for _, link := range d.fulltextLinks {
		allLinks = append(allLinks, stripLinkStart(link))
	}

	d.titleAbstractLinks = BreakLinks(d.titleAbstractLinks, allLinks)
	d.fulltextLinks = BreakLinks(d.fulltextLinks, allLinks)
	d.titleAbstractLinks, d.fulltextLinks = reconcileLinks(d.titleAbstractLinks, d.fulltextLinks, d.req.URLs)

	keys := d.scores.terms()
	d.linksAbstract = d.associate(d.titleAbstractLinks, keys)
	d.linksFulltext = d.associate(d.fulltextLinks, keys)

	for _, key := range d.linksAbstract.keys {
		v, _ := d.scores.get(key)
		score := v * linkMultiplierAbstract * float64(len(d.linksAbstract.get(key)))
		if score > linkMultiplierMinimum {
			d.scores.set(key, score)
		} else {
			d.scores.set(key, linkMultiplierMinimum)
		}
	}

	d.augmentFromLinks()

	if len(d.fromAbstractLinks) > 0 {
		for _, link := range d.fulltextLinks {
			fromLink := FromLink(d.tp, d.idf, d.lex.hostIgnore, link)
			if fromLink == "" {
				continue
			}
			key := joinProcessed(d.tp.Tokens(fromLink), " ")
			if key == "" {
				continue
			}
			if containsString(d.fromAbstractLinks, key) {
				d.linksFulltext.add(key, link)
			}
		}
	}

	for _, key := range d.linksFulltext.keys {
		n := 0
		for _, link := range d.linksFulltext.get(key) {
			if !linkTwoPart.MatchString(link) {
				n++
			}
		}
		if n == 0 {
			continue
		}
		if n > 2 {
			n = 2
		}
		if v, ok := d.scores.get(key); ok {
			d.scores.set(key, v*linkMultiplierFulltext*float64(n))
		}
	}
}

// augmentFromLinks handles abstract links that no candidate claimed. The
// first such link boosts every existing score, but only if no abstract link
// matched at all. Each unclaimed link then contributes the name derived from
// it as a candidate of its own.
func (d *document) augmentFromLinks() {
	generic := d.linksAbstract.empty()

	for _, link := range d.titleAbstractLinks {
		if linkTwoPart.MatchString(link) {
			continue
		}
		present := false
		for _, key := range d.linksAbstract.keys {
			if containsString(d.linksAbstract.get(key), link) && !containsString(d.fromAbstractLinks, key) {
				present = true
				break
			}
		}
		if present {
			continue
		}

		if generic {
			d.scores.scaleAll(linkMultiplierAugment)
			generic = false
		}

		fromLink := FromLink(d.tp, d.idf, d.lex.hostIgnore, link)
		if fromLink == "" {
			continue
		}
		tokens := d.tp.Tokens(fromLink)
		key := joinProcessed(tokens, " ")
		if key == "" {
			continue
		}
		if !d.scores.has(key) {
			d.fromAbstractLinks = append(d.fromAbstractLinks, key)
			d.surface[key] = joinSurface(tokens, " ")
		}
		d.scores.multiply(key, linkMultiplierNew/float64(len(tokens)))
		d.linksAbstract.add(key, link)
	}
}
