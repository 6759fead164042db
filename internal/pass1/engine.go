package pass1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/btraven00/pub2agents/internal/logger"
	"github.com/btraven00/pub2agents/internal/publication"
)

// ErrSkipped is returned for publications over the batch size limits.
var ErrSkipped = errors.New("publication skipped")

type compiledLexicon struct {
	hostIgnore []string

	beforeTier1, beforeTier2, beforeTier3 wordSet
	afterTier1, afterTier2, afterTier3    wordSet
}

// Engine scores publications and builds their suggestions. It only reads its
// collaborators, so one Engine can serve concurrent calls.
type Engine struct {
	tp  TextProcessor
	idf IDF
	lex *compiledLexicon
	log *log.Logger

	abstractMax int
	fulltextMax int
	explain     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for sanitisation and link repair events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithLimits overrides the batch-mode abstract and full text length limits.
func WithLimits(abstract, fulltext int) Option {
	return func(e *Engine) {
		e.abstractMax = abstract
		e.fulltextMax = fulltext
	}
}

// WithExplain makes every result carry its n best scored terms.
func WithExplain(n int) Option {
	return func(e *Engine) {
		e.explain = n
	}
}

// NewEngine builds an engine. Trigger words of the lexicon are normalised
// with tp once here so that they compare against processed tokens.
func NewEngine(tp TextProcessor, idf IDF, lexicon Lexicon, opts ...Option) *Engine {
	e := &Engine{
		tp:          tp,
		idf:         idf,
		abstractMax: AbstractMaxLength,
		fulltextMax: FulltextMaxLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.New("pass1")
	}

	processed := func(words []string) wordSet {
		var out []string
		for _, w := range words {
			if p := joinProcessed(tp.Tokens(w), " "); p != "" {
				out = append(out, p)
			}
		}
		return newWordSet(out)
	}
	e.lex = &compiledLexicon{
		hostIgnore:  append([]string(nil), lexicon.HostIgnore...),
		beforeTier1: processed(lexicon.BeforeTier1),
		beforeTier2: processed(lexicon.BeforeTier2),
		beforeTier3: processed(lexicon.BeforeTier3),
		afterTier1:  processed(lexicon.AfterTier1),
		afterTier2:  processed(lexicon.AfterTier2),
		afterTier3:  processed(lexicon.AfterTier3),
	}
	return e
}

// Process runs the whole extraction for one publication and returns one
// result per distinct name segment of its title. In batch mode publications
// over the size limits yield ErrSkipped.
func (e *Engine) Process(pub *publication.Publication, req Request) ([]*Result, error) {
	if pub == nil {
		return nil, errors.New("nil publication")
	}
	if req.Batch {
		if n := pub.AbstractLength(); n > e.abstractMax {
			return nil, fmt.Errorf("%w: length of abstract (%d) is larger than allowed (%d)", ErrSkipped, n, e.abstractMax)
		}
		if n := pub.FulltextLength(); n > e.fulltextMax {
			return nil, fmt.Errorf("%w: length of fulltext (%d) is larger than allowed (%d)", ErrSkipped, n, e.fulltextMax)
		}
	}

	seg := SegmentTitle(e.tp, pub.Title)
	if len(seg.Segments) == 0 {
		return []*Result{e.makeResult(pub, req, seg.Rest, Segment{}, "", nil, nil)}, nil
	}

	processed := make([]string, len(seg.Segments))
	for i, s := range seg.Segments {
		processed[i] = joinProcessed(e.tp.Tokens(s.Extracted), " ")
	}

	var (
		results []*Result
		done    []string
	)
	for i, s := range seg.Segments {
		if containsString(done, processed[i]) {
			continue
		}
		others := []string{}
		for _, other := range seg.Segments {
			if other.Extracted != s.Extracted {
				others = append(others, other.Extracted)
			}
		}
		var processedOthers []string
		for _, p := range processed {
			if p != processed[i] {
				processedOthers = append(processedOthers, p)
			}
		}
		results = append(results, e.makeResult(pub, req, seg.Rest, s, seg.Acronym, others, processedOthers))
		done = append(done, processed[i])
	}
	return results, nil
}

// Explain scores pub for the title segment at index and returns the n best
// terms. A negative index scores without any segment.
func (e *Engine) Explain(pub *publication.Publication, req Request, index, n int) []ScoredTerm {
	seg := SegmentTitle(e.tp, pub.Title)
	var (
		s       Segment
		acronym string
	)
	if index >= 0 && index < len(seg.Segments) {
		s = seg.Segments[index]
		acronym = seg.Acronym
	}
	d := e.newDocument(pub, req, seg.Rest, s, acronym)
	d.score()
	return topTerms(d.scores.sorted(), n)
}

func topTerms(sorted []ScoredTerm, n int) []ScoredTerm {
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func (e *Engine) makeResult(pub *publication.Publication, req Request, rest string, seg Segment, acronym string, others, processedOthers []string) *Result {
	d := e.newDocument(pub, req, rest, seg, acronym)
	d.score()
	sorted := d.scores.sorted()

	r := e.newResult(pub, seg, acronym, others)
	r.AbstractSentences = e.tp.Sentences(pub.Abstract)

	if req.Name != "" {
		d.surface[joinProcessed(e.tp.Tokens(req.Name), " ")] = strings.Join(e.tp.Extract(req.Name), " ")
	}

	d.selectSuggestions(r, sorted, processedOthers)
	d.attachLeftovers(r)
	d.attachProvided(r)

	for _, s := range r.Suggestions {
		s.LinksAbstract = e.FixLinks(s.LinksAbstract)
		s.LinksFulltext = e.FixLinks(s.LinksFulltext)
	}

	if e.explain > 0 {
		r.Explain = topTerms(sorted, e.explain)
	}
	return r
}
