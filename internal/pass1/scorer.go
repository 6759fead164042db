package pass1

import (
	"math"
	"strings"
)

// stage is one step of the scoring pipeline. Stages run in a fixed order over
// the same document and mutate its score table.
type stage func(d *document)

var scoringStages = []stage{
	baseScore,
	titleBoost,
	triggerBoost,
	linkBoost,
}

// baseScore scores every 1..5-gram of the title remainder and abstract. A
// unigram is worth its squared IDF, a longer n-gram the product of its
// unigram scores halved. Repeated n-grams sum up.
func baseScore(d *document) {
	within := make(map[string][]string)
	begin := make(map[string][]string)

	for i, sentence := range d.tokens {
		for j := 0; j < compoundWords; j++ {
			for k := 0; k < len(sentence)-j; k++ {
				extracted := sentence[k].Surface
				processed := sentence[k].Processed
				for l := k + 1; l <= k+j; l++ {
					extracted += " " + sentence[l].Surface
					processed += " " + sentence[l].Processed
				}

				var value float64
				if j == 0 {
					value = math.Pow(d.idf.Get(sentence[k].Processed), queryIDFScaling)
				} else {
					value, _ = d.scores.get(sentence[k].Processed)
					for l := k + 1; l <= k+j; l++ {
						v, _ := d.scores.get(sentence[l].Processed)
						value *= v
					}
					value /= compoundDivider
				}
				d.scores.add(processed, value)

				if i == 0 || k == 0 {
					if !containsString(begin[processed], extracted) {
						begin[processed] = append(begin[processed], extracted)
					}
				} else {
					within[processed] = append(within[processed], extracted)
				}
			}
		}
	}

	for _, term := range d.scores.terms() {
		d.surface[term] = mostFrequentForm(within[term], begin[term])
	}
}

// mostFrequentForm picks the surface rendering seen most often. Forms found
// inside sentences are counted first and so win ties against sentence-initial
// forms, each distinct initial form counting once.
func mostFrequentForm(within, begin []string) string {
	var forms []string
	counts := make(map[string]int)
	for _, f := range append(append([]string(nil), within...), begin...) {
		if _, ok := counts[f]; !ok {
			forms = append(forms, f)
		}
		counts[f]++
	}
	best := ""
	bestCount := 0
	for _, f := range forms {
		if counts[f] > bestCount {
			best = f
			bestCount = counts[f]
		}
	}
	return best
}

// titleBoost injects the title segment, its pruned form and its acronym.
func titleBoost(d *document) {
	if d.seg.Extracted != "" && d.seg.Pruned != "" {
		existing := d.scoreTitle(d.seg.Extracted, false)
		if !existing && d.seg.Pruned != d.seg.Extracted {
			d.scoreTitle(d.seg.Pruned, true)
		}
	}
	if d.acronym != "" {
		d.scoreTitle(d.acronym, false)
	}
}

// scoreTitle multiplies an existing candidate by the title multiplier, never
// leaving it below the multiplier itself. A new candidate is inserted at the
// multiplier divided by its word count unless it is only a pruned variant.
// It reports whether the candidate already existed.
func (d *document) scoreTitle(title string, pruned bool) bool {
	tokens := d.tp.Tokens(title)
	if len(tokens) == 0 {
		return false
	}
	key := joinProcessed(tokens, " ")
	if v, ok := d.scores.get(key); ok {
		v *= toolTitleMultiplier
		if v > toolTitleMultiplier {
			d.scores.set(key, v)
		} else {
			d.scores.set(key, toolTitleMultiplier)
		}
		return true
	}
	if !pruned {
		d.scores.set(key, toolTitleMultiplier/float64(len(tokens)))
		d.surface[key] = title
	}
	return false
}

type tiers struct {
	tier1, tier2, tier3 bool
}

func (t tiers) any() bool {
	return t.tier1 || t.tier2 || t.tier3
}

func (t tiers) multiplier() float64 {
	switch {
	case t.tier1:
		return tier1Multiplier
	case t.tier2:
		return tier2Multiplier
	case t.tier3:
		return tier3Multiplier
	}
	return 1
}

// triggerBoost multiplies the candidates next to trigger words. Words before
// a name ("called", "introduce") boost what follows them, words after a name
// ("software", "tool") boost what precedes them. An acronym next to the
// trigger takes a doubled boost.
func triggerBoost(d *document) {
	applied := make(map[string]float64)

	for i, sentence := range d.tokens {
		var acronyms []int
		acronymsDone := false
		loadAcronyms := func() {
			if !acronymsDone {
				acronyms = Acronyms(d.tp, d.sentences[i])
				acronymsDone = true
			}
		}
		n := len(sentence)

		for j, token := range sentence {
			word := token.Processed

			before := tiers{d.lex.beforeTier1.has(word), d.lex.beforeTier2.has(word), d.lex.beforeTier3.has(word)}
			if j+1 < n && before.any() {
				loadAcronyms()
				acronym, found := "", false
				switch {
				case containsIndex(acronyms, j+1), containsIndex(acronyms, -(j + 1)):
					acronym, found = sentence[j+1].Processed, true
				case j+2 < n && (containsIndex(acronyms, j+2) || containsIndex(acronyms, -(j+2))):
					acronym, found = sentence[j+2].Processed, true
				}
				if found {
					d.boostTrigger(applied, acronym, before, true)
				} else {
					next := sentence[j+1].Processed
					d.boostTrigger(applied, next, before, false)
					if j+2 < n {
						found = false
						for k := 1; k <= compoundWords && j+2+k < n; k++ {
							if containsIndex(acronyms, -(j + 2 + k)) {
								d.boostTrigger(applied, sentence[j+2+k].Processed, before, false)
								found = true
								break
							}
						}
						if !found {
							nextNext := sentence[j+2].Processed
							d.boostTrigger(applied, nextNext, before, false)
							d.boostTrigger(applied, next+" "+nextNext, before, false)
						}
					}
				}
			}

			after := tiers{d.lex.afterTier1.has(word), d.lex.afterTier2.has(word), d.lex.afterTier3.has(word)}
			if j-1 >= 0 && after.any() {
				loadAcronyms()
				acronym, found := "", false
				switch {
				case containsIndex(acronyms, j-1), containsIndex(acronyms, -(j - 1)):
					acronym, found = sentence[j-1].Processed, true
				case j-2 >= 0 && (containsIndex(acronyms, j-2) || containsIndex(acronyms, -(j-2))):
					acronym, found = sentence[j-2].Processed, true
				}
				if found {
					d.boostTrigger(applied, acronym, after, true)
				} else {
					prev := sentence[j-1].Processed
					d.boostTrigger(applied, prev, after, false)
					if j-2 >= 0 {
						found = false
						for k := 1; k <= compoundWords && j-2-k >= 0; k++ {
							if containsIndex(acronyms, -(j - 2 - k)) {
								d.boostTrigger(applied, sentence[j-2-k].Processed, after, false)
								found = true
								break
							}
						}
						if !found {
							prevPrev := sentence[j-2].Processed
							d.boostTrigger(applied, prevPrev, after, false)
							d.boostTrigger(applied, prevPrev+" "+prev, after, false)
						}
					}
				}
			}
		}
	}
}

// boostTrigger applies one trigger multiplier to term. The product of all
// trigger multipliers applied to a term is capped at beforeAfterLimit.
func (d *document) boostTrigger(applied map[string]float64, term string, t tiers, twice bool) {
	total, ok := applied[term]
	if !ok {
		total = 1
	}
	multiplier := t.multiplier()
	if twice {
		multiplier *= 2
	}
	if total*multiplier > beforeAfterLimit {
		multiplier = beforeAfterLimit / total
	}
	applied[term] = total * multiplier
	if v, ok := d.scores.get(term); ok {
		d.scores.set(term, v*multiplier)
	}
}

func sentenceText(titleRest, abstract string) string {
	if titleRest == "" {
		return abstract
	}
	return titleRest + ". " + abstract
}

func hasSpace(s string) bool {
	return strings.Contains(s, " ")
}
