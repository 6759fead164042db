package pass1

import (
	"reflect"
	"strings"
	"testing"
)

func TestTermTableSortedIsStable(t *testing.T) {
	table := newTermTable()
	table.set("a", 1)
	table.set("b", 2)
	table.set("c", 2)
	table.add("d", 1)
	table.multiply("e", 0.5)
	table.multiply("b", 1)

	var got []string
	for _, st := range table.sorted() {
		got = append(got, st.Term)
	}
	expected := []string{"b", "c", "a", "d", "e"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestBoostTriggerIsCapped(t *testing.T) {
	d := newTestDocument()
	d.scores.set("tool", 1)
	applied := map[string]float64{}

	steps := []struct {
		tiers    tiers
		twice    bool
		expected float64
	}{
		{tiers{tier1: true}, false, 6},
		{tiers{tier1: true}, false, 36},
		{tiers{tier1: true}, true, 72},
		{tiers{tier3: true}, false, 72},
	}
	for i, step := range steps {
		d.boostTrigger(applied, "tool", step.tiers, step.twice)
		if got, _ := d.scores.get("tool"); got != step.expected {
			t.Errorf("step %d: expected score %v, got %v", i, step.expected, got)
		}
	}

	d.boostTrigger(applied, "missing", tiers{tier2: true}, false)
	if d.scores.has("missing") {
		t.Error("boosting an unscored term must not add it")
	}
}

func TestSchemaName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"valid name", "g:Profiler", "g:Profiler", true},
		{"greek letter", "α-Tool", "a-Tool", true},
		{"trademark", "Tool™", "ToolTM", true},
		{"accent", "José", "Jose", true},
		{"quote between letters", "Bob's tool", "Bob s tool", true},
		{"ampersand", "R&D", "R and D", true},
		{"empty", "", "+", false},
		{"no letters", "!!!", "+", false},
		{"digits only", "42", "42", false},
		{"too long", strings.Repeat("a", 120), strings.Repeat("a", 96) + " ...", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, _, ok := SchemaName(tc.input)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("SchemaName(%q) = %q, %v, want %q, %v", tc.input, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestSchemaNameReportsChanges(t *testing.T) {
	_, change, _ := SchemaName("g:Profiler")
	if change != (NameChange{}) {
		t.Errorf("expected no change, got %+v", change)
	}
	_, change, _ = SchemaName("")
	if !change.Filled || change.Rewritten {
		t.Errorf("expected fill only, got %+v", change)
	}
	_, change, _ = SchemaName(strings.Repeat("b", 101))
	if !change.Pruned {
		t.Errorf("expected prune, got %+v", change)
	}
}

func TestSelectSuggestions(t *testing.T) {
	testCases := []struct {
		name     string
		sorted   []ScoredTerm
		others   []string
		surface  map[string]string
		request  Request
		expected []string
	}{
		{
			name:     "stops far below the top score",
			sorted:   []ScoredTerm{{"a", 100}, {"b", 90}, {"c", 3}, {"d", 2}, {"e", 1}},
			expected: []string{"a", "b"},
		},
		{
			name:     "limited to five",
			sorted:   []ScoredTerm{{"a", 10}, {"b", 9}, {"c", 8}, {"d", 7}, {"e", 6}, {"f", 5}},
			expected: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "sibling segments skipped",
			sorted:   []ScoredTerm{{"a", 10}, {"b", 9}, {"c", 8}},
			others:   []string{"a"},
			expected: []string{"b", "c"},
		},
		{
			name:     "invalid names skipped",
			sorted:   []ScoredTerm{{"x", 10}, {"a", 9}},
			surface:  map[string]string{"x": "!!!"},
			expected: []string{"a"},
		},
		{
			name:     "provided name forced in",
			sorted:   []ScoredTerm{{"a", 100}, {"b", 90}, {"zeta", 1}},
			surface:  map[string]string{"zeta": "Zeta"},
			request:  Request{Name: "Zeta"},
			expected: []string{"a", "b", "zeta"},
		},
		{
			name:     "provided name without score",
			sorted:   []ScoredTerm{{"a", 100}},
			surface:  map[string]string{"zeta": "Zeta"},
			request:  Request{Name: "Zeta"},
			expected: []string{"a", "zeta"},
		},
		{
			name:     "provided name already selected",
			sorted:   []ScoredTerm{{"zeta", 100}, {"a", 90}},
			surface:  map[string]string{"zeta": "Zeta"},
			request:  Request{Name: "Zeta"},
			expected: []string{"zeta", "a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDocument()
			d.req = tc.request
			for _, st := range tc.sorted {
				d.surface[st.Term] = strings.ToUpper(st.Term)
			}
			for k, v := range tc.surface {
				d.surface[k] = v
			}

			r := &Result{}
			d.selectSuggestions(r, tc.sorted, tc.others)

			var got []string
			for _, s := range r.Suggestions {
				got = append(got, s.Processed)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestMakeSuggestionCopiesLinks(t *testing.T) {
	d := newTestDocument()
	d.surface["gprofiler"] = "g:Profiler"
	d.linksAbstract.add("gprofiler", "biit.cs.ut.ee/gprofiler")
	d.fromAbstractLinks = []string{"gprofiler"}

	s := d.makeSuggestion("gprofiler", 12, "")
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.Extracted != "g:Profiler" || s.Processed != "gprofiler" || s.Original != "" {
		t.Errorf("unexpected suggestion %+v", s)
	}
	if !s.FromAbstractLink {
		t.Error("expected FromAbstractLink")
	}
	s.LinksAbstract[0] = "changed"
	if d.linksAbstract.get("gprofiler")[0] != "biit.cs.ut.ee/gprofiler" {
		t.Error("suggestion links must not alias the link table")
	}
	if s.LinksFulltext == nil {
		t.Error("expected empty, non-nil fulltext links")
	}
}

func TestMakeSuggestionRewrittenName(t *testing.T) {
	d := newTestDocument()
	d.surface["αtool"] = "αTool"

	s := d.makeSuggestion("αtool", 1, "")
	if s == nil {
		t.Fatal("expected a suggestion")
	}
	if s.Extracted != "aTool" || s.Processed != "atool" || s.Original != "αTool" {
		t.Errorf("unexpected suggestion %+v", s)
	}
}
