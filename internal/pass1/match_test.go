package pass1

import (
	"reflect"
	"testing"
)

func TestAssociateLongestFallback(t *testing.T) {
	const link = "http://deeptoolsuite.org"

	testCases := []struct {
		name    string
		surface map[string]string
		keys    []string
		want    map[string][]string
	}{
		{
			name:    "start of host names the term",
			surface: map[string]string{"deeptool": "DeepTool"},
			keys:    []string{"deeptool"},
			want:    map[string][]string{"deeptool": {link}},
		},
		{
			name:    "longest start wins",
			surface: map[string]string{"deep": "Deep", "deeptool": "DeepTool"},
			keys:    []string{"deep", "deeptool"},
			want:    map[string][]string{"deeptool": {link}},
		},
		{
			name:    "end of host names the term",
			surface: map[string]string{"toolsuite": "ToolSuite"},
			keys:    []string{"toolsuite"},
			want:    map[string][]string{"toolsuite": {link}},
		},
		{
			name:    "start and end both attach",
			surface: map[string]string{"deeptool": "DeepTool", "toolsuite": "ToolSuite"},
			keys:    []string{"deeptool", "toolsuite"},
			want:    map[string][]string{"deeptool": {link}, "toolsuite": {link}},
		},
		{
			name:    "exact match blocks both fallbacks",
			surface: map[string]string{"deeptool": "DeepTool", "deeptoolsuite": "DeepToolSuite", "toolsuite": "ToolSuite"},
			keys:    []string{"deeptool", "deeptoolsuite", "toolsuite"},
			want:    map[string][]string{"deeptoolsuite": {link}},
		},
		{
			name:    "lower case term is no fallback",
			surface: map[string]string{"deeptool": "deeptool"},
			keys:    []string{"deeptool"},
			want:    map[string][]string{},
		},
		{
			name:    "two letter term is no fallback",
			surface: map[string]string{"de": "DE"},
			keys:    []string{"de"},
			want:    map[string][]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDocument()
			d.surface = tc.surface

			table := d.associate([]string{link}, tc.keys)

			got := make(map[string][]string)
			for _, key := range table.keys {
				got[key] = table.get(key)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("associate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAugmentFromLinksBoostsScores(t *testing.T) {
	d := newTestDocument()
	d.scores.set("other", 2)
	d.scores.set("deeptool", 1)
	d.surface["other"] = "other"
	d.surface["deeptool"] = "DeepTool"
	d.titleAbstractLinks = []string{"http://deeptool.org", "http://newtool.org"}

	d.augmentFromLinks()

	want := map[string]float64{
		"other":    2 * linkMultiplierAugment,
		"deeptool": 1 * linkMultiplierAugment * linkMultiplierNew,
		"newtool":  linkMultiplierNew,
	}
	for term, score := range want {
		if got, _ := d.scores.get(term); got != score {
			t.Errorf("score of %s = %v, want %v", term, got, score)
		}
	}
	if !reflect.DeepEqual(d.fromAbstractLinks, []string{"newtool"}) {
		t.Errorf("fromAbstractLinks = %v, want [newtool]", d.fromAbstractLinks)
	}
	if got := d.linksAbstract.get("deeptool"); !reflect.DeepEqual(got, []string{"http://deeptool.org"}) {
		t.Errorf("links of deeptool = %v", got)
	}
}

func TestAugmentFromLinksNoBoostAfterMatch(t *testing.T) {
	d := newTestDocument()
	d.scores.set("other", 2)
	d.surface["other"] = "other"
	d.linksAbstract.add("other", "http://other.org")
	d.titleAbstractLinks = []string{"http://other.org", "http://newtool.org"}

	d.augmentFromLinks()

	if got, _ := d.scores.get("other"); got != 2 {
		t.Errorf("score of other = %v, want 2", got)
	}
	if got, _ := d.scores.get("newtool"); got != linkMultiplierNew {
		t.Errorf("score of newtool = %v, want %v", got, linkMultiplierNew)
	}
}
