package publication

import (
	"strings"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{"pmid", "31066453", ID{PMID: "31066453"}, false},
		{"pmcid lower case", "pmc6602461", ID{PMCID: "PMC6602461"}, false},
		{"doi", "10.1093/nar/gkz369", ID{DOI: "10.1093/nar/gkz369"}, false},
		{"doi url", "https://doi.org/10.1093/nar/gkz369", ID{DOI: "10.1093/nar/gkz369"}, false},
		{"padded", "  31066453 ", ID{PMID: "31066453"}, false},
		{"leading zero", "031066453", ID{}, true},
		{"garbage", "not an id", ID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadIDs(t *testing.T) {
	input := strings.Join([]string{
		"# header",
		"31066453",
		"",
		"\tPMC6602461\t10.1093/nar/gkz369",
		"31066453",
		"10.1093/nar/gkz369\r",
	}, "\n")

	ids, err := ReadIDs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadIDs() error = %v", err)
	}
	want := []ID{
		{PMID: "31066453"},
		{PMCID: "PMC6602461", DOI: "10.1093/nar/gkz369"},
		{DOI: "10.1093/nar/gkz369"},
	}
	if len(ids) != len(want) {
		t.Fatalf("ReadIDs() = %+v, want %+v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %+v, want %+v", i, ids[i], want[i])
		}
	}
}

func TestReadIDsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"two fields", "1\t2"},
		{"bad id", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadIDs(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error %q does not name the line", err)
			}
		})
	}
}

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"a < b and c > d", "a < b and c > d"},
		{"<i>DeepTool</i> is fast", "DeepTool is fast"},
		{"A &amp; B", "A & B"},
		{"<p> padded </p>", "padded"},
	}

	for _, tt := range tests {
		if got := CleanMarkup(tt.input); got != tt.want {
			t.Errorf("CleanMarkup(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	single := `{"pmid": "1", "title": "One", "pub_date": 0, "citations_timestamp": -1}`
	pubs, err := Decode([]byte(single))
	if err != nil {
		t.Fatalf("Decode(single) error = %v", err)
	}
	if len(pubs) != 1 || pubs[0].Title != "One" {
		t.Fatalf("Decode(single) = %+v", pubs)
	}

	list := `[{"pmid": "1"}, {"doi": "10.1000/x", "corresp_author": [{"name": "Jane"}]}]`
	pubs, err = Decode([]byte(list))
	if err != nil {
		t.Fatalf("Decode(list) error = %v", err)
	}
	if len(pubs) != 2 || pubs[1].ID() != (ID{DOI: "10.1000/x"}) {
		t.Fatalf("Decode(list) = %+v", pubs)
	}
	if len(pubs[1].CorrespAuthors) != 1 || pubs[1].CorrespAuthors[0].Name != "Jane" {
		t.Errorf("corresponding authors not decoded: %+v", pubs[1].CorrespAuthors)
	}

	pubs, err = Decode([]byte(`[{"pmid": "1"}, null, {"pmid": "2"}]`))
	if err != nil {
		t.Fatalf("Decode(with null) error = %v", err)
	}
	if len(pubs) != 2 || pubs[0].PMID != "1" || pubs[1].PMID != "2" {
		t.Errorf("Decode(with null) = %+v", pubs)
	}

	if _, err := Decode([]byte("[{")); err == nil {
		t.Error("expected error for broken JSON")
	}
}

func TestHuman(t *testing.T) {
	if got := Human(-1); got != "" {
		t.Errorf("Human(-1) = %q, want empty", got)
	}
	if got := Human(0); got != "1970-01-01T00:00:00Z" {
		t.Errorf("Human(0) = %q", got)
	}
	if got := Human(1556668800000); got != "2019-05-01T00:00:00Z" {
		t.Errorf("Human(1556668800000) = %q", got)
	}
}

func TestLengthsCountRunes(t *testing.T) {
	p := &Publication{Abstract: "αβγ", Fulltext: "ab"}
	if p.AbstractLength() != 3 || p.FulltextLength() != 2 {
		t.Errorf("lengths = %d, %d", p.AbstractLength(), p.FulltextLength())
	}
}

func TestParseIDLineEmptyTriple(t *testing.T) {
	if _, err := ParseIDLine(" \t \t "); err == nil {
		t.Error("expected error for a triple without ids")
	}
}
