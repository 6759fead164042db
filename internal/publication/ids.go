package publication

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	pmidRe  = regexp.MustCompile(`^[1-9][0-9]{0,8}$`)
	pmcidRe = regexp.MustCompile(`(?i)^PMC[1-9][0-9]{0,8}$`)
	doiRe   = regexp.MustCompile(`^10\.[0-9]{4,9}/\S+$`)
	doiURL  = regexp.MustCompile(`(?i)^(https?://)?(dx\.)?doi\.org/`)
)

// ParseID detects whether s is a PMID, a PMCID or a DOI.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	switch {
	case pmidRe.MatchString(s):
		return ID{PMID: s}, nil
	case pmcidRe.MatchString(s):
		return ID{PMCID: "PMC" + s[3:]}, nil
	}
	if doi := doiURL.ReplaceAllString(s, ""); doiRe.MatchString(doi) {
		return ID{DOI: doi}, nil
	}
	return ID{}, fmt.Errorf("unrecognised publication id %q", s)
}

// ParseIDLine reads one line of an id file: a bare id or a tab-separated
// pmid, pmcid and doi triple with empty fields allowed.
func ParseIDLine(line string) (ID, error) {
	if strings.Contains(line, "\t") {
		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			return ID{}, fmt.Errorf("expected 3 tab-separated fields, got %d", len(parts))
		}
		id := ID{
			PMID:  strings.TrimSpace(parts[0]),
			PMCID: strings.TrimSpace(parts[1]),
			DOI:   strings.TrimSpace(parts[2]),
		}
		if id.Empty() {
			return ID{}, fmt.Errorf("empty id line")
		}
		return id, nil
	}
	return ParseID(line)
}

// ReadIDs parses an id list, skipping blank lines and # comments. Duplicate
// ids are dropped, keeping the first occurrence.
func ReadIDs(r io.Reader) ([]ID, error) {
	var ids []ID
	seen := make(map[ID]bool)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, err := ParseIDLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ids: %w", err)
	}
	return ids, nil
}

// ReadIDFile is ReadIDs on a file.
func ReadIDFile(path string) ([]ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open id file: %w", err)
	}
	defer f.Close()
	return ReadIDs(f)
}
