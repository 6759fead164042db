// Package output writes pass1 results to disk and terminals.
package output

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btraven00/pub2agents/internal/pass1"
)

// File names inside the output directory.
const (
	JSONFile = "pass1.json"
	WebFile  = "web.txt"
	DocFile  = "doc.txt"
	CSVFile  = "results.csv"
	XLSXFile = "pass1.xlsx"
)

// Options selects the optional files.
type Options struct {
	CSV  bool
	XLSX bool
}

// WriteAll writes pass1.json, web.txt and doc.txt to dir, plus the optional
// files, and returns the paths written. provided are the caller-supplied
// webpage URLs that must end up in a bucket.
func WriteAll(dir string, results []*pass1.Result, provided []string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	web, doc := pass1.Buckets(results, provided)

	var written []string
	write := func(name string, fn func(w io.Writer) error) error {
		path := filepath.Join(dir, name)
		if err := writeFile(path, fn); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write(JSONFile, func(w io.Writer) error { return WriteJSON(w, results) }); err != nil {
		return written, err
	}
	if err := write(WebFile, func(w io.Writer) error { return WriteLinks(w, web) }); err != nil {
		return written, err
	}
	if err := write(DocFile, func(w io.Writer) error { return WriteLinks(w, doc) }); err != nil {
		return written, err
	}
	if opts.CSV {
		if err := write(CSVFile, func(w io.Writer) error { return WriteCSV(w, results) }); err != nil {
			return written, err
		}
	}
	if opts.XLSX {
		path := filepath.Join(dir, XLSXFile)
		if err := WriteXLSX(path, results); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	err = fn(bw)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteJSON writes results as an indented JSON array. A nil slice is
// written as [].
func WriteJSON(w io.Writer, results []*pass1.Result) error {
	if results == nil {
		results = []*pass1.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// WriteLinks writes one link per line, with http:// prepended to links
// without a scheme.
func WriteLinks(w io.Writer, links []string) error {
	for _, link := range links {
		if _, err := fmt.Fprintln(w, pass1.WithScheme(link)); err != nil {
			return err
		}
	}
	return nil
}

var csvHeader = []string{
	"pmid", "pmcid", "doi", "title", "rank", "score", "name", "processed",
	"original", "from_abstract_link", "links_abstract", "links_fulltext",
}

func suggestionRow(r *pass1.Result, rank int, s *pass1.Suggestion) []string {
	return []string{
		r.PubIDs.PMID,
		r.PubIDs.PMCID,
		r.PubIDs.DOI,
		r.Title,
		strconv.Itoa(rank),
		strconv.FormatFloat(s.Score, 'f', 3, 64),
		s.Extracted,
		s.Processed,
		s.Original,
		strconv.FormatBool(s.FromAbstractLink),
		strings.Join(s.LinksAbstract, " | "),
		strings.Join(s.LinksFulltext, " | "),
	}
}

// WriteCSV writes one row per suggestion. Results without suggestions get
// a row with empty suggestion columns.
func WriteCSV(w io.Writer, results []*pass1.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range results {
		if len(r.Suggestions) == 0 {
			row := []string{r.PubIDs.PMID, r.PubIDs.PMCID, r.PubIDs.DOI, r.Title, "", "", "", "", "", "", "", ""}
			if err := writer.Write(row); err != nil {
				return err
			}
			continue
		}
		for i, s := range r.Suggestions {
			if err := writer.Write(suggestionRow(r, i+1, s)); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
