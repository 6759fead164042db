package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/btraven00/pub2agents/internal/pass1"
)

const (
	resultsSheet = "Results"
	linksSheet   = "Links"
)

var linksHeader = []string{"pmid", "pmcid", "doi", "name", "source", "url", "kind", "type"}

// WriteXLSX writes a workbook with a Results sheet (one row per suggestion)
// and a Links sheet (one row per classified suggestion link).
func WriteXLSX(path string, results []*pass1.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(linksSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	resultRow, linkRow := 1, 1
	setRow := func(sheet string, row *int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, *row)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
		*row++
		return nil
	}

	if err := setRow(resultsSheet, &resultRow, csvHeader); err != nil {
		return err
	}
	if err := setRow(linksSheet, &linkRow, linksHeader); err != nil {
		return err
	}

	for _, r := range results {
		for i, s := range r.Suggestions {
			if err := setRow(resultsSheet, &resultRow, suggestionRow(r, i+1, s)); err != nil {
				return err
			}
			sources := []struct {
				name  string
				links []string
			}{
				{"abstract", s.LinksAbstract},
				{"fulltext", s.LinksFulltext},
			}
			for _, src := range sources {
				for _, l := range pass1.ClassifyLinks(src.links) {
					values := []string{r.PubIDs.PMID, r.PubIDs.PMCID, r.PubIDs.DOI, s.Extracted, src.name, l.URL, string(l.Kind), l.Type}
					if err := setRow(linksSheet, &linkRow, values); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
