package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/btraven00/pub2agents/internal/fulltext"
	"github.com/btraven00/pub2agents/internal/publication"
	"github.com/btraven00/pub2agents/internal/storage"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Load JSON publications into the publication store",
	Long: `Load publications from JSON files (an array of publications or a single
publication object) into the sqlite store. HTML or XML markup in titles and
abstracts is stripped. A publication with a fulltext_file field gets its full
text converted from that document; relative paths are resolved against the
JSON file's directory.

Publications already in the store (same PMID, PMCID or DOI) are replaced.

Examples:
  pub2agents import pubs.json
  pub2agents import --db store.db batch1.json batch2.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, closeDB, err := openStore(cfg.DB)
	if err != nil {
		return err
	}
	defer closeDB()

	total := 0
	for _, filename := range args {
		n, err := importFile(cmd.Context(), repo, filename)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", filename, err)
		}
		total += n
		if !quiet {
			fmt.Fprintf(os.Stderr, "📥 %s: %d publications\n", filepath.Base(filename), n)
		}
	}

	count, err := repo.Count(cmd.Context())
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "✅ Imported %d publications, %d in store\n", total, count)
	}
	return nil
}

// importFile stores the publications of one JSON file and returns how many
// were stored.
func importFile(ctx context.Context, store storage.PublicationStore, filename string) (int, error) {
	pubs, err := publication.LoadFile(filename)
	if err != nil {
		return 0, err
	}

	converter := fulltext.NewConverter()
	n := 0
	for i, pub := range pubs {
		if pub == nil {
			continue
		}
		pub.Clean()

		if pub.FulltextFile != "" {
			path := pub.FulltextFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(filepath.Dir(filename), path)
			}
			doc, err := converter.ConvertFile(path)
			if err != nil {
				return n, fmt.Errorf("publication %d: %w", i, err)
			}
			pub.Fulltext = doc.Text
			pub.FulltextFile = ""
		}

		if err := store.Put(ctx, pub); err != nil {
			return n, fmt.Errorf("publication %d: %w", i, err)
		}
		n++
	}
	return n, nil
}
