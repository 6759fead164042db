package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btraven00/pub2agents/internal/idf"
	"github.com/btraven00/pub2agents/internal/publication"
)

var (
	idfInput    string
	idfFulltext bool
	idfLimit    int
)

var idfCmd = &cobra.Command{
	Use:   "idf",
	Short: "Build and inspect the IDF table",
	Long: `The IDF table weighs every processed token by how rare it is across the
publication corpus: ln(N/df)/ln(N), clamped to [0,1]. Tokens missing from
the table count as maximally rare.

The table is written as msgpack, or as token<TAB>idf lines when the file
name ends in .tsv, .txt or .idf.`,
}

var idfBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the IDF table from the store or a JSON file",
	Long: `Build the IDF table from every publication of the store, or of the JSON
file given with --input. Title and abstract form one document per
publication; --fulltext adds the full text.

Examples:
  pub2agents idf build --idf tf.bin
  pub2agents idf build --input pubs.json --idf tf.idf --fulltext`,
	Args: cobra.NoArgs,
	RunE: runIDFBuild,
}

var idfGetCmd = &cobra.Command{
	Use:   "get [token...]",
	Short: "Look up tokens in the IDF table",
	Long: `Look up the IDF of the given words. Words are processed the same way the
engine processes publication text before the lookup.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIDFGet,
}

var idfPrefixCmd = &cobra.Command{
	Use:   "prefix [prefix]",
	Short: "List tokens of the IDF table starting with a prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runIDFPrefix,
}

func init() {
	rootCmd.AddCommand(idfCmd)
	idfCmd.AddCommand(idfBuildCmd, idfGetCmd, idfPrefixCmd)

	idfBuildCmd.Flags().StringVar(&idfInput, "input", "", "JSON file of publications to use instead of the store")
	idfBuildCmd.Flags().BoolVar(&idfFulltext, "fulltext", false, "count full text too")
	idfPrefixCmd.Flags().IntVar(&idfLimit, "limit", 50, "maximum number of tokens to list (0 lists all)")
}

// buildIDF counts one document per publication.
func buildIDF(tk idf.Tokenizer, pubs []*publication.Publication, withFulltext bool) *idf.Table {
	b := idf.NewBuilder(tk)
	for _, pub := range pubs {
		if pub == nil {
			continue
		}
		texts := []string{pub.Title, pub.Abstract}
		if withFulltext {
			texts = append(texts, pub.Fulltext)
		}
		b.Add(texts...)
	}
	return b.Table()
}

func runIDFBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pubs, err := loadPublications(cmd.Context(), cfg, idfInput, "")
	if err != nil {
		return err
	}
	if len(pubs) == 0 {
		return fmt.Errorf("no publications to build the IDF table from")
	}

	tp, _, err := newTextProcessor(cfg)
	if err != nil {
		return err
	}

	table := buildIDF(tp, pubs, idfFulltext)
	if err := table.Save(cfg.IDF); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "✅ IDF table of %d tokens from %d publications written to %s\n", table.Len(), table.Documents(), cfg.IDF)
	}
	return nil
}

func runIDFGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tp, _, err := newTextProcessor(cfg)
	if err != nil {
		return err
	}
	table, err := idf.Load(cfg.IDF)
	if err != nil {
		return err
	}

	for _, arg := range args {
		for _, tok := range tp.Tokens(arg) {
			marker := ""
			if !table.Has(tok.Processed) {
				marker = " (unknown)"
			}
			fmt.Printf("%s\t%s\t%.6f%s\n", tok.Surface, tok.Processed, table.Get(tok.Processed), marker)
		}
	}
	return nil
}

func runIDFPrefix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := idf.Load(cfg.IDF)
	if err != nil {
		return err
	}

	entries := table.Prefix(strings.ToLower(args[0]), idfLimit)
	if len(entries) == 0 && !quiet {
		fmt.Fprintf(os.Stderr, "No tokens start with %q\n", args[0])
	}
	for _, e := range entries {
		fmt.Printf("%s\t%.6f\n", e.Token, e.IDF)
	}
	return nil
}
