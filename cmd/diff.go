package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btraven00/pub2agents/internal/diff"
	"github.com/btraven00/pub2agents/internal/output"
)

var (
	diffRegistry string
	diffResults  string
	diffDir      string
	diffFormat   string
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare pass1 results with an existing registry",
	Long: `Compare the results of pass1 with the entries of an existing tool registry.

A result belongs to the entry citing its publication, or else to the entry
with the same name. For each such result the diff lists the publication ids,
name, homepage, links, downloads, documentation and credits the entry is
missing or has differently, and the other entries that look related.

The registry is a JSON array of entries or a registry API page with a
"list" field. diff.json and diff.csv are written to the output directory.

Examples:
  pub2agents diff --registry biotools.json
  pub2agents diff --registry biotools.json --results out/pass1.json --diff-dir out`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVar(&diffRegistry, "registry", "", "JSON file of registry entries")
	diffCmd.Flags().StringVar(&diffResults, "results", "", "pass1 results (default <output_dir>/pass1.json)")
	diffCmd.Flags().StringVar(&diffDir, "diff-dir", "", "directory for diff.json and diff.csv (default <output_dir>)")
	diffCmd.Flags().StringVar(&diffFormat, "format", "human", "stdout format (human, json, none)")
	_ = diffCmd.MarkFlagRequired("registry")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resultsPath := diffResults
	if resultsPath == "" {
		resultsPath = filepath.Join(cfg.OutputDir, output.JSONFile)
	}
	dir := diffDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	registry, err := diff.LoadRegistry(diffRegistry)
	if err != nil {
		return err
	}
	results, err := output.ReadJSON(resultsPath)
	if err != nil {
		return err
	}

	diffs := diff.Compare(registry, results)

	written, err := output.WriteDiffs(dir, diffs, registry)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "✅ %d diffs from %d results against %d registry entries\n", len(diffs), len(results), len(registry))
		for _, path := range written {
			fmt.Fprintf(os.Stderr, "📁 Wrote %s\n", path)
		}
	}

	switch strings.ToLower(diffFormat) {
	case "json":
		return output.WriteDiffJSON(os.Stdout, diffs)
	case "human":
		printDiffs(os.Stdout, diffs, registry)
		return nil
	case "none":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", diffFormat)
	}
}

func printDiffs(w io.Writer, diffs []*diff.Diff, registry []diff.Entry) {
	for _, d := range diffs {
		fmt.Fprintf(w, "\n🔧 %s (%.1f) %s → %s\n", d.Name, d.Score, d.PubIDs, d.ExistingName)
		for _, i := range d.PossiblyRelated {
			fmt.Fprintf(w, "   ? related: %s\n", registry[i].Name)
		}
		for _, id := range d.ModifyPublications {
			fmt.Fprintf(w, "   ~ publication: %s\n", id)
		}
		for _, id := range d.AddPublications {
			fmt.Fprintf(w, "   + publication: %s\n", id)
		}
		if d.ModifyName != "" {
			fmt.Fprintf(w, "   ~ name: %s\n", d.ModifyName)
		}
		if d.ModifyHomepage != "" {
			fmt.Fprintf(w, "   ~ homepage: %s\n", d.ModifyHomepage)
		}
		for _, l := range d.AddLinks {
			fmt.Fprintf(w, "   + link: %s (%s)\n", l.URL, l.Type)
		}
		for _, l := range d.AddDownloads {
			fmt.Fprintf(w, "   + download: %s (%s)\n", l.URL, l.Type)
		}
		for _, l := range d.AddDocumentations {
			fmt.Fprintf(w, "   + documentation: %s (%s)\n", l.URL, l.Type)
		}
		for _, c := range d.ModifyCredits {
			fmt.Fprintf(w, "   ~ credit: %s %s %s\n", c.Name, c.Orcid, c.Email)
		}
		for _, c := range d.AddCredits {
			fmt.Fprintf(w, "   + credit: %s %s %s\n", c.Name, c.Orcid, c.Email)
		}
	}
}
