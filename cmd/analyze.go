package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btraven00/pub2agents/internal/fulltext"
	"github.com/btraven00/pub2agents/internal/output"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
)

var (
	analyzeTitle        string
	analyzeAbstract     string
	analyzeAbstractFile string
	analyzeFulltextFile string
	analyzePMID         string
	analyzePMCID        string
	analyzeDOI          string
	analyzeName         string
	analyzeURLs         []string
	analyzeFormat       string
	analyzeExplain      int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the tool name and link extraction on one publication",
	Long: `Run pass1 on a single publication given on the command line. Nothing is
skipped for its size in this mode.

A known tool name and webpage urls can be passed with --name and --url; the
name is then always among the suggestions and carries the urls. --explain N
adds the N best scored candidate terms to the output.

Examples:
  pub2agents analyze --title "g:Profiler: a web server" --abstract-file abstract.txt
  pub2agents analyze --title "..." --abstract "..." --fulltext-file paper.pdf --explain 20
  pub2agents analyze --title "..." --abstract "..." --name GOst --url https://biit.cs.ut.ee/gprofiler/gost`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "publication title")
	analyzeCmd.Flags().StringVar(&analyzeAbstract, "abstract", "", "publication abstract")
	analyzeCmd.Flags().StringVar(&analyzeAbstractFile, "abstract-file", "", "read the abstract from a file")
	analyzeCmd.Flags().StringVar(&analyzeFulltextFile, "fulltext-file", "", "full text document (PDF, DOC(X), HTML, ...)")
	analyzeCmd.Flags().StringVar(&analyzePMID, "pmid", "", "publication PMID")
	analyzeCmd.Flags().StringVar(&analyzePMCID, "pmcid", "", "publication PMCID")
	analyzeCmd.Flags().StringVar(&analyzeDOI, "doi", "", "publication DOI")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "known tool name")
	analyzeCmd.Flags().StringSliceVar(&analyzeURLs, "url", nil, "known tool webpage (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "output format (human, json)")
	analyzeCmd.Flags().IntVar(&analyzeExplain, "explain", 0, "show the N best scored candidate terms")
}

// analyzeInput is the publication as given on the command line.
type analyzeInput struct {
	Title, Abstract, AbstractFile, FulltextFile string
	PMID, PMCID, DOI                            string
}

// buildPublication assembles the publication of an analyze run. Full text is
// converted with docconv.
func buildPublication(in analyzeInput) (*publication.Publication, error) {
	pub := &publication.Publication{
		PMID:               strings.TrimSpace(in.PMID),
		PMCID:              strings.TrimSpace(in.PMCID),
		DOI:                strings.TrimSpace(in.DOI),
		Title:              in.Title,
		Abstract:           in.Abstract,
		PubDate:            -1,
		CitationsTimestamp: -1,
	}

	if in.AbstractFile != "" {
		data, err := os.ReadFile(in.AbstractFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read abstract: %w", err)
		}
		pub.Abstract = string(data)
	}
	if in.FulltextFile != "" {
		text, err := fulltext.Load(in.FulltextFile)
		if err != nil {
			return nil, err
		}
		pub.Fulltext = text
	}

	pub.Clean()
	if strings.TrimSpace(pub.Title) == "" && strings.TrimSpace(pub.Abstract) == "" {
		return nil, fmt.Errorf("title or abstract is required")
	}
	return pub, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pub, err := buildPublication(analyzeInput{
		Title:        analyzeTitle,
		Abstract:     analyzeAbstract,
		AbstractFile: analyzeAbstractFile,
		FulltextFile: analyzeFulltextFile,
		PMID:         analyzePMID,
		PMCID:        analyzePMCID,
		DOI:          analyzeDOI,
	})
	if err != nil {
		return err
	}

	var opts []pass1.Option
	if analyzeExplain > 0 {
		opts = append(opts, pass1.WithExplain(analyzeExplain))
	}
	engine, err := newEngine(cfg, opts...)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Analyzing %q...\n", pub.Title)
	}

	results, err := engine.Process(pub, pass1.Request{Name: analyzeName, URLs: analyzeURLs})
	if err != nil {
		return err
	}
	pass1.SortResults(results)

	web, doc := pass1.Buckets(results, analyzeURLs)
	for i := range web {
		web[i] = pass1.WithScheme(web[i])
	}
	for i := range doc {
		doc[i] = pass1.WithScheme(doc[i])
	}

	switch strings.ToLower(analyzeFormat) {
	case "json":
		return output.WriteJSON(os.Stdout, results)
	case "human":
		return printResults("human", results, web, doc)
	default:
		return fmt.Errorf("unsupported output format: %s", analyzeFormat)
	}
}
