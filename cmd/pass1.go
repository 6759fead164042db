package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btraven00/pub2agents/internal/output"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/pipeline"
)

var (
	pubFile      string
	inputFile    string
	batchFormat  string
	writeCSV     bool
	writeXLSX    bool
	showProgress bool
	batchURLs    []string
)

// pass1Cmd represents the pass1 command
var pass1Cmd = &cobra.Command{
	Use:   "pass1",
	Short: "Run the tool name and link extraction over a batch of publications",
	Long: `Run pass1 over every publication of the store, the publications listed in
--pub-file, or the publications of a JSON file given with --input.

Results are sorted by the score of their best suggestion and written to the
output directory as pass1.json, web.txt and doc.txt. Publications whose
abstract or full text exceed the configured limits are skipped.

Examples:
  pub2agents pass1
  pub2agents pass1 --pub-file ids.txt --workers 8 --xlsx
  pub2agents pass1 --input pubs.json --output-dir out --format json`,
	Args: cobra.NoArgs,
	RunE: runPass1,
}

func init() {
	rootCmd.AddCommand(pass1Cmd)

	pass1Cmd.Flags().StringVar(&pubFile, "pub-file", "", "file of publication ids (pmid, pmcid or doi per line)")
	pass1Cmd.Flags().StringVar(&inputFile, "input", "", "JSON file of publications to use instead of the store")
	pass1Cmd.Flags().String("output-dir", ".", "directory for the result files")
	pass1Cmd.Flags().Int("workers", 1, "number of parallel workers")
	pass1Cmd.Flags().StringVar(&batchFormat, "format", "human", "stdout format (human, json, csv, none)")
	pass1Cmd.Flags().BoolVar(&writeCSV, "csv", false, "also write results.csv")
	pass1Cmd.Flags().BoolVar(&writeXLSX, "xlsx", false, "also write pass1.xlsx")
	pass1Cmd.Flags().BoolVar(&showProgress, "progress", true, "show progress during batch processing")
	pass1Cmd.Flags().StringSliceVar(&batchURLs, "url", nil, "webpage url that must end up in web.txt or doc.txt (repeatable)")

	_ = viper.BindPFlag("output_dir", pass1Cmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("workers", pass1Cmd.Flags().Lookup("workers"))
}

func runPass1(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	pubs, err := loadPublications(ctx, cfg, inputFile, pubFile)
	if err != nil {
		return err
	}
	if len(pubs) == 0 {
		fmt.Fprintln(os.Stderr, "⚠️  No publications to process")
		return nil
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "🚀 Processing %d publications with %d workers...\n", len(pubs), cfg.Workers)
	}

	opts := []pipeline.Option{pipeline.WithWorkers(cfg.Workers)}
	var stopProgress func()
	if showProgress && !quiet {
		var onProgress func(pipeline.ProgressUpdate)
		onProgress, stopProgress = progressPrinter(len(pubs))
		opts = append(opts, pipeline.WithProgress(onProgress))
	}

	start := time.Now()
	results, summary, err := pipeline.NewRunner(engine, opts...).Run(ctx, pubs)
	if stopProgress != nil {
		stopProgress()
	}
	if err != nil {
		return err
	}

	written, err := output.WriteAll(cfg.OutputDir, results, batchURLs, output.Options{CSV: writeCSV, XLSX: writeXLSX})
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "✅ Completed %d publications in %v", summary.Processed, time.Since(start).Round(time.Millisecond))
		if summary.Skipped > 0 {
			fmt.Fprintf(os.Stderr, " (%d skipped)", summary.Skipped)
		}
		if summary.Failed > 0 {
			fmt.Fprintf(os.Stderr, " (%d failed)", summary.Failed)
		}
		fmt.Fprintln(os.Stderr)
		for _, path := range written {
			fmt.Fprintf(os.Stderr, "📁 Wrote %s\n", path)
		}
	}

	return printResults(batchFormat, results, nil, nil)
}

// progressPrinter redraws the progress line every 500ms until stopped.
func progressPrinter(total int) (func(pipeline.ProgressUpdate), func()) {
	tracker := pipeline.NewProgressTracker(total)
	var mu sync.Mutex
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				mu.Lock()
				tracker.PrintProgress(os.Stderr)
				mu.Unlock()
			case <-done:
				mu.Lock()
				tracker.PrintProgress(os.Stderr)
				fmt.Fprintln(os.Stderr) // New line after final progress
				mu.Unlock()
				return
			}
		}
	}()

	update := func(u pipeline.ProgressUpdate) {
		mu.Lock()
		tracker.Update(u)
		mu.Unlock()
	}
	stop := func() {
		close(done)
		<-finished
	}
	return update, stop
}

// printResults writes results to stdout in the given format. web and doc are
// only shown by the human format.
func printResults(format string, results []*pass1.Result, web, doc []string) error {
	switch strings.ToLower(format) {
	case "json":
		return output.WriteJSON(os.Stdout, results)
	case "csv":
		return output.WriteCSV(os.Stdout, results)
	case "human":
		if err := output.WriteHuman(os.Stdout, results, linksShown()); err != nil {
			return err
		}
		printBuckets(web, doc)
		return nil
	case "none":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func linksShown() int {
	if quiet {
		return 10
	}
	return 0
}

func printBuckets(web, doc []string) {
	if len(web) > 0 {
		fmt.Printf("\n🌐 Webpages (%d):\n", len(web))
		for _, u := range web {
			fmt.Printf("   • %s\n", u)
		}
	}
	if len(doc) > 0 {
		fmt.Printf("\n📚 Documentation (%d):\n", len(doc))
		for _, u := range doc {
			fmt.Printf("   • %s\n", u)
		}
	}
}
