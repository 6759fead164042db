package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btraven00/pub2agents/internal/fulltext"
	"github.com/btraven00/pub2agents/internal/pass1"
)

var (
	outputFile    string
	keepLines     bool
	showSentences bool
	showTokens    bool
	showLinks     bool
)

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Convert a document to the text pass1 reads",
	Long: `Convert a PDF, DOC(X), ODT, RTF or HTML document to plain text the way full
texts are converted on import.

Without further flags the cleaned text is printed. --sentences, --tokens and
--links show how the text processor splits the text, which processed form
every word gets, and which links it finds.

Examples:
  pub2agents text paper.pdf
  pub2agents text --output paper.txt paper.pdf
  pub2agents text --links --tokens paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	textCmd.Flags().BoolVar(&keepLines, "keep-lines", false, "keep the original line breaks")
	textCmd.Flags().BoolVar(&showSentences, "sentences", false, "print one sentence per line")
	textCmd.Flags().BoolVar(&showTokens, "tokens", false, "print surface and processed form of every word")
	textCmd.Flags().BoolVar(&showLinks, "links", false, "print the links found in the text")
}

func runText(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if !quiet {
		fmt.Fprintf(os.Stderr, "Converting %s to text...\n", filename)
	}

	// Check if file exists and is readable
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}

	converter := fulltext.NewConverter()
	converter.KeepLines = keepLines
	doc, err := converter.ConvertFile(filename)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if !showSentences && !showTokens && !showLinks {
		if _, err := fmt.Fprintln(w, doc.Text); err != nil {
			return err
		}
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tp, _, err := newTextProcessor(cfg)
		if err != nil {
			return err
		}
		writeTextReport(w, tp, doc.Text, showSentences, showTokens, showLinks)
	}

	if outputFile != "" && !quiet {
		fmt.Fprintf(os.Stderr, "Converted text written to %s\n", outputFile)
	}
	return nil
}

// writeTextReport prints the requested views of text.
func writeTextReport(w io.Writer, tp pass1.TextProcessor, text string, sentences, tokens, links bool) {
	if sentences {
		list := tp.Sentences(text)
		fmt.Fprintf(w, "## Sentences (%d)\n\n", len(list))
		for i, s := range list {
			fmt.Fprintf(w, "%d. %s\n", i+1, s)
		}
		fmt.Fprintln(w)
	}
	if tokens {
		list := tp.Tokens(tp.RemoveLinks(text))
		fmt.Fprintf(w, "## Tokens (%d)\n\n", len(list))
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\n", t.Surface, t.Processed)
		}
		fmt.Fprintln(w)
	}
	if links {
		list := tp.Links(text)
		fmt.Fprintf(w, "## Links (%d)\n\n", len(list))
		for _, l := range list {
			fmt.Fprintf(w, "- %s\n", strings.TrimSpace(l))
		}
	}
}
