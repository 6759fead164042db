package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/btraven00/pub2agents/internal/pass1"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug information about word lists and extraction helpers",
	Long: `Display the word list sizes and the IDF table in use, or run one
extraction helper on an input and show what it produces.`,
	RunE: runDebug,
}

var (
	debugFromLink   string
	debugAcronym    string
	debugSegment    string
	debugSchemaName string
	debugClassify   string
)

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().StringVar(&debugFromLink, "from-link", "", "derive a name from a link")
	debugCmd.Flags().StringVar(&debugAcronym, "acronym", "", "find acronym constructs in a sentence")
	debugCmd.Flags().StringVar(&debugSegment, "segment", "", "split a title into name segments")
	debugCmd.Flags().StringVar(&debugSchemaName, "schema-name", "", "rewrite a name into the registry name schema")
	debugCmd.Flags().StringVar(&debugClassify, "classify", "", "classify a link")
}

func runDebug(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tp, tables, err := newTextProcessor(cfg)
	if err != nil {
		return err
	}

	switch {
	case debugFromLink != "":
		table, err := loadIDF(cfg.IDF)
		if err != nil {
			return err
		}
		name := pass1.FromLink(tp, table, tables.HostIgnore, debugFromLink)
		if name == "" {
			fmt.Printf("%s: ❌ no name\n", debugFromLink)
		} else {
			fmt.Printf("%s: ✅ %s\n", debugFromLink, name)
		}
		return nil

	case debugAcronym != "":
		tokens := tp.Tokens(debugAcronym)
		fmt.Printf("=== Acronyms in: %q ===\n", debugAcronym)
		for _, i := range pass1.Acronyms(tp, debugAcronym) {
			switch {
			case i < 0 && -i < len(tokens):
				fmt.Printf("  (%s) abbreviates the phrase before it [%d]\n", tokens[-i].Surface, i)
			case i >= 0 && i < len(tokens):
				fmt.Printf("  %s abbreviates the phrase after it [%d]\n", tokens[i].Surface, i)
			default:
				fmt.Printf("  index %d\n", i)
			}
		}
		return nil

	case debugSegment != "":
		seg := pass1.SegmentTitle(tp, debugSegment)
		fmt.Printf("=== Segments of: %q ===\n", debugSegment)
		if len(seg.Segments) == 0 {
			fmt.Println("❌ No name segment")
		}
		for i, s := range seg.Segments {
			fmt.Printf("%d. extracted: %q, pruned: %q, original: %q\n", i+1, s.Extracted, s.Pruned, s.ExtractedOriginal)
		}
		if seg.Acronym != "" {
			fmt.Printf("Acronym: %s\n", seg.Acronym)
		}
		fmt.Printf("Rest: %q\n", seg.Rest)
		return nil

	case debugSchemaName != "":
		name, change, ok := pass1.SchemaName(debugSchemaName)
		status := "✅"
		if !ok {
			status = "❌"
		}
		fmt.Printf("%s %q -> %q (rewritten: %t, filled: %t, pruned: %t)\n",
			status, debugSchemaName, name, change.Rewritten, change.Filled, change.Pruned)
		return nil

	case debugClassify != "":
		link, ok := pass1.ClassifyLink(debugClassify)
		if !ok {
			return fmt.Errorf("cannot classify an empty link")
		}
		fmt.Printf("%s: %s / %s\n", link.URL, link.Kind, link.Type)
		return nil
	}

	// Default: show general debug info
	fmt.Println("=== pub2agents Debug Information ===")
	fmt.Println()

	sizes := tables.Sizes()
	var names []string
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Word lists:")
	for _, name := range names {
		fmt.Printf("  %-14s %d\n", name, sizes[name])
	}
	fmt.Println()

	table, err := loadIDF(cfg.IDF)
	if err != nil {
		return err
	}
	fmt.Printf("IDF table: %s (%d tokens, %d documents)\n", cfg.IDF, table.Len(), table.Documents())
	fmt.Printf("Stemming: %t\n", cfg.Stemming)
	fmt.Println()

	fmt.Println("Example commands:")
	fmt.Println("  pub2agents debug --segment 'g:Profiler: a web server for functional enrichment analysis'")
	fmt.Println("  pub2agents debug --from-link https://biit.cs.ut.ee/gprofiler")
	fmt.Println("  pub2agents debug --classify https://github.com/user/tool/wiki")
	return nil
}
