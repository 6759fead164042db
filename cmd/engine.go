package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/btraven00/pub2agents/internal/config"
	"github.com/btraven00/pub2agents/internal/idf"
	"github.com/btraven00/pub2agents/internal/lexicon"
	"github.com/btraven00/pub2agents/internal/logger"
	"github.com/btraven00/pub2agents/internal/pass1"
	"github.com/btraven00/pub2agents/internal/publication"
	"github.com/btraven00/pub2agents/internal/storage"
	"github.com/btraven00/pub2agents/internal/textproc"
)

// newTextProcessor builds the text processor with the stop words of the
// configured lexicon.
func newTextProcessor(cfg *config.Config) (*textproc.Processor, *lexicon.Tables, error) {
	tables, err := lexicon.Load(cfg.Lexicon)
	if err != nil {
		return nil, nil, err
	}
	tp := textproc.New(
		textproc.WithStopWords(tables.StopWords),
		textproc.WithStemming(cfg.Stemming),
	)
	return tp, tables, nil
}

// loadIDF reads the IDF table. A missing table is not fatal: every token then
// counts as maximally rare.
func loadIDF(path string) (*idf.Table, error) {
	table, err := idf.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.New("idf").Warn("IDF table not found, all tokens weigh the same", "path", path)
		return idf.New(), nil
	}
	return table, err
}

// newEngine wires the engine from the configuration.
func newEngine(cfg *config.Config, opts ...pass1.Option) (*pass1.Engine, error) {
	tp, tables, err := newTextProcessor(cfg)
	if err != nil {
		return nil, err
	}
	table, err := loadIDF(cfg.IDF)
	if err != nil {
		return nil, err
	}
	opts = append([]pass1.Option{pass1.WithLimits(cfg.AbstractMax, cfg.FulltextMax)}, opts...)
	return pass1.NewEngine(tp, table, tables.Lexicon(), opts...), nil
}

// openStore opens and migrates the publication store.
func openStore(path string) (*storage.PublicationRepo, func(), error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return storage.NewPublicationRepo(db), func() { db.Close() }, nil
}

// loadPublications reads publications from a JSON file, or from the store.
// With idFile set only the listed publications are taken from the store.
func loadPublications(ctx context.Context, cfg *config.Config, input, idFile string) ([]*publication.Publication, error) {
	if input != "" {
		return publication.LoadFile(input)
	}

	repo, closeDB, err := openStore(cfg.DB)
	if err != nil {
		return nil, err
	}
	defer closeDB()

	if idFile == "" {
		return repo.List(ctx)
	}

	ids, err := publication.ReadIDFile(idFile)
	if err != nil {
		return nil, err
	}
	pubs, missing, err := storage.Resolve(ctx, repo, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 && !quiet {
		for _, id := range missing {
			fmt.Fprintf(os.Stderr, "⚠️  Not in store: %s\n", id)
		}
	}
	return pubs, nil
}
