package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btraven00/pub2agents/internal/logger"
	"github.com/btraven00/pub2agents/internal/server"
	"github.com/btraven00/pub2agents/internal/storage"
)

var serveNoStore bool

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pass1 over HTTP",
	Long: `Start the REST server.

Endpoints:
  GET  /api/health                     store and engine status
  POST /api/pass1                      run pass1 on the publication in the body
  GET  /api/publications/{id}/pass1    run pass1 on a stored publication

The id is a PMID, a PMCID or a URL-escaped DOI.

Examples:
  pub2agents serve
  pub2agents serve --addr 127.0.0.1:9090 --db store.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "run without the publication store")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := logger.New("server")

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	deps := &server.Deps{Engine: engine, Log: l}
	if !serveNoStore {
		repo, closeDB, err := openStore(cfg.DB)
		if err != nil {
			return err
		}
		defer closeDB()
		deps.Store = storage.PublicationStore(repo)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		l.Info("Starting API server", "addr", cfg.Addr, "db", cfg.DB, "store", !serveNoStore)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	l.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
