package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/projecttitan/titan/internal/logging"
	"github.com/projecttitan/titan/internal/server"
)

var (
	serveAddr string
	serveSite string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the site locally",
	Long: `Serves the site folder the way the hosting platform would, with a
health probe at /healthz and the parsed indicator rows at /api/indicators.
Edits to the folder are logged as they happen.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&serveSite, "site", "", "site folder to serve")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	if serveSite != "" {
		cfg.SiteDir = serveSite
	}
	logger := logging.New("serve")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := server.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()
	if err := watcher.Watch(cfg.SiteDir, func(path string) {
		logger.Printf("site updated: %s", path)
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.NewRouter(cfg),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("serving %s on %s", cfg.SiteDir, cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
