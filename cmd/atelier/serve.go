package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "atelier/docs"
	"atelier/internal/config"
	"atelier/internal/handlers"
	"atelier/internal/logger"
	"atelier/internal/param"
	"atelier/internal/qotd"
	"atelier/internal/repository"
	"atelier/internal/repository/db"
	"atelier/internal/server"
	"atelier/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, board streams and countdown watcher",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cfg *config.Config) error {
	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)

	store, err := openDB(cfg, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(store)
	services := service.NewService(repos, service.Options{
		BaseURL:    cfg.Board.BaseURL,
		Mode:       param.ParseMode(cfg.Board.URLMode),
		Generator:  newGenerator(cfg.QOTD, log),
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Log:        log.Named("service"),
	})
	apiHandler := handlers.NewHandler(services, log.Named("http"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Watcher.Run(ctx, cfg.Board.Tick)

	srv := server.New(server.Config{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	errCh := runHTTPServer(srv, cfg.Port, apiHandler, log)

	return waitForShutdown(cancel, srv, errCh, cfg.Server.ShutdownTimeout, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "atelier.db")
		path = "atelier.db"
	}
	return db.InitDB(path)
}

// newGenerator returns nil when no API key is configured, which turns the
// question endpoint into a 503.
func newGenerator(cfg config.QOTDConfig, log *logger.Logger) qotd.Generator {
	if cfg.APIKey == "" {
		log.Infow("qotd api key not set; question suggestions disabled")
		return nil
	}
	return qotd.NewOpenAIGenerator(qotd.OpenAIConfig{
		APIKey:          cfg.APIKey,
		Model:           cfg.Model,
		ResponsesURL:    cfg.ResponsesURL,
		MaxOutputTokens: cfg.MaxOutputTokens,
		HTTPClient:      &http.Client{Timeout: cfg.Timeout},
	})
}

// runHTTPServer runs the HTTP server in a separate goroutine. A failure to
// listen is delivered on the returned channel.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a server failure,
// then stops background goroutines and drains in-flight requests.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, errCh <-chan error, timeout time.Duration, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
	case runErr = <-errCh:
		log.Errorw("error starting server", "err", runErr)
	}

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return runErr
}
