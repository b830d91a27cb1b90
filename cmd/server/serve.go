package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/marvel/internal/characters"
	"github.com/rpattn/marvel/internal/middleware"
	"github.com/rpattn/marvel/internal/repository"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		repo, closeRepo, err := openRepository(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeRepo()

		server := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      newRouter(repo, cfg.Server.AllowedOrigins, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logger.Info("shutting down server")

		// Graceful shutdown with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server exited")
		return nil
	},
}

// newRouter assembles the middleware chain around the character routes.
func newRouter(repo repository.CharacterRepository, allowedOrigins []string, logger *zap.Logger) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
	})

	app := middleware.DataLoaderMiddleware(repo)(characters.NewHTTPHandler(repo, logger))

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", http.RedirectHandler("/characters", http.StatusFound))
	mux.Handle("/characters", app)
	mux.Handle("/characters/", app)
	mux.Handle("/api/", corsHandler.Handler(app))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := repo.Count(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.LoggingMiddleware(logger)(mux)
}
