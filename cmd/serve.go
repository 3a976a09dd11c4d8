package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookmate-hq/bookmate/internal/dataset"
	"github.com/bookmate-hq/bookmate/internal/handlers"
	"github.com/bookmate-hq/bookmate/internal/search"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var dataPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the book search server",
		Long: `Starts the Bookmate search API on the specified port.

The dataset is loaded lazily on the first query and held in memory for the
life of the process; restart to pick up a refreshed dataset.`,
		Example: `  # Start server on default port 8888
  bookmate serve

  # Custom port and dataset
  bookmate serve --port 3000 --data data/enriched_books.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := dataset.NewCache(dataPath)
			searcher := search.NewSearcher(cache)
			handler := handlers.New(searcher)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/search", handler.HandleSearch)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Bookmate search available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&dataPath, "data", "data/enriched_books.json", "Dataset artifact to serve (.json or .parquet)")

	return cmd
}
