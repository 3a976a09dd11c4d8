package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bookmate-hq/bookmate/internal/dataset"
	"github.com/bookmate-hq/bookmate/internal/enrich"
	"github.com/bookmate-hq/bookmate/internal/gemini"
	"github.com/bookmate-hq/bookmate/internal/googlebooks"
	"github.com/bookmate-hq/bookmate/internal/mention"
	"github.com/bookmate-hq/bookmate/internal/resolver"
	"github.com/spf13/cobra"
)

// The free Google Books quota allows ~100 calls/minute; ride just under it.
const lookupRPS = 1.5

func newEnrichCmd() *cobra.Command {
	var configPath string
	var dataDir string
	var out string
	var cachePath string
	var reportDir string
	var quota int
	var concurrency int
	var noLookup bool

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Merge scraped book mentions into one canonical dataset",
		Long: `Consolidates the scrapers' raw output into a single deduplicated dataset.

Mentions are grouped by normalized title/author, optionally merged further via
Gemini embeddings (set GEMINI_API_KEY), and the highest-priority clusters are
resolved against the Google Books API (set GOOGLE_BOOKS_API_KEY) up to the
daily quota. The output artifact wholly replaces any previous snapshot.`,
		Example: `  # Standard run over the default scraper outputs in ./data
  bookmate enrich

  # Custom source list and a lower API budget
  bookmate enrich --config sources.yaml --quota 500

  # String-only deduplication, no API calls
  bookmate enrich --no-lookup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var cfg *mention.Config
			if configPath != "" {
				var err error
				cfg, err = mention.LoadConfig(configPath)
				if err != nil {
					return err
				}
			} else {
				cfg = mention.DefaultConfig(dataDir)
			}

			collections, err := mention.LoadAll(cfg)
			if err != nil {
				return err
			}
			if len(collections) == 0 {
				return fmt.Errorf("no source files found; run the scrapers first or pass --config")
			}

			var res enrich.Resolver
			if !noLookup {
				provider, err := googlebooks.NewClient(ctx, os.Getenv("GOOGLE_BOOKS_API_KEY"), lookupRPS)
				if err != nil {
					return err
				}

				var cache *resolver.Cache
				cache, err = resolver.OpenCache(cachePath)
				if err != nil {
					slog.Warn("Lookup cache unavailable, continuing without it", "path", cachePath, "err", err)
					cache = nil
				} else {
					defer cache.Close()
					if n, err := cache.Len(); err == nil {
						slog.Info("Lookup cache opened", "path", cachePath, "entries", n)
					}
				}

				res = resolver.New(provider, cache)
			}

			var embedder enrich.Embedder
			if key := os.Getenv("GEMINI_API_KEY"); key != "" {
				e, err := gemini.NewEmbedder(ctx, key)
				if err != nil {
					slog.Warn("Embedder unavailable, skipping fuzzy merge", "err", err)
				} else {
					defer e.Close()
					embedder = e
				}
			}

			engine := enrich.New(res, enrich.Options{
				Embedder:    embedder,
				Quota:       quota,
				Concurrency: concurrency,
			})

			ds, report, err := engine.Run(ctx, collections)
			if err != nil {
				return err
			}

			if err := dataset.Save(ds, out); err != nil {
				return err
			}

			if path, err := enrich.SaveReport(reportDir, report); err != nil {
				slog.Warn("Failed to write run report", "err", err)
			} else {
				slog.Info("Run report written", "path", path)
			}

			fmt.Printf("Enriched %d raw mentions into %d unique books (%d resolved, %d fallback)\n",
				report.RawMentions, report.UniqueBooks, report.Resolved, report.Fallback)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML source config (defaults to the three scrapers under --data-dir)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory holding the scrapers' output files")
	cmd.Flags().StringVarP(&out, "out", "o", "data/enriched_books.json", "Output dataset path (.json or .parquet)")
	cmd.Flags().StringVar(&cachePath, "cache", "data/lookup_cache.db", "SQLite lookup cache path")
	cmd.Flags().StringVar(&reportDir, "reports", "reports", "Directory for YAML run reports")
	cmd.Flags().IntVar(&quota, "quota", 1000, "Max Google Books lookups per run")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Concurrent provider lookups")
	cmd.Flags().BoolVar(&noLookup, "no-lookup", false, "Skip Google Books lookups entirely")

	return cmd
}
