package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmate",
		Short: "Book club search engine with metadata-backed deduplication",
		Long: `Bookmate consolidates book mentions scraped from reading-group sites
(Reddit, Bookclubs.com, Goodreads) into one canonical dataset and serves
relevance-ranked fuzzy search over it.

The enrich command merges raw scraped mentions into canonical books using the
Google Books API; the serve command answers search queries over the result.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newEnrichCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
