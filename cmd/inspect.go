package cmd

import (
	"fmt"

	"github.com/bookmate-hq/bookmate/internal/dataset"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var dataPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a dataset artifact",
		Long: `Prints a dataset's stats and a sample of its canonical books.

Useful for sanity-checking an enrichment run before pointing serve at it.`,
		Example: `  # Summarize the default dataset
  bookmate inspect

  # Show the first 20 books of a parquet dataset
  bookmate inspect --data data/enriched_books.parquet --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(dataPath)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			fmt.Printf("Dataset: %s\n", dataPath)
			if !ds.GeneratedAt.IsZero() {
				fmt.Printf("Generated: %s\n", ds.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
			}
			fmt.Printf("Unique books:            %d\n", ds.Stats.TotalUniqueBooks)
			fmt.Printf("Club interactions:       %d\n", ds.Stats.TotalClubInteractions)
			fmt.Printf("Books with genre data:   %d\n", ds.Stats.BooksWithGenre)
			fmt.Printf("Books read by 2+ clubs:  %d\n", ds.Stats.BooksReadByMultipleClubs)
			fmt.Printf("Genre vocabulary:        %d\n", len(ds.AllGenres))

			if limit > len(ds.Books) {
				limit = len(ds.Books)
			}
			if limit > 0 {
				fmt.Println()
			}
			for i := 0; i < limit; i++ {
				b := ds.Books[i]
				marker := " "
				if b.Verified {
					marker = "*"
				}
				fmt.Printf("%s %q by %s (%d clubs)\n", marker, b.Title, b.Author, len(b.Clubs))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "data/enriched_books.json", "Dataset artifact (.json or .parquet)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of books to list (0 for none)")

	return cmd
}
