package dataset

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Load reads a dataset artifact, dispatching on the file extension.
func Load(path string) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return loadJSON(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s (supported: .json, .parquet)", ext)
	}
}

func loadJSON(path string) (*Dataset, error) {
	slog.Debug("Opening dataset", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	slog.Debug("Dataset loaded", "books", len(ds.Books), "genres", len(ds.AllGenres))
	return &ds, nil
}

// loadParquet reads a parquet dataset. Parquet files carry book rows only, so
// stats and the genre vocabulary are recomputed and freshness comes from the
// file's modification time.
func loadParquet(path string) (*Dataset, error) {
	slog.Debug("Opening parquet dataset", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Book](pf)
	defer reader.Close()

	var books []Book
	rows := make([]Book, 128) // Read in batches

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			books = append(books, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	stats, genres := ComputeStats(books)

	slog.Debug("Parquet dataset loaded", "books", len(books))
	return &Dataset{
		GeneratedAt: info.ModTime().UTC(),
		Stats:       stats,
		AllGenres:   genres,
		Books:       books,
	}, nil
}

// Save writes a dataset artifact, dispatching on the file extension.
func Save(ds *Dataset, path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return saveJSON(ds, path)
	case ".parquet":
		return saveParquet(ds, path)
	default:
		return fmt.Errorf("unsupported dataset format: %s (supported: .json, .parquet)", ext)
	}
}

func saveJSON(ds *Dataset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	slog.Info("Dataset saved", "path", path, "books", len(ds.Books))
	return nil
}

func saveParquet(ds *Dataset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Book](file)
	if _, err := writer.Write(ds.Books); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Info("Dataset saved", "path", path, "books", len(ds.Books))
	return nil
}
