package mention

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/bookmate-hq/bookmate/internal/source"
	"gopkg.in/yaml.v3"
)

// SourceFile names one scraper output file in the enrichment config.
type SourceFile struct {
	Name string      `yaml:"name"`
	Type source.Type `yaml:"type"`
	Path string      `yaml:"path"`
}

// Config lists the scraper outputs an enrichment run should consume.
type Config struct {
	Sources []SourceFile `yaml:"sources"`
}

// LoadConfig reads a YAML source config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse source config: %w", err)
	}

	for _, src := range cfg.Sources {
		if !source.Known(src.Type) {
			return nil, fmt.Errorf("unknown source type %q for %q", src.Type, src.Name)
		}
	}

	return &cfg, nil
}

// DefaultConfig covers the three scrapers' standard output locations.
func DefaultConfig(dataDir string) *Config {
	return &Config{
		Sources: []SourceFile{
			{Name: "reddit", Type: source.Reddit, Path: dataDir + "/reddit_books.json"},
			{Name: "bookclubs", Type: source.Bookclubs, Path: dataDir + "/bookclubs_com.json"},
			{Name: "goodreads", Type: source.Goodreads, Path: dataDir + "/goodreads_groups.json"},
		},
	}
}

// LoadCollection reads one scraper output file and applies the source type's
// defaults to mentions that were scraped without a club name or category.
func LoadCollection(path string, typ source.Type) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mentions file: %w", err)
	}

	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return nil, fmt.Errorf("failed to parse mentions file %s: %w", path, err)
	}

	for i := range col.Mentions {
		m := &col.Mentions[i]
		if m.SourceType == "" {
			m.SourceType = typ
		}
		if m.ClubName == "" {
			m.ClubName = m.SourceType.DefaultClub()
		}
		if m.Category == "" {
			m.Category = m.SourceType.DefaultCategory()
		}
	}

	return &col, nil
}

// LoadAll reads every configured source. A missing file is skipped with a
// warning so a partial scrape still produces a dataset.
func LoadAll(cfg *Config) ([]Collection, error) {
	var collections []Collection
	for _, src := range cfg.Sources {
		if _, err := os.Stat(src.Path); os.IsNotExist(err) {
			slog.Warn("Source file missing, skipping", "source", src.Name, "path", src.Path)
			continue
		}

		col, err := LoadCollection(src.Path, src.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to load source %s: %w", src.Name, err)
		}
		if col.Source == "" {
			col.Source = src.Name
		}

		slog.Info("Loaded source", "source", src.Name, "mentions", len(col.Mentions))
		collections = append(collections, *col)
	}
	return collections, nil
}
