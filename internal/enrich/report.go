package enrich

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Report summarizes one enrichment run for the YAML run report.
type Report struct {
	Timestamp      string   `yaml:"timestamp"`
	Sources        []string `yaml:"sources"`
	Quota          int      `yaml:"quota"`
	RawMentions    int      `yaml:"rawmentions"`
	Clusters       int      `yaml:"clusters"`
	Resolved       int      `yaml:"resolved"`
	Fallback       int      `yaml:"fallback"`
	UniqueBooks    int      `yaml:"uniquebooks"`
	BooksWithGenre int      `yaml:"bookswithgenre"`
	MultiClubBooks int      `yaml:"multiclubbooks"`
}

// SaveReport writes a timestamped run report into dir.
func SaveReport(dir string, report Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	report.Timestamp = timestamp

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("enrich_%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
