// Package googlebooks looks up canonical book metadata on the Google Books
// volumes API.
package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/time/rate"
	books "google.golang.org/api/books/v1"
	"google.golang.org/api/option"
)

// ErrNotFound means the API answered but no volume matched the query.
var ErrNotFound = errors.New("googlebooks: no matching volume")

// Descriptions longer than this are truncated before they enter the dataset.
const maxDescription = 300

// Volume is the canonical metadata for one resolved book.
type Volume struct {
	ID            string
	Title         string
	Author        string
	Categories    []string
	PageCount     int
	PublishedDate string
	Thumbnail     string
	Description   string
}

// Client is a rate-limited Google Books API client. The free quota is tight
// (1,000 calls/day, 100/minute), so every lookup waits on the limiter.
type Client struct {
	svc     *books.Service
	limiter *rate.Limiter
}

// NewClient builds a client capped at rps requests per second. The API key is
// optional; keyless requests work with a lower quota.
func NewClient(ctx context.Context, apiKey string, rps float64) (*Client, error) {
	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	svc, err := books.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create books service: %w", err)
	}

	return &Client{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Lookup returns the best-matching volume for a cleaned title/author query,
// or ErrNotFound when the API has no match.
func (c *Client) Lookup(ctx context.Context, query string) (*Volume, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := c.svc.Volumes.List(query).
		MaxResults(1).
		PrintType("books").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("volumes list failed: %w", err)
	}

	if len(res.Items) == 0 || res.Items[0].VolumeInfo == nil {
		return nil, ErrNotFound
	}

	item := res.Items[0]
	info := item.VolumeInfo

	description := truncate(info.Description, maxDescription)

	var thumbnail string
	if info.ImageLinks != nil {
		thumbnail = info.ImageLinks.Thumbnail
	}

	return &Volume{
		ID:            item.Id,
		Title:         info.Title,
		Author:        strings.Join(info.Authors, ", "),
		Categories:    info.Categories,
		PageCount:     int(info.PageCount),
		PublishedDate: info.PublishedDate,
		Thumbnail:     thumbnail,
		Description:   description,
	}, nil
}

// truncate clips s to at most max runes without splitting a multi-byte
// character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
