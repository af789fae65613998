// Package rss ingests the configured news feeds. Each source is fetched and
// parsed independently; a broken source contributes zero entries and never
// aborts the others.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"gadgetinfo/internal/logger"
	"gadgetinfo/internal/retry"
)

// Source is one configured feed.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SourcesConfig is the YAML config structure:
//
//	sources:
//	  - name: ITmedia Mobile
//	    url: https://...
type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the feed source list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feeds config: %w", err)
	}
	defer f.Close()

	var cfg SourcesConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse feeds config: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("feeds config %s lists no sources", path)
	}
	return cfg.Sources, nil
}

// Entry is one raw feed entry together with its source label.
type Entry struct {
	Item       *gofeed.Item
	SourceName string
}

// Fetcher downloads and parses the configured feeds.
type Fetcher struct {
	client        *http.Client
	maxConcurrent int
	retryAttempts int
	retryDelay    time.Duration
}

// NewFetcher creates a fetcher; timeout bounds each feed download.
func NewFetcher(timeout time.Duration, retryAttempts int, retryDelay time.Duration) *Fetcher {
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	return &Fetcher{
		client:        &http.Client{Timeout: timeout},
		maxConcurrent: 4,
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
	}
}

// FetchAll downloads all sources concurrently and returns their entries
// concatenated in configuration order, so the combined sequence is stable
// regardless of which source finished first. Per-source failures are logged
// and skipped.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) []Entry {
	results := make([][]Entry, len(sources))
	var mu sync.Mutex
	ok := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.maxConcurrent)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			entries, err := f.fetchSource(ctx, src)
			if err != nil {
				logger.Warn("feed fetch failed", "source", src.Name, "url", src.URL, "err", err)
				return nil // isolation boundary: never fail the group
			}
			logger.Info("feed loaded", "source", src.Name, "entries", len(entries))
			results[i] = entries
			mu.Lock()
			ok++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var all []Entry
	for _, entries := range results {
		all = append(all, entries...)
	}
	logger.Info("feed ingestion done", "sources_ok", ok, "sources_total", len(sources), "entries", len(all))
	return all
}

// fetchSource downloads and parses one feed, retrying transient failures.
func (f *Fetcher) fetchSource(ctx context.Context, src Source) ([]Entry, error) {
	var feed *gofeed.Feed

	err := retry.WithRetry(ctx, retry.RetryConfig{
		MaxAttempts: f.retryAttempts,
		Delay:       f.retryDelay,
		Backoff:     true,
	}, func() error {
		parser := gofeed.NewParser()
		parser.Client = f.client
		parsed, err := parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			return err
		}
		feed = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, Entry{Item: item, SourceName: src.Name})
	}
	return entries, nil
}
