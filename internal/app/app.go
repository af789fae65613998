// Package app wires the pipeline stages together and drives one batch run.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gadgetinfo/internal/config"
	"gadgetinfo/internal/enrich"
	"gadgetinfo/internal/gadget"
	"gadgetinfo/internal/gemini"
	"gadgetinfo/internal/logger"
	"gadgetinfo/internal/metrics"
	"gadgetinfo/internal/news"
	"gadgetinfo/internal/ratelimit"
	"gadgetinfo/internal/rss"
	"gadgetinfo/internal/scraper"
	"gadgetinfo/internal/storage"
)

// FeedFetcher ingests the configured sources.
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []rss.Source) []rss.Entry
}

// ItemEnricher fills summary, price and category for the batch.
type ItemEnricher interface {
	EnrichAll(ctx context.Context, items []gadget.Item)
}

// ImageResolver fills ImageURL for the batch.
type ImageResolver interface {
	ResolveAll(ctx context.Context, items []gadget.Item)
}

// App is one assembled pipeline. Collaborators are interfaces so tests can
// substitute fakes; Build wires the real ones from the configuration.
type App struct {
	cfg      *config.Config
	fetcher  FeedFetcher
	enricher ItemEnricher
	resolver ImageResolver
	save     func(*gadget.Dataset, string) error
	now      func() time.Time

	closers []func()
}

// Build assembles the pipeline from the configuration. An absent Gemini key
// selects the deterministic enrichment path.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		fetcher: rss.NewFetcher(cfg.RequestTimeout, cfg.RetryAttempts, cfg.RetryDelay),
		resolver: scraper.NewResolver(cfg.RequestTimeout,
			ratelimit.NewIntervalLimiter(cfg.ScrapeInterval, 0)),
		save: storage.SaveDataset,
		now:  time.Now,
	}

	var ai enrich.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("init Gemini: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		ai = client
	} else {
		logger.Warn("GEMINI_API_KEY not set, enrichment uses defaults only")
	}
	a.enricher = enrich.New(ai, ratelimit.NewIntervalLimiter(cfg.EnrichInterval, cfg.MaxAIRequests))

	return a, nil
}

// Close releases the external clients.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}

// Run executes one full batch: ingest, filter, enrich, illustrate, detect
// trends, save. An empty batch is not an error; only a failed artifact write
// is fatal.
func (a *App) Run(ctx context.Context) error {
	start := a.now()
	logger.Info("pipeline run started")

	sources, err := rss.LoadSources(a.cfg.FeedsConfigPath)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	entries := a.fetcher.FetchAll(ctx, sources)
	metrics.Global.AddEntriesSeen(len(entries))

	items := a.collect(entries)
	logger.Info("relevant items selected", "items", len(items), "entries", len(entries))

	if len(items) == 0 {
		logger.Warn("no relevant items this run, keeping previous dataset")
		metrics.Global.SetLastRun()
		return nil
	}

	a.enricher.EnrichAll(ctx, items)
	a.resolver.ResolveAll(ctx, items)
	news.MarkTrending(items)

	dataset := &gadget.Dataset{
		Gadgets:     items,
		LastUpdated: a.now(),
	}
	if err := a.save(dataset, a.cfg.OutputDir); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("save dataset: %w", err)
	}

	metrics.Global.RecordProcessingTime(a.now().Sub(start))
	metrics.Global.SetLastRun()
	logger.Info("pipeline run finished", "gadgets", len(dataset.Gadgets), "took", a.now().Sub(start))
	return nil
}

// collect filters the raw entries, normalizes the relevant ones and caps the
// batch at the newest MaxItems.
func (a *App) collect(entries []rss.Entry) []gadget.Item {
	normalizer := news.Normalizer{Now: a.now}

	var items []gadget.Item
	for _, entry := range entries {
		if entry.Item == nil || !news.IsGadgetRelated(entry.Item.Title) {
			continue
		}
		items = append(items, normalizer.Normalize(entry.Item, entry.SourceName))
		metrics.Global.IncrementItemsAccepted()
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > a.cfg.MaxItems {
		items = items[:a.cfg.MaxItems]
	}
	return items
}
