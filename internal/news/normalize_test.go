package news

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	published := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	entry := &gofeed.Item{
		Title:           "iPhone 17発表",
		Link:            "https://example.com/article",
		Description:     "本文の抜粋",
		PublishedParsed: &published,
	}

	n := Normalizer{}
	item := n.Normalize(entry, "ITmedia Mobile")

	assert.Len(t, item.ID, 8)
	assert.Equal(t, "iPhone 17発表", item.Title)
	assert.Equal(t, "https://example.com/article", item.SourceURL)
	assert.Equal(t, "ITmedia Mobile", item.SourceName)
	assert.Equal(t, published, item.PublishedAt)
	assert.Equal(t, "本文の抜粋", item.OriginalContent)

	// enrichment-owned fields stay empty at this stage
	assert.Empty(t, item.Summary)
	assert.Empty(t, item.Category)
	assert.Nil(t, item.Price)
	assert.False(t, item.Trending)
}

func TestNormalizeMissingDateUsesClock(t *testing.T) {
	fixed := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	n := Normalizer{Now: func() time.Time { return fixed }}

	item := n.Normalize(&gofeed.Item{Title: "新製品"}, "CNET Japan")
	assert.Equal(t, fixed, item.PublishedAt)
}

func TestNormalizeUniqueIDs(t *testing.T) {
	n := Normalizer{}
	entry := &gofeed.Item{Title: "t"}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := n.Normalize(entry, "s").ID
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
