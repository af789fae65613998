package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gadgetinfo/internal/gadget"
)

func mkItem(title string, published time.Time) gadget.Item {
	return gadget.Item{Title: title, PublishedAt: published}
}

func TestMarkTrendingRepeatedKeyword(t *testing.T) {
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	items := []gadget.Item{
		mkItem("iPhone 17発表", base.Add(4*time.Hour)),
		mkItem("iPhone 17レビュー", base.Add(3*time.Hour)),
		mkItem("Pixel 11リーク", base.Add(2*time.Hour)),
		mkItem("Pixel 11スペック", base.Add(1*time.Hour)),
		mkItem("無関係なガジェット", base),
	}

	MarkTrending(items)

	assert.True(t, items[0].Trending)
	assert.True(t, items[1].Trending)
	assert.True(t, items[2].Trending)
	assert.True(t, items[3].Trending)
	// four already trending, no promotion needed
	assert.False(t, items[4].Trending)
}

func TestMarkTrendingPromotesNewest(t *testing.T) {
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	items := []gadget.Item{
		mkItem("記事A", base.Add(1*time.Hour)),
		mkItem("記事B", base.Add(4*time.Hour)),
		mkItem("記事C", base.Add(2*time.Hour)),
		mkItem("記事D", base.Add(3*time.Hour)),
	}

	MarkTrending(items)

	// no keyword appears twice, so the three newest get promoted
	assert.False(t, items[0].Trending)
	assert.True(t, items[1].Trending)
	assert.True(t, items[2].Trending)
	assert.True(t, items[3].Trending)
}

func TestMarkTrendingSmallBatch(t *testing.T) {
	items := []gadget.Item{
		mkItem("記事A", time.Now()),
		mkItem("記事B", time.Now()),
	}

	MarkTrending(items)

	assert.True(t, items[0].Trending)
	assert.True(t, items[1].Trending)
}

func TestMarkTrendingNeverClearsFlags(t *testing.T) {
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	items := []gadget.Item{
		mkItem("記事A", base.Add(1*time.Hour)),
		mkItem("記事B", base.Add(2*time.Hour)),
		mkItem("記事C", base.Add(3*time.Hour)),
		mkItem("記事D", base.Add(4*time.Hour)),
	}
	// oldest item was flagged by the enricher
	items[0].Trending = true

	MarkTrending(items)
	assert.True(t, items[0].Trending)

	// running again over the same batch changes nothing
	before := make([]bool, len(items))
	for i := range items {
		before[i] = items[i].Trending
	}
	MarkTrending(items)
	for i := range items {
		assert.Equal(t, before[i], items[i].Trending, "item %d", i)
	}
}

func TestMarkTrendingEmpty(t *testing.T) {
	assert.NotPanics(t, func() { MarkTrending(nil) })
	assert.NotPanics(t, func() { MarkTrending([]gadget.Item{}) })
}
