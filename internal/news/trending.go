package news

import (
	"sort"
	"strings"

	"gadgetinfo/internal/gadget"
)

// trendKeywords are the product families the trend detector counts across the
// batch. Deliberately a separate, narrower table than gadgetKeywords: relevance
// casts a wide net, trending only tracks headline product lines.
var trendKeywords = []string{
	"iphone", "pixel", "galaxy", "macbook", "surface", "airpods", "apple watch",
}

// minTrending is the floor enforced after keyword counting: if fewer items end
// up trending, the most recent ones are promoted until this many are.
const minTrending = 3

// MarkTrending flags items whose product keyword shows up in at least two
// titles across the batch, then promotes the newest items until at least
// minTrending are flagged. Flags are only ever raised; a true value set by the
// enricher survives. Recency ties keep the input order (stable sort), so the
// result is reproducible for a fixed input sequence.
func MarkTrending(items []gadget.Item) {
	counts := make(map[string]int, len(trendKeywords))
	for i := range items {
		title := strings.ToLower(items[i].Title)
		for _, k := range trendKeywords {
			if strings.Contains(title, k) {
				counts[k]++
			}
		}
	}

	for i := range items {
		title := strings.ToLower(items[i].Title)
		for _, k := range trendKeywords {
			if counts[k] >= 2 && strings.Contains(title, k) {
				items[i].Trending = true
				break
			}
		}
	}

	trending := 0
	for i := range items {
		if items[i].Trending {
			trending++
		}
	}
	if trending >= minTrending {
		return
	}

	// indices sorted by recency, newest first; stable keeps input order on ties
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].PublishedAt.After(items[idx[b]].PublishedAt)
	})
	for i := 0; i < len(idx) && i < minTrending; i++ {
		items[idx[i]].Trending = true
	}
}
