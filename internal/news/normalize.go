package news

import (
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"gadgetinfo/internal/gadget"
)

// Normalizer converts accepted feed entries into canonical Items.
type Normalizer struct {
	// Now supplies the fallback publication time; defaults to time.Now.
	Now func() time.Time
}

// Normalize builds one Item from a raw entry and its source label. The entry is
// assumed to have passed the relevance filter already.
func (n *Normalizer) Normalize(entry *gofeed.Item, sourceName string) gadget.Item {
	now := time.Now
	if n != nil && n.Now != nil {
		now = n.Now
	}

	item := gadget.Item{
		ID:         uuid.NewString()[:8],
		Title:      entry.Title,
		SourceURL:  entry.Link,
		SourceName: sourceName,
	}

	if entry.PublishedParsed != nil {
		item.PublishedAt = *entry.PublishedParsed
	} else {
		item.PublishedAt = now()
	}

	if entry.Description != "" {
		item.OriginalContent = entry.Description
	}

	return item
}
