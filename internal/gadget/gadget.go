// Package gadget holds the data model shared by all pipeline stages.
package gadget

import (
	"strconv"
	"time"
)

// Categories form a closed set; every Item that carries a category uses one of these.
const (
	CategoryMobile    = "Mobile"
	CategoryPC        = "PC"
	CategoryWearable  = "Wearable"
	CategoryAudio     = "Audio"
	CategorySmartHome = "Smart Home"
)

// PriceUndetermined is the priceText marker used when no price could be derived.
const PriceUndetermined = "価格未定"

var validCategories = map[string]bool{
	CategoryMobile:    true,
	CategoryPC:        true,
	CategoryWearable:  true,
	CategoryAudio:     true,
	CategorySmartHome: true,
}

// ValidCategory reports whether s is a member of the fixed category set.
func ValidCategory(s string) bool {
	return validCategories[s]
}

// Item is one gadget-news record flowing through the pipeline. It is created by
// the normalizer and filled in by the enricher, image resolver and trend detector;
// stages only set previously-absent fields (trending may be raised, never cleared).
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Price       *int64    `json:"price"`
	PriceText   string    `json:"priceText"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	SourceURL   string    `json:"sourceUrl"`
	SourceName  string    `json:"sourceName"`
	PublishedAt time.Time `json:"publishedAt"`
	Trending    bool      `json:"isTrending"`

	// raw feed description, enrichment input only; not part of the output contract
	OriginalContent string `json:"-"`
}

// Dataset is the output aggregate: the final ordered item collection plus the
// generation timestamp the frontend shows as "last updated".
type Dataset struct {
	Gadgets     []Item    `json:"gadgets"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// FormatPrice renders a yen amount with thousands separators, e.g. ¥99,800.
func FormatPrice(price int64) string {
	s := strconv.FormatInt(price, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "¥-" + string(out)
	}
	return "¥" + string(out)
}
