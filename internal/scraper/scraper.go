// Package scraper resolves a representative image for each item by fetching
// the article page. Items that already carry an image are left alone, and any
// failure falls back to a category placeholder, so the batch always ends up
// fully illustrated.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gadgetinfo/internal/gadget"
	"gadgetinfo/internal/logger"
	"gadgetinfo/internal/metrics"
	"gadgetinfo/internal/ratelimit"
)

const userAgent = "Mozilla/5.0 (compatible; gadgetinfo/1.0)"

// Placeholder images per category, served from Unsplash.
var categoryPlaceholders = map[string]string{
	gadget.CategoryMobile:    "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400&h=300&fit=crop",
	gadget.CategoryPC:        "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&h=300&fit=crop",
	gadget.CategoryWearable:  "https://images.unsplash.com/photo-1546868871-7041f2a55e12?w=400&h=300&fit=crop",
	gadget.CategoryAudio:     "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300&fit=crop",
	gadget.CategorySmartHome: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop",
}

const genericPlaceholder = "https://images.unsplash.com/photo-1519389950473-47ba0277781c?w=400&h=300&fit=crop"

// Resolver fetches article pages and extracts their lead image.
type Resolver struct {
	client  *http.Client
	limiter *ratelimit.IntervalLimiter
}

// NewResolver creates a resolver; timeout bounds each page fetch and limiter
// paces the requests so source sites are not hammered.
func NewResolver(timeout time.Duration, limiter *ratelimit.IntervalLimiter) *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// ResolveAll fills ImageURL for every item in place.
func (r *Resolver) ResolveAll(ctx context.Context, items []gadget.Item) {
	for i := range items {
		r.resolveOne(ctx, &items[i])
		if (i+1)%10 == 0 {
			logger.Info("image resolution progress", "done", i+1, "total", len(items))
		}
	}
}

func (r *Resolver) resolveOne(ctx context.Context, item *gadget.Item) {
	if item.ImageURL != "" {
		return
	}
	if item.SourceURL == "" {
		item.ImageURL = Placeholder(item.Category)
		metrics.Global.IncrementImagesPlaceholder()
		return
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			item.ImageURL = Placeholder(item.Category)
			metrics.Global.IncrementImagesPlaceholder()
			return
		}
	}

	img, err := r.extractImage(ctx, item.SourceURL)
	if err != nil || img == "" {
		if err != nil {
			logger.Debug("image extraction failed", "url", item.SourceURL, "err", err)
		}
		item.ImageURL = Placeholder(item.Category)
		metrics.Global.IncrementImagesPlaceholder()
		return
	}

	item.ImageURL = img
	metrics.Global.IncrementImagesResolved()
}

// extractImage fetches the page and returns the best image candidate, already
// normalized to an absolute URL.
func (r *Resolver) extractImage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	if img := FindImage(doc); img != "" {
		return NormalizeImageURL(img, pageURL), nil
	}
	return "", nil
}

// FindImage picks an image candidate from the document: og:image first, then
// twitter:image, then the first plausible content image.
func FindImage(doc *goquery.Document) string {
	if v, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && v != "" {
		return strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[name="twitter:image"]`).First().Attr("content"); ok && v != "" {
		return strings.TrimSpace(v)
	}

	var found string
	doc.Find("article img, .article img, .content img, main img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok {
			return true
		}
		src = strings.TrimSpace(src)
		if plausibleContentImage(src) {
			found = src
			return false
		}
		return true
	})
	return found
}

// plausibleContentImage filters out tracking pixels, icons and the like; the
// URL must end in a known image extension or carry an "image" path marker.
func plausibleContentImage(src string) bool {
	if src == "" {
		return false
	}
	lower := strings.ToLower(src)
	for _, bad := range []string{"icon", "logo", "pixel", "1x1"} {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return strings.Contains(lower, "image")
}

// NormalizeImageURL turns protocol-relative and root-relative references into
// absolute URLs against the article page; anything else passes through.
func NormalizeImageURL(img, pageURL string) string {
	if strings.HasPrefix(img, "//") {
		return "https:" + img
	}
	if strings.HasPrefix(img, "/") {
		base, err := url.Parse(pageURL)
		if err != nil || base.Host == "" {
			return img
		}
		return base.Scheme + "://" + base.Host + img
	}
	return img
}

// Placeholder returns the stock image for a category, or the generic one for
// anything unrecognized.
func Placeholder(category string) string {
	if p, ok := categoryPlaceholders[category]; ok {
		return p
	}
	return genericPlaceholder
}
