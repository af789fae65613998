package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gadgetinfo/internal/gadget"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFindImagePriority(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"og:image wins",
			`<html><head>
				<meta property="og:image" content="https://cdn.example.com/og.jpg">
				<meta name="twitter:image" content="https://cdn.example.com/tw.jpg">
			</head><body><article><img src="https://cdn.example.com/body.jpg"></article></body></html>`,
			"https://cdn.example.com/og.jpg",
		},
		{
			"twitter:image second",
			`<html><head>
				<meta name="twitter:image" content="https://cdn.example.com/tw.jpg">
			</head><body></body></html>`,
			"https://cdn.example.com/tw.jpg",
		},
		{
			"content image third",
			`<html><body><article><img src="https://cdn.example.com/photo.png"></article></body></html>`,
			"https://cdn.example.com/photo.png",
		},
		{
			"icons and pixels skipped",
			`<html><body><article>
				<img src="/assets/site-logo.png">
				<img src="/tracking/pixel.gif">
				<img src="/images/1x1.png">
				<img src="/photos/hero.jpg">
			</article></body></html>`,
			"/photos/hero.jpg",
		},
		{
			"extension must end the url",
			`<html><body><article><img src="/gallery/shot.jpg.html"></article></body></html>`,
			"",
		},
		{
			"image marker accepted without extension",
			`<html><body><article><img src="/cdn/image/12345"></article></body></html>`,
			"/cdn/image/12345",
		},
		{
			"nothing found",
			`<html><body><p>text only</p></body></html>`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindImage(docFrom(t, tt.html)))
		})
	}
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		img  string
		page string
		want string
	}{
		{"protocol relative", "//img.example.com/a.jpg", "https://example.com/x", "https://img.example.com/a.jpg"},
		{"root relative", "/static/a.png", "https://example.com/news/1", "https://example.com/static/a.png"},
		{"absolute untouched", "http://cdn.example.com/a.jpg", "https://example.com/x", "http://cdn.example.com/a.jpg"},
		{"unparseable base passes through", "/a.png", "://bad", "/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeImageURL(tt.img, tt.page))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []string{
		gadget.CategoryMobile, gadget.CategoryPC, gadget.CategoryWearable,
		gadget.CategoryAudio, gadget.CategorySmartHome,
	} {
		p := Placeholder(c)
		assert.Contains(t, p, "images.unsplash.com", c)
		assert.False(t, seen[p], "placeholder reused for %s", c)
		seen[p] = true
	}

	assert.Equal(t, genericPlaceholder, Placeholder(""))
	assert.Equal(t, genericPlaceholder, Placeholder("Unknown"))
}

func TestResolveAll(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:image" content="//cdn.example.com/lead.jpg"></head></html>`))
	}))
	defer article.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	items := []gadget.Item{
		{SourceURL: article.URL, Category: gadget.CategoryMobile},
		{SourceURL: broken.URL, Category: gadget.CategoryAudio},
		{SourceURL: "", Category: gadget.CategoryPC},
		{SourceURL: article.URL, ImageURL: "https://already.example.com/set.jpg"},
	}

	NewResolver(5*time.Second, nil).ResolveAll(context.Background(), items)

	assert.Equal(t, "https://cdn.example.com/lead.jpg", items[0].ImageURL)
	assert.Equal(t, Placeholder(gadget.CategoryAudio), items[1].ImageURL)
	assert.Equal(t, Placeholder(gadget.CategoryPC), items[2].ImageURL)
	assert.Equal(t, "https://already.example.com/set.jpg", items[3].ImageURL)
}
