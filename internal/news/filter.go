// Package news implements the content-side logic of the pipeline: relevance
// filtering of raw feed entries, normalization into Items, the category
// heuristic and batch-level trend detection.
package news

import "strings"

// gadgetKeywords decides whether a feed entry is about consumer gadgets at all.
// Any hit qualifies; matching is case-insensitive substring containment.
var gadgetKeywords = []string{
	// mobile
	"iphone", "android", "スマホ", "スマートフォン", "pixel", "galaxy", "xperia",
	// pc
	"macbook", "surface", "ノートpc", "パソコン", "pc", "laptop",
	// wearable
	"apple watch", "galaxy watch", "fitbit", "ウェアラブル", "スマートウォッチ",
	// audio
	"airpods", "イヤホン", "ヘッドホン", "スピーカー", "オーディオ", "sony wh", "bose",
	// smart home
	"alexa", "google home", "スマートホーム", "スマート家電", "iot", "nest",
	// tablets and generic launch terms
	"タブレット", "ipad", "新製品", "発売", "発表", "レビュー",
}

// IsGadgetRelated reports whether a raw entry title belongs in the pipeline.
// An empty title never matches.
func IsGadgetRelated(title string) bool {
	if title == "" {
		return false
	}
	return containsAny(strings.ToLower(title), gadgetKeywords)
}

func containsAny(lowerText string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lowerText, k) {
			return true
		}
	}
	return false
}
