package news

import (
	"strings"

	"gadgetinfo/internal/gadget"
)

// categoryRules is an ordered rule chain; the first rule whose keyword list hits
// wins. Gaming hardware has no bucket of its own in the fixed category set, so
// those titles land in PC. The ordering and the Mobile default are relied on by
// the enricher when it rejects an AI-supplied category.
var categoryRules = []struct {
	keywords []string
	category string
}{
	{[]string{
		"playstation", "ps5", "nintendo", "switch", "steam deck", "xbox",
		"geforce", "rtx", "gaming", "ゲーミング",
	}, gadget.CategoryPC},
	{[]string{"iphone", "android", "スマホ", "galaxy", "pixel"}, gadget.CategoryMobile},
	{[]string{"macbook", "pc", "パソコン", "laptop", "surface"}, gadget.CategoryPC},
	{[]string{"watch", "ウェアラブル", "fitbit", "リング"}, gadget.CategoryWearable},
	{[]string{"airpods", "イヤホン", "ヘッドホン", "スピーカー", "オーディオ"}, gadget.CategoryAudio},
	{[]string{"alexa", "google home", "スマートホーム", "nest"}, gadget.CategorySmartHome},
}

// GuessCategory maps a title onto the fixed category set. Total: any input,
// including the empty string, yields a valid category (Mobile by default).
func GuessCategory(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return gadget.CategoryMobile
}
