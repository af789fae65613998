// Package enrich derives summary, price, category and the provisional trending
// flag for each item, via the AI service when a key is configured and via
// deterministic defaults otherwise.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gadgetinfo/internal/gadget"
	"gadgetinfo/internal/logger"
	"gadgetinfo/internal/metrics"
	"gadgetinfo/internal/news"
	"gadgetinfo/internal/ratelimit"
)

// TextGenerator is the external text-service collaborator.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Enricher runs one enrichment call per item. A nil generator selects the
// no-AI path: every item gets the deterministic defaults, no network calls.
type Enricher struct {
	ai      TextGenerator
	limiter *ratelimit.IntervalLimiter
}

// New creates an enricher. limiter paces the outbound AI calls and may carry
// the per-run request quota; it is ignored when ai is nil.
func New(ai TextGenerator, limiter *ratelimit.IntervalLimiter) *Enricher {
	return &Enricher{ai: ai, limiter: limiter}
}

// EnrichAll processes the batch in place. Items are independent; failures are
// absorbed per item by the default step and never abort the run.
func (e *Enricher) EnrichAll(ctx context.Context, items []gadget.Item) {
	if e.ai == nil {
		logger.Info("no AI key configured, applying defaults", "items", len(items))
		for i := range items {
			applyDefaults(&items[i])
		}
		return
	}

	logger.Info("enriching items with Gemini", "items", len(items))
	for i := range items {
		e.enrichOne(ctx, &items[i])
		if (i+1)%10 == 0 {
			logger.Info("enrichment progress", "done", i+1, "total", len(items))
		}
	}
}

// aiReply is the structured payload requested from the text service. Pointer
// fields distinguish absent/null from zero values.
type aiReply struct {
	Summary    *string  `json:"summary"`
	Price      *float64 `json:"price"`
	PriceText  *string  `json:"priceText"`
	Category   *string  `json:"category"`
	IsTrending *bool    `json:"isTrending"`
}

func (e *Enricher) enrichOne(ctx context.Context, item *gadget.Item) {
	// the default step always runs last, so summary/priceText/category are
	// populated no matter what happens before
	defer applyDefaults(item)

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			logger.Warn("skipping AI enrichment", "title", item.Title, "err", err)
			metrics.Global.IncrementEnrichFailed()
			return
		}
	}

	raw, err := e.ai.GenerateText(ctx, buildPrompt(item))
	if err != nil {
		logger.Warn("AI request failed", "title", item.Title, "err", err)
		metrics.Global.IncrementEnrichFailed()
		return
	}

	var reply aiReply
	if err := json.Unmarshal([]byte(extractJSON(raw)), &reply); err != nil {
		logger.Warn("unparseable AI reply", "title", item.Title, "err", err)
		metrics.Global.IncrementEnrichFailed()
		return
	}

	apply(item, &reply)
	metrics.Global.IncrementEnrichOK()
}

// apply copies the extracted fields onto the item with per-field fallbacks.
func apply(item *gadget.Item, reply *aiReply) {
	if reply.Summary != nil {
		item.Summary = strings.TrimSpace(*reply.Summary)
	}
	if reply.Price != nil {
		price := int64(*reply.Price)
		item.Price = &price
	}
	switch {
	case reply.PriceText != nil:
		item.PriceText = strings.TrimSpace(*reply.PriceText)
	case item.Price != nil:
		item.PriceText = gadget.FormatPrice(*item.Price)
	default:
		item.PriceText = gadget.PriceUndetermined
	}
	if reply.Category != nil {
		if gadget.ValidCategory(*reply.Category) {
			item.Category = *reply.Category
		} else {
			item.Category = news.GuessCategory(item.Title)
		}
	}
	if reply.IsTrending != nil {
		item.Trending = *reply.IsTrending
	}
}

// applyDefaults fills whatever enrichment left unset.
func applyDefaults(item *gadget.Item) {
	if item.Summary == "" {
		item.Summary = item.Title + "に関する最新情報です。詳細は記事をご覧ください。"
	}
	if item.PriceText == "" {
		item.PriceText = gadget.PriceUndetermined
	}
	if item.Category == "" {
		item.Category = news.GuessCategory(item.Title)
	}
}

func buildPrompt(item *gadget.Item) string {
	content := item.OriginalContent
	if content == "" {
		content = "（内容なし）"
	}

	return fmt.Sprintf(`以下のガジェット情報を分析して、JSON形式で回答してください。

タイトル: %s
内容: %s

回答形式（JSON）:
{
  "summary": "3行以内の日本語要約（製品の特徴、性能、価格などの要点）",
  "price": 税込価格（数値のみ、不明な場合はnull）,
  "priceText": "価格表示テキスト（例：¥99,800、不明な場合は「価格未定」）",
  "category": "カテゴリ（Mobile/PC/Wearable/Audio/Smart Home のいずれか）",
  "isTrending": トレンド性が高いかどうか（true/false）
}

注意:
- summaryは必ず日本語で、製品の魅力が伝わる文章にしてください
- categoryは必ず5つのうちいずれかを選択してください
- isTrendingは、新製品発表や大きなアップデートの場合にtrueにしてください
`, item.Title, content)
}

var fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")

// extractJSON pulls a JSON payload out of a free-form reply: first a fenced
// ```json block, then the outermost brace-delimited substring, else the whole
// text as a best effort.
func extractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && start < end {
		return strings.TrimSpace(text[start : end+1])
	}

	return strings.TrimSpace(text)
}
