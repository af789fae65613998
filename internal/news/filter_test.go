package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGadgetRelated(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"english product", "iPhone 16 Pro hands-on review", true},
		{"japanese product", "新型スマートフォンが発表", true},
		{"case insensitive", "MACBOOK Air refresh rumored", true},
		{"launch term only", "ソニー、新製品を発売", true},
		{"audio", "ノイズキャンセリングイヤホン比較", true},
		{"unrelated", "Quarterly earnings beat expectations", false},
		{"unrelated japanese", "今日の天気予報", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGadgetRelated(tt.title))
		})
	}
}
