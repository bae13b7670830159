package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"english", "Great food and friendly staff.", "en"},
		{"empty defaults to english", "", "en"},
		{"arabic script", "خدمة ممتازة", "ar"},
		{"devanagari script", "खाना बहुत अच्छा था", "hi"},
		{"han script", "食物很好吃", "zh"},
		{"cyrillic script", "Отличный сервис", "ru"},
		{"latin with punctuation stays english", "C'est bon!", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}
