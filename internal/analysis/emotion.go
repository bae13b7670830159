package analysis

import (
	"strings"

	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

type emotionCategory struct {
	name     string
	negative bool
	keywords map[string]float64
}

// Category order is fixed so ties resolve deterministically.
var emotionCategories = []emotionCategory{
	{
		name:     models.EmotionAnger,
		negative: true,
		keywords: map[string]float64{
			"angry": 3, "furious": 3, "outraged": 3, "rude": 2,
			"unacceptable": 2.5, "ridiculous": 2, "annoyed": 2,
			"irritated": 2, "infuriating": 3, "disrespectful": 2.5,
		},
	},
	{
		name: models.EmotionJoy,
		keywords: map[string]float64{
			"love": 2.5, "loved": 2.5, "amazing": 2.5, "wonderful": 2.5,
			"delighted": 3, "happy": 2, "enjoyed": 2, "fantastic": 2.5,
			"thrilled": 3, "pleased": 2, "delicious": 2, "excellent": 2,
		},
	},
	{
		name:     models.EmotionSadness,
		negative: true,
		keywords: map[string]float64{
			"disappointed": 2.5, "disappointing": 2.5, "sad": 2.5,
			"unfortunate": 2, "letdown": 2.5, "regret": 2, "shame": 2,
			"heartbroken": 3, "miserable": 2.5,
		},
	},
	{
		name:     models.EmotionFear,
		negative: true,
		keywords: map[string]float64{
			"scared": 3, "afraid": 3, "worried": 2, "unsafe": 2.5,
			"dangerous": 2.5, "concerned": 1.5, "alarming": 2.5,
		},
	},
	{
		name: models.EmotionSurprise,
		keywords: map[string]float64{
			"surprised": 2.5, "unexpected": 2, "wow": 2.5, "unbelievable": 2,
			"shocking": 2, "shocked": 2, "incredible": 2,
		},
	},
	{
		name:     models.EmotionDisgust,
		negative: true,
		keywords: map[string]float64{
			"disgusting": 3, "gross": 3, "filthy": 2.5, "revolting": 3,
			"nasty": 2.5, "vile": 3, "unhygienic": 2.5, "stale": 2,
		},
	},
}

var intensifiers = map[string]struct{}{
	"very": {}, "really": {}, "extremely": {}, "absolutely": {},
	"so": {}, "totally": {}, "completely": {}, "incredibly": {},
}

var sarcasmPositiveMarkers = []string{"great", "excellent", "amazing", "wonderful", "fantastic", "perfect"}

var sarcasmNegativeMarkers = []string{"terrible", "awful", "horrible", "worst", "disgusting"}

// ClassifyEmotion returns the primary emotion and its intensity for a text,
// reconciled against the supplied sentiment score so the two signals never
// contradict each other in the output.
func ClassifyEmotion(text string, sentimentScore float64) (string, string) {
	lower := strings.ToLower(text)

	if isSarcastic(lower, sentimentScore) {
		return models.EmotionSarcasm, "medium"
	}

	weights := make(map[string]float64, len(emotionCategories))
	tokens := textutil.Tokenize(lower)

	for _, cat := range emotionCategories {
		for i, token := range tokens {
			w, ok := cat.keywords[token]
			if !ok {
				continue
			}
			if IsNegated(lower, token) {
				if cat.negative {
					// Denying a negative emotion still hints at it,
					// just weakly ("I'm not angry, but...").
					weights[cat.name] += w * 0.25
				} else {
					weights[cat.name] -= w
				}
				continue
			}
			if i > 0 {
				if _, intens := intensifiers[tokens[i-1]]; intens {
					w += w * 0.5
				}
			}
			weights[cat.name] += w
		}
	}

	primary, max := "", 0.0
	for _, cat := range emotionCategories {
		if weights[cat.name] > max {
			primary = cat.name
			max = weights[cat.name]
		}
	}

	if primary == "" {
		primary = emotionFromSentiment(sentimentScore)
	}

	primary = ReconcileEmotion(primary, sentimentScore)

	return primary, emotionIntensity(max)
}

func isSarcastic(lower string, sentimentScore float64) bool {
	if sentimentScore < NeutralThreshold {
		for _, marker := range sarcasmPositiveMarkers {
			if strings.Contains(lower, marker) && !IsNegated(lower, marker) {
				return true
			}
		}
	}
	if sentimentScore >= PositiveThreshold {
		for _, marker := range sarcasmNegativeMarkers {
			if strings.Contains(lower, marker) && !IsNegated(lower, marker) {
				return true
			}
		}
	}
	return false
}

func emotionFromSentiment(score float64) string {
	switch {
	case score >= PositiveThreshold:
		return models.EmotionJoy
	case score <= 0.3:
		return models.EmotionSadness
	default:
		return models.EmotionNeutral
	}
}

// ReconcileEmotion overrides an emotion that contradicts the sentiment
// score. Joy on a negative review (or anger/sadness on a positive one) is
// replaced with the sentiment-derived emotion. Exported so the orchestrator
// can enforce the same invariant on remote responses.
func ReconcileEmotion(primary string, score float64) string {
	if primary == models.EmotionJoy && score < NeutralThreshold {
		return emotionFromSentiment(score)
	}
	if (primary == models.EmotionAnger || primary == models.EmotionSadness) && score >= PositiveThreshold {
		return emotionFromSentiment(score)
	}
	return primary
}

func emotionIntensity(weight float64) string {
	switch {
	case weight >= 3:
		return "high"
	case weight >= 1.5:
		return "medium"
	default:
		return "low"
	}
}
