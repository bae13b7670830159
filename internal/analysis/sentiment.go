package analysis

import (
	"strings"

	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

// Sentiment label thresholds. SentimentLabel is the only place in the
// codebase allowed to map a score onto a label.
const (
	PositiveThreshold = 0.7
	NeutralThreshold  = 0.4
)

var positiveLexicon = map[string]float64{
	"excellent": 3, "amazing": 3, "outstanding": 3, "fantastic": 3,
	"wonderful": 3, "superb": 3, "exceptional": 3, "delicious": 3,
	"perfect": 3, "best": 2.5, "awesome": 2.5, "loved": 2.5, "love": 2.5,
	"great": 2, "tasty": 2, "friendly": 2, "helpful": 2, "clean": 2,
	"fresh": 2, "polite": 2, "professional": 2, "recommend": 2,
	"impressed": 2, "enjoyed": 2, "beautiful": 2, "comfortable": 2,
	"good": 1.5, "nice": 1.5, "happy": 1.5, "pleasant": 1.5, "quick": 1.5,
	"fast": 1.5, "attentive": 1.5, "welcoming": 1.5, "courteous": 1.5,
	"decent": 1, "satisfied": 1, "reasonable": 1,
}

var negativeLexicon = map[string]float64{
	"disgusting": 3, "horrible": 3, "terrible": 3, "awful": 3,
	"worst": 3, "filthy": 3, "inedible": 3, "appalling": 3, "atrocious": 3,
	"rude": 2.5, "unacceptable": 2.5, "disappointing": 2.5, "hated": 2.5,
	"dirty": 2.5, "stale": 2.5, "cold": 1, "disappointed": 2.5,
	"bad": 2, "poor": 2, "slow": 2, "unprofessional": 2, "ignored": 2,
	"overpriced": 2, "unfriendly": 2, "careless": 2, "unhygienic": 2.5,
	"mediocre": 1.5, "bland": 1.5, "noisy": 1.5, "crowded": 1,
	"expensive": 1.5, "late": 1.5, "wrong": 1.5, "waited": 1, "wait": 1,
	"angry": 2, "upset": 2, "frustrating": 2, "frustrated": 2,
}

var neutralIndicators = []string{
	"okay", "ok", "fine", "average", "normal", "standard", "usual",
	"alright", "typical", "moderate",
}

// sentimentBands maps the positive weight ratio to one of nine fixed score
// bands. Bucketing keeps scores stable across lexicon tweaks; do not replace
// with a continuous function.
func sentimentBand(ratio float64) float64 {
	switch {
	case ratio >= 0.85:
		return 0.9
	case ratio >= 0.75:
		return 0.8
	case ratio >= 0.65:
		return 0.7
	case ratio >= 0.55:
		return 0.6
	case ratio >= 0.45:
		return 0.5
	case ratio >= 0.35:
		return 0.4
	case ratio >= 0.25:
		return 0.3
	case ratio >= 0.15:
		return 0.2
	default:
		return 0.1
	}
}

// SentimentScore computes a negation-aware weighted lexicon score in [0,1].
// Pure function; empty or unmatched text degrades to neutral defaults.
func SentimentScore(text string) float64 {
	lower := strings.ToLower(text)
	var posScore, negScore float64

	for _, sentence := range textutil.SplitSentences(lower) {
		negated := sentenceHasNegation(sentence)
		tokens := textutil.Tokenize(sentence)

		for _, token := range tokens {
			if w, ok := positiveLexicon[token]; ok {
				if negated {
					// "not good" reads as negative without phrase parsing.
					negScore += w
				} else {
					posScore += w
				}
			}
			if w, ok := negativeLexicon[token]; ok {
				if negated {
					posScore += w
				} else {
					negScore += w
				}
			}
		}
	}

	// Idiom exceptions, applied after the lexicon walk. "not happy" is a
	// strong complaint marker; "not bad" is mild approval.
	if strings.Contains(lower, "not happy") {
		negScore += 3
	}
	if strings.Contains(lower, "not bad") {
		posScore += 1.5
	}

	total := posScore + negScore
	if total == 0 {
		for _, indicator := range neutralIndicators {
			if strings.Contains(lower, indicator) {
				return 0.5
			}
		}
		// Long enthusiastic text with no lexicon hits leans mildly
		// positive. Explicit bias, covered by tests.
		if len(lower) > 40 && strings.Contains(lower, "!") {
			return 0.6
		}
		return 0.5
	}

	return sentimentBand(posScore / total)
}

// SentimentLabel maps a score onto the canonical label under the fixed
// thresholds. Every consumer must go through this function.
func SentimentLabel(score float64) string {
	switch {
	case score >= PositiveThreshold:
		return models.SentimentPositive
	case score >= NeutralThreshold:
		return models.SentimentNeutral
	default:
		return models.SentimentNegative
	}
}
