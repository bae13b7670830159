package analysis

import (
	"sort"
	"strings"

	"github.com/spacesedan/reviewlens/internal/textutil"
)

const maxKeyPhrases = 5

// Curated two-word phrases worth keeping whenever they appear literally.
var knownMeaningfulPhrases = []string{
	"food quality", "customer service", "great food", "good food",
	"friendly staff", "long wait", "slow service", "fast service",
	"value for money", "highly recommend", "great experience",
	"bad experience", "rude staff", "clean place", "great atmosphere",
}

// Token combinations that survive the stopword filter but mean nothing.
var nonsensePhrases = map[string]struct{}{
	"really good":  {},
	"really bad":   {},
	"very good":    {},
	"very bad":     {},
	"much better":  {},
	"come back":    {},
	"go back":      {},
	"one time":     {},
	"first time":   {},
	"last time":    {},
	"next time":    {},
	"every time":   {},
	"long time":    {},
	"other people": {},
}

var importantWordCategories = []struct {
	category string
	words    []string
}{
	{"food", []string{"food", "meal", "taste", "delicious", "menu"}},
	{"service", []string{"service", "staff", "waiter", "server"}},
	{"price", []string{"price", "expensive", "cheap", "value"}},
	{"cleanliness", []string{"clean", "dirty", "hygiene"}},
	{"atmosphere", []string{"ambiance", "atmosphere", "music", "decor"}},
}

// ExtractKeyPhrases mines up to five bigram/trigram phrases by frequency,
// backfilling from the curated phrase list and finally from single important
// words so short reviews still yield something useful.
func ExtractKeyPhrases(text string) []string {
	tokens := textutil.Tokenize(text)

	counts := make(map[string]int)
	var order []string
	record := func(window []string) {
		for _, t := range window {
			if len(t) < 3 || textutil.IsStopword(t) {
				return
			}
		}
		phrase := strings.Join(window, " ")
		if _, nonsense := nonsensePhrases[phrase]; nonsense {
			return
		}
		if counts[phrase] == 0 {
			order = append(order, phrase)
		}
		counts[phrase]++
	}

	for i := 0; i+1 < len(tokens); i++ {
		record(tokens[i : i+2])
		if i+2 < len(tokens) {
			record(tokens[i : i+3])
		}
	}

	// Frequency-ranked, first-seen order breaking ties for determinism.
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	phrases := order
	if len(phrases) > maxKeyPhrases {
		phrases = phrases[:maxKeyPhrases]
	}

	if len(phrases) < 3 {
		phrases = backfillKnownPhrases(text, phrases)
	}
	if len(phrases) == 0 {
		phrases = importantSingleWords(text)
	}

	return phrases
}

func backfillKnownPhrases(text string, phrases []string) []string {
	lower := strings.ToLower(text)
	for _, known := range knownMeaningfulPhrases {
		if len(phrases) >= maxKeyPhrases {
			break
		}
		if !strings.Contains(lower, known) {
			continue
		}
		dup := false
		for _, existing := range phrases {
			if existing == known {
				dup = true
				break
			}
		}
		if !dup {
			phrases = append(phrases, known)
		}
	}
	return phrases
}

func importantSingleWords(text string) []string {
	lower := strings.ToLower(text)
	var words []string
	for _, group := range importantWordCategories {
		for _, w := range group.words {
			if containsWord(lower, w) {
				words = append(words, w)
				break
			}
		}
		if len(words) >= maxKeyPhrases {
			break
		}
	}
	if words == nil {
		return []string{}
	}
	return words
}
