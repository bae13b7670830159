package analysis

import (
	"strings"

	"github.com/spacesedan/reviewlens/internal/textutil"
)

var negationWords = []string{
	"not", "no", "never", "nothing", "n't", "dont", "don't", "didnt",
	"didn't", "wasnt", "wasn't", "isnt", "isn't", "wont", "won't",
	"couldnt", "couldn't", "wouldnt", "wouldn't", "cant", "can't",
	"hardly", "barely",
}

// IsNegated reports whether keyword appears in a negated context. Scope is
// the first sentence containing the keyword; later occurrences are not
// checked. That precision limit is intentional and relied on by callers.
func IsNegated(text, keyword string) bool {
	lower := strings.ToLower(text)
	keyword = strings.ToLower(keyword)

	for _, sentence := range textutil.SplitSentences(lower) {
		if !strings.Contains(sentence, keyword) {
			continue
		}
		return sentenceHasNegation(sentence)
	}

	return false
}

// sentenceHasNegation checks a single, already-lowercased sentence for any
// recognized negation word.
func sentenceHasNegation(sentence string) bool {
	tokens := textutil.Tokenize(sentence)
	for _, token := range tokens {
		for _, neg := range negationWords {
			if token == neg {
				return true
			}
		}
	}
	// Contracted negatives survive tokenization as part of the verb.
	return strings.Contains(sentence, "n't")
}
