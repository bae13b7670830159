package analysis

import (
	"strings"

	"github.com/spacesedan/reviewlens/internal/models"
)

const (
	severityBlock = 5
	severityFlag  = 3
	severityWarn  = 1
)

// Pattern families, scored additively per distinct hit.
var profanityPatterns = []string{
	"fuck", "shit", "bitch", "bastard", "asshole", "dickhead", "cunt",
	"motherfucker", "piss off", "screw you",
}

var hateSpeechPatterns = []string{
	"go back to your country", "your kind", "you people", "subhuman",
	"should not exist", "deserve to die", "all of them are",
}

var spamPatterns = []string{
	"click here", "buy now", "free money", "visit my", "promo code",
	"follow me on", "check out my", "www.", "http://", "https://",
	"earn cash", "limited offer",
}

var moderateCriticismWords = []string{
	"slow", "rude", "dirty", "bad", "poor", "terrible", "awful",
	"disappointing", "overpriced", "cold", "stale", "unprofessional",
}

var contrastiveConjunctions = []string{"but", "however", "although", "though", "except"}

// Moderate scores a review against four pattern families and buckets the
// additive severity into an action tier. Criticism words preceded by a
// contrastive conjunction are treated as legitimate mixed feedback and not
// penalized.
func Moderate(text string) models.ModerationInfo {
	lower := strings.ToLower(text)
	result := models.ModerationInfo{
		SafeForPublicDisplay: true,
		Issues:               []string{},
		Action:               models.ModerationAllow,
	}

	severity := 0

	for _, p := range profanityPatterns {
		if strings.Contains(lower, p) {
			severity += 3
			result.Issues = appendIssue(result.Issues, "profanity")
		}
	}

	for _, p := range hateSpeechPatterns {
		if strings.Contains(lower, p) {
			severity += 4
			result.Issues = appendIssue(result.Issues, "hate_speech")
		}
	}

	for _, p := range spamPatterns {
		if strings.Contains(lower, p) {
			severity += 2
			result.Issues = appendIssue(result.Issues, "spam")
		}
	}

	criticismHits := 0
	contrastive := hasContrastiveConjunction(lower)
	for _, w := range moderateCriticismWords {
		if !containsWord(lower, w) || IsNegated(lower, w) {
			continue
		}
		criticismHits++
		if contrastive {
			// "good X but slow Y" is feedback, not abuse.
			continue
		}
		severity += criticismSeverity(w)
		result.Issues = appendIssue(result.Issues, "harsh_criticism")
	}

	if criticismHits >= 3 {
		severity += 2
		result.Issues = appendIssue(result.Issues, "excessive_negativity")
	}

	result.Severity = severity
	result.Action = severityAction(severity)
	result.IsAbusive = severity >= severityFlag
	result.SafeForPublicDisplay = severity < severityFlag

	switch result.Action {
	case models.ModerationBlock:
		result.Message = "review blocked pending manual moderation"
	case models.ModerationFlagForReview:
		result.Message = "review flagged for manual moderation"
	case models.ModerationWarn:
		result.Message = "review contains strong criticism"
	}

	return result
}

// criticismSeverity: the harshest criticism words carry 2, the rest 1.
func criticismSeverity(word string) int {
	switch word {
	case "terrible", "awful", "disappointing":
		return 2
	default:
		return 1
	}
}

func severityAction(severity int) string {
	switch {
	case severity >= severityBlock:
		return models.ModerationBlock
	case severity >= severityFlag:
		return models.ModerationFlagForReview
	case severity >= severityWarn:
		return models.ModerationWarn
	default:
		return models.ModerationAllow
	}
}

func hasContrastiveConjunction(lower string) bool {
	for _, c := range contrastiveConjunctions {
		if containsWord(lower, c) {
			return true
		}
	}
	return false
}

func appendIssue(issues []string, issue string) []string {
	for _, existing := range issues {
		if existing == issue {
			return issues
		}
	}
	return append(issues, issue)
}
