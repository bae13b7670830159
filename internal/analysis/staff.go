package analysis

import (
	"regexp"
	"strings"
)

// High-confidence negative phrases, each mapped straight to a recommendation.
var staffNegativePatterns = []struct {
	pattern        *regexp.Regexp
	phrase         string
	recommendation string
}{
	{regexp.MustCompile(`\bserved\s+(?:\w+\s+){0,3}badly\b`), "badly", "Service delivery training recommended"},
	{regexp.MustCompile(`\bvery\s+rude\b`), "very rude", "Customer courtesy training recommended"},
	{regexp.MustCompile(`\bignored\s+(us|me|our|my)\b`), "ignored", "Attentiveness coaching recommended"},
	{regexp.MustCompile(`\brefused\s+to\s+help\b`), "refused to help", "Customer assistance training recommended"},
	{regexp.MustCompile(`\bdid\s*n[o']t\s+listen\b`), "didn't listen", "Active listening training recommended"},
	{regexp.MustCompile(`\bgot\s+(my|our|the)\s+order\s+wrong\b`), "order wrong", "Order accuracy training recommended"},
	{regexp.MustCompile(`\bargued\s+with\b`), "argued with", "Conflict de-escalation training recommended"},
}

type staffIndicator struct {
	category        string
	recommendation  string
	keywords        []string
	negativeContext []string
	positiveContext []string
}

var staffIndicators = []staffIndicator{
	{
		category:        "communication",
		recommendation:  "Communication skills training recommended",
		keywords:        []string{"explain", "explained", "communicate", "communication", "answer", "answered", "told", "informed"},
		negativeContext: []string{"badly", "poorly", "confusing", "unclear", "wrong", "never", "failed"},
		positiveContext: []string{"clearly", "well", "patiently", "politely"},
	},
	{
		category:        "speed",
		recommendation:  "Service speed coaching recommended",
		keywords:        []string{"slow", "wait", "waited", "waiting", "delay", "late", "forever"},
		negativeContext: []string{"too", "very", "so", "extremely", "long"},
		positiveContext: []string{"quick", "fast", "prompt", "no"},
	},
	{
		category:        "knowledge",
		recommendation:  "Product knowledge training recommended",
		keywords:        []string{"know", "knew", "knowledge", "clueless", "unsure", "wrong information", "misinformed"},
		negativeContext: []string{"didn't", "didnt", "not", "nothing", "clueless", "wrong"},
		positiveContext: []string{"everything", "well", "expert"},
	},
	{
		category:        "attitude",
		recommendation:  "Customer courtesy training recommended",
		keywords:        []string{"rude", "attitude", "unfriendly", "disrespectful", "impolite", "arrogant", "dismissive", "hostile"},
		negativeContext: []string{"bad", "poor", "terrible", "very", "so"},
		positiveContext: []string{"great", "friendly", "positive"},
	},
	{
		category:        "attention",
		recommendation:  "Attentiveness coaching recommended",
		keywords:        []string{"ignored", "ignoring", "attention", "forgot", "forgotten", "unavailable", "absent", "distracted"},
		negativeContext: []string{"completely", "totally", "kept", "always"},
		positiveContext: []string{"full", "great", "every"},
	},
}

var staffRoleNouns = []string{
	"staff", "waiter", "waitress", "server", "employee", "manager",
	"cashier", "receptionist", "attendant", "barista", "host", "hostess",
}

// AnalyzeStaffPerformance derives training recommendations from a review.
// Returns empty when no staff member is identified. Sentiment is computed
// internally when the caller does not already have it (pass a negative value).
func AnalyzeStaffPerformance(text, staffID string, sentimentScore float64) []string {
	if staffID == "" {
		return []string{}
	}
	if sentimentScore < 0 {
		sentimentScore = SentimentScore(text)
	}

	lower := strings.ToLower(text)
	var recs []string

	for _, p := range staffNegativePatterns {
		if !p.pattern.MatchString(lower) {
			continue
		}
		if IsNegated(lower, p.phrase) {
			continue
		}
		recs = append(recs, p.recommendation)
	}

	for _, ind := range staffIndicators {
		if !indicatorFires(lower, ind, sentimentScore) {
			continue
		}
		recs = append(recs, ind.recommendation)
	}

	// Clearly negative review mentioning staff should always surface at
	// least a generic recommendation.
	if len(recs) == 0 && sentimentScore < NeutralThreshold && mentionsStaffRole(lower) {
		recs = append(recs, "General customer service training recommended")
	}

	return dedupeStrings(recs)
}

func indicatorFires(lower string, ind staffIndicator, sentimentScore float64) bool {
	matched := false
	for _, kw := range ind.keywords {
		if containsWord(lower, kw) || strings.Contains(lower, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, ctx := range ind.negativeContext {
		if containsWord(lower, ctx) {
			return true
		}
	}
	return sentimentScore < NeutralThreshold
}

func mentionsStaffRole(lower string) bool {
	for _, noun := range staffRoleNouns {
		if containsWord(lower, noun) {
			return true
		}
	}
	return false
}

// StaffMentioned reports whether the review names the staff member directly.
func StaffMentioned(text, staffName string) bool {
	if staffName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(staffName))
}

// StaffRiskLevel grades a staff member's risk from the review signals.
func StaffRiskLevel(sentimentScore float64, recommendations []string, moderationSeverity int) string {
	switch {
	case moderationSeverity >= severityBlock, len(recommendations) >= 3:
		return "high"
	case sentimentScore < NeutralThreshold && len(recommendations) > 0:
		return riskFromScore(sentimentScore)
	case len(recommendations) > 0:
		return "medium"
	default:
		return "low"
	}
}

func riskFromScore(score float64) string {
	if score <= 0.2 {
		return "high"
	}
	return "medium"
}

// SoftSkillScores maps the indicator categories to [0,1] scores anchored on
// overall sentiment, dented per category that produced a recommendation.
func SoftSkillScores(sentimentScore float64, recommendations []string) map[string]float64 {
	recSet := make(map[string]struct{}, len(recommendations))
	for _, r := range recommendations {
		recSet[r] = struct{}{}
	}

	scores := make(map[string]float64, len(staffIndicators))
	for _, ind := range staffIndicators {
		score := sentimentScore
		if _, hit := recSet[ind.recommendation]; hit {
			score -= 0.3
		}
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores[ind.category] = score
	}
	return scores
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
