package analysis

import (
	"regexp"
	"strings"
	"sync"

	"github.com/spacesedan/reviewlens/internal/models"
)

type topicDefinition struct {
	name     string
	class    string
	keywords []string
}

// Registry order defines output order; tests depend on it being stable.
var topicDefinitions = []topicDefinition{
	{name: "food quality", class: "food", keywords: []string{"food", "meal", "dish", "taste", "tasty", "delicious", "flavor", "flavour", "menu", "portion", "undercooked", "overcooked", "stale", "fresh"}},
	{name: "service quality", class: "service", keywords: []string{"service", "served", "server", "waiter", "waitress", "staff", "attentive", "helpful", "rude", "ignored"}},
	{name: "wait time", class: "service", keywords: []string{"wait", "waiting", "waited", "slow", "queue", "delay", "delayed", "late", "forever"}},
	{name: "cleanliness", class: "facility", keywords: []string{"clean", "dirty", "filthy", "hygiene", "hygienic", "unhygienic", "spotless", "mess", "messy", "smell", "smelly"}},
	{name: "price and value", class: "value", keywords: []string{"price", "prices", "expensive", "overpriced", "cheap", "value", "worth", "affordable", "costly", "bill"}},
	{name: "atmosphere", class: "experience", keywords: []string{"ambiance", "ambience", "atmosphere", "vibe", "music", "decor", "cozy", "noisy", "lighting", "crowded"}},
	{name: "staff behavior", class: "service", keywords: []string{"polite", "impolite", "friendly", "unfriendly", "courteous", "disrespectful", "welcoming", "attitude", "behavior", "behaviour"}},
	{name: "location", class: "experience", keywords: []string{"location", "parking", "accessible", "nearby", "convenient", "directions", "far"}},
	{name: "product quality", class: "food", keywords: []string{"product", "quality", "item", "order", "packaging", "broken", "damaged", "defective"}},
	{name: "speed of service", class: "service", keywords: []string{"quick", "fast", "prompt", "speedy", "efficient", "instantly"}},
	{name: "booking and availability", class: "service", keywords: []string{"booking", "reservation", "reserved", "appointment", "availability", "fully booked", "cancelled", "canceled"}},
}

var (
	foodIndicator     = regexp.MustCompile(`\b(ate|eat|eating|lunch|dinner|breakfast|snack|drink|coffee|tea)\b`)
	serviceIndicator  = regexp.MustCompile(`\b(manager|employee|counter|till|cashier|reception|host|hostess)\b`)
	locationIndicator = regexp.MustCompile(`\b(place|area|street|corner|neighborhood|spot)\b`)
	priceIndicator    = regexp.MustCompile(`\b(paid|pay|cost|charged|money|rupees|dollars)\b`)
)

var genericPositive = []string{"good", "great", "nice", "excellent", "amazing", "best", "love", "loved"}

var genericNegative = []string{"bad", "poor", "terrible", "awful", "worst", "horrible", "disappointing"}

// ExtractThemes detects topics via keyword matching with a negation guard,
// falling back to coarse domain indicators when nothing fires directly.
// Output order follows the topic registry and is deterministic.
func ExtractThemes(text string) []models.Theme {
	lower := strings.ToLower(text)
	var themes []models.Theme
	seen := make(map[string]struct{})

	add := func(name, class string, confidence float64) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		themes = append(themes, models.Theme{Topic: name, Type: class, Confidence: confidence})
	}

	for _, def := range topicDefinitions {
		for _, kw := range def.keywords {
			if !containsWord(lower, kw) {
				continue
			}
			if IsNegated(lower, kw) {
				continue
			}
			add(def.name, def.class, 0.8)
			break
		}
	}

	// Secondary pass: coarse indicators, gated on a generic sentiment word
	// so descriptive mentions alone do not fire.
	if len(themes) == 0 && hasGenericIndicator(lower) {
		if foodIndicator.MatchString(lower) {
			add("food quality", "food", 0.5)
		}
		if serviceIndicator.MatchString(lower) {
			add("service quality", "service", 0.5)
		}
		if locationIndicator.MatchString(lower) {
			add("location", "experience", 0.5)
		}
		if priceIndicator.MatchString(lower) {
			add("price and value", "value", 0.5)
		}
	}

	return retractLocationUnlessLiteral(themes, lower)
}

func hasGenericIndicator(lower string) bool {
	for _, w := range genericPositive {
		if containsWord(lower, w) {
			return true
		}
	}
	for _, w := range genericNegative {
		if containsWord(lower, w) {
			return true
		}
	}
	return false
}

// retractLocationUnlessLiteral drops the location theme unless a
// location-specific keyword literally appears; the secondary pass over-fires
// on generic "place" mentions otherwise.
func retractLocationUnlessLiteral(themes []models.Theme, lower string) []models.Theme {
	literal := false
	for _, kw := range []string{"location", "parking", "accessible", "nearby", "convenient"} {
		if containsWord(lower, kw) {
			literal = true
			break
		}
	}
	if literal {
		return themes
	}

	filtered := themes[:0]
	for _, t := range themes {
		if t.Topic == "location" {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

var (
	wordBoundaryCache = map[string]*regexp.Regexp{}
	wordBoundaryLock  sync.Mutex
)

func containsWord(lower, word string) bool {
	if strings.Contains(word, " ") {
		return strings.Contains(lower, word)
	}
	wordBoundaryLock.Lock()
	re, ok := wordBoundaryCache[word]
	if !ok {
		re = regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
		wordBoundaryCache[word] = re
	}
	wordBoundaryLock.Unlock()
	return re.MatchString(lower)
}
