package analysis

import "github.com/spacesedan/reviewlens/internal/models"

// Business actions keyed by topic, negative-sentiment variants only; positive
// reviews map to a reinforcement action per topic class.
var negativeTopicActions = map[string]string{
	"food quality":             "Review kitchen quality controls and ingredient freshness",
	"service quality":          "Audit front-of-house service standards",
	"wait time":                "Review staffing levels during peak hours",
	"cleanliness":              "Schedule a deep-clean and tighten hygiene checks",
	"price and value":          "Re-evaluate pricing against local competitors",
	"atmosphere":               "Assess noise, lighting and seating comfort",
	"staff behavior":           "Reinforce customer courtesy standards with the team",
	"location":                 "Improve signage, access or parking guidance",
	"product quality":          "Inspect product handling and packaging processes",
	"speed of service":         "Streamline order preparation workflow",
	"booking and availability": "Review booking capacity and cancellation handling",
}

var positiveClassActions = map[string]string{
	"food":       "Highlight praised dishes in marketing material",
	"service":    "Recognize the team for positive service feedback",
	"facility":   "Maintain current cleanliness standards",
	"value":      "Promote value-for-money perception in campaigns",
	"experience": "Feature ambiance highlights in promotional content",
}

// GenerateRecommendations maps detected themes and overall sentiment to
// business and staff action strings.
func GenerateRecommendations(themes []models.Theme, sentimentScore float64, staffRecommendations []string) models.Recommendations {
	recs := models.Recommendations{
		BusinessActions: []string{},
		StaffActions:    []string{},
	}

	negative := sentimentScore < NeutralThreshold
	for _, theme := range themes {
		if negative {
			if action, ok := negativeTopicActions[theme.Topic]; ok {
				recs.BusinessActions = append(recs.BusinessActions, action)
			}
			continue
		}
		if sentimentScore >= PositiveThreshold {
			if action, ok := positiveClassActions[theme.Type]; ok {
				recs.BusinessActions = append(recs.BusinessActions, action)
			}
		}
	}

	if negative && len(recs.BusinessActions) == 0 {
		recs.BusinessActions = append(recs.BusinessActions, "Follow up with the customer to understand the complaint")
	}

	recs.BusinessActions = dedupeStrings(recs.BusinessActions)
	recs.StaffActions = append(recs.StaffActions, staffRecommendations...)

	return recs
}
