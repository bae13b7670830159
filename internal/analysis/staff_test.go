package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeStaffPerformance(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		staffID  string
		score    float64
		wantRecs []string
	}{
		{
			name:    "staff complaint produces specific recommendations",
			text:    "Ateeq served us very badly today. He was rude and ignored our requests.",
			staffID: "1",
			score:   -1, // computed internally
			wantRecs: []string{
				"Service delivery training recommended",
				"Attentiveness coaching recommended",
				"Customer courtesy training recommended",
			},
		},
		{
			name:     "no staff identified yields nothing",
			text:     "The waiter was rude.",
			staffID:  "",
			score:    0.1,
			wantRecs: []string{},
		},
		{
			name:     "positive review yields no recommendations",
			text:     "Sara was wonderful and explained everything clearly.",
			staffID:  "2",
			score:    0.9,
			wantRecs: nil,
		},
		{
			name:     "negative review with a staff role noun gets the generic fallback",
			text:     "The cashier made the whole visit unpleasant, terrible experience.",
			staffID:  "3",
			score:    0.1,
			wantRecs: []string{"General customer service training recommended"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeStaffPerformance(tt.text, tt.staffID, tt.score)
			if tt.wantRecs == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.wantRecs, got)
		})
	}
}

func TestAnalyzeStaffPerformance_DedupesRecommendations(t *testing.T) {
	// "ignored us" fires both the pattern table and the attention indicator;
	// the recommendation must appear once.
	recs := AnalyzeStaffPerformance("He completely ignored us the entire time.", "1", 0.1)

	seen := map[string]int{}
	for _, r := range recs {
		seen[r]++
	}
	for r, n := range seen {
		assert.Equal(t, 1, n, "recommendation %q duplicated", r)
	}
	assert.Contains(t, recs, "Attentiveness coaching recommended")
}

func TestStaffMentioned(t *testing.T) {
	assert.True(t, StaffMentioned("Ateeq served us very badly today.", "Ateeq"))
	assert.True(t, StaffMentioned("ateeq was great", "Ateeq"))
	assert.False(t, StaffMentioned("The waiter was great.", "Ateeq"))
	assert.False(t, StaffMentioned("Anyone home?", ""))
}

func TestStaffRiskLevel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		recs     []string
		severity int
		want     string
	}{
		{"three recommendations is high risk", 0.5, []string{"a", "b", "c"}, 0, "high"},
		{"blocked review is high risk", 0.5, nil, 6, "high"},
		{"very negative with recommendations is high risk", 0.15, []string{"a"}, 0, "high"},
		{"mildly negative with recommendations is medium risk", 0.3, []string{"a"}, 0, "medium"},
		{"positive with a recommendation is medium risk", 0.8, []string{"a"}, 0, "medium"},
		{"no signals is low risk", 0.9, nil, 0, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StaffRiskLevel(tt.score, tt.recs, tt.severity))
		})
	}
}

func TestSoftSkillScores(t *testing.T) {
	scores := SoftSkillScores(0.8, []string{"Service speed coaching recommended"})

	assert.Len(t, scores, 5)
	assert.InDelta(t, 0.5, scores["speed"], 0.001)
	for _, category := range []string{"communication", "knowledge", "attitude", "attention"} {
		assert.InDelta(t, 0.8, scores[category], 0.001)
	}
}

func TestSoftSkillScores_Clamped(t *testing.T) {
	scores := SoftSkillScores(0.1, []string{
		"Communication skills training recommended",
		"Service speed coaching recommended",
	})

	for category, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0, category)
		assert.LessOrEqual(t, score, 1.0, category)
	}
}
