package orchestrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/reviewlens/internal/models"
)

func TestFingerprint(t *testing.T) {
	base := models.ReviewInput{
		Text:     "Great food.",
		Settings: models.DefaultBusinessSettings(),
	}

	t.Run("deterministic for identical input", func(t *testing.T) {
		assert.Equal(t, Fingerprint(base), Fingerprint(base))
	})

	t.Run("prefixed for keyspace separation", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(Fingerprint(base), "analysis:"))
	})

	t.Run("text changes the key", func(t *testing.T) {
		other := base
		other.Text = "Great food!"
		assert.NotEqual(t, Fingerprint(base), Fingerprint(other))
	})

	t.Run("settings change the key", func(t *testing.T) {
		other := base
		other.Settings.StaffIntelligence = false
		assert.NotEqual(t, Fingerprint(base), Fingerprint(other))
	})

	t.Run("staff context changes the key", func(t *testing.T) {
		other := base
		other.Staff = &models.StaffContext{ID: "1", Name: "Ateeq", ExplicitlySelected: true}
		assert.NotEqual(t, Fingerprint(base), Fingerprint(other))
	})

	t.Run("source metadata does not change the key", func(t *testing.T) {
		other := base
		other.Source = "widget"
		other.BranchID = "branch-9"
		assert.Equal(t, Fingerprint(base), Fingerprint(other))
	})
}
