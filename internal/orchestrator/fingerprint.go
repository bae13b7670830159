package orchestrator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/spacesedan/reviewlens/internal/models"
)

// Fingerprint derives the deterministic cache key for a review input. All
// semantically relevant fields participate: the same text under different
// business settings must not share a cache entry.
func Fingerprint(input models.ReviewInput) string {
	payload := struct {
		Text        string                     `json:"text"`
		Rating      *float64                   `json:"rating"`
		Staff       *models.StaffContext       `json:"staff"`
		ServiceUnit *models.ServiceUnitContext `json:"service_unit"`
		Settings    models.BusinessSettings    `json:"settings"`
		Language    string                     `json:"language"`
	}{
		Text:        input.Text,
		Rating:      input.Rating,
		Staff:       input.Staff,
		ServiceUnit: input.ServiceUnit,
		Settings:    input.Settings,
		Language:    input.OriginalLanguage,
	}

	// Struct fields marshal in declaration order, so the digest is stable.
	encoded, err := json.Marshal(payload)
	if err != nil {
		// Marshal of plain structs cannot fail; fall back to raw text.
		encoded = []byte(input.Text)
	}

	sum := sha256.Sum256(encoded)
	return "analysis:" + hex.EncodeToString(sum[:])
}
