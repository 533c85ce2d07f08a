package deck

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// Validate checks that an Entry can be mapped to an item. Content checks
// (empty text, missing answer) are left to the content gate so that a
// broken item stays in the deck instead of failing the whole load.
func Validate(e Entry) error {
	if !e.Kind.IsValid() {
		return fmt.Errorf("invalid kind %q", e.Kind)
	}
	if e.ID != "" {
		if _, err := uuid.Parse(e.ID); err != nil {
			return fmt.Errorf("invalid id %q: %w", e.ID, err)
		}
	}
	if e.Kind == domain.ItemKindFlashcard && (e.Statement != "" || len(e.Options) > 0) {
		return fmt.Errorf("flashcard %q carries question fields", e.ID)
	}
	if e.SRS != nil {
		if len(e.SRS.AttemptHistory) != e.SRS.TotalAttempts {
			return fmt.Errorf("item %q: total_attempts %d does not match %d history entries",
				e.ID, e.SRS.TotalAttempts, len(e.SRS.AttemptHistory))
		}
		if e.SRS.MasteryScore < 0 || e.SRS.MasteryScore > 100 {
			return fmt.Errorf("item %q: mastery_score %v out of [0, 100]", e.ID, e.SRS.MasteryScore)
		}
	}
	return nil
}
