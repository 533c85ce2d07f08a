package study

import (
	"math"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

const maxSessionSize = 500

// BuildQueueInput holds the parameters for building a study session queue.
type BuildQueueInput struct {
	Mode        domain.QueueMode
	Items       []domain.StudyItem
	Filter      domain.QueueFilter
	SessionSize int // 0 means the configured default
	// AllowEarly overrides lockEarlyReview for this request.
	AllowEarly bool
	// Seed drives the shuffle of new items; equal seeds give equal queues.
	Seed uint64
	// Settings overrides the configured queue settings when non-nil.
	Settings *domain.QueueConfig
}

// Validate checks all fields and collects all errors.
func (i *BuildQueueInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionSize < 0 || i.SessionSize > maxSessionSize {
		errs = append(errs, domain.FieldError{Field: "session_size", Message: "must be between 0 and 500"})
	}
	if i.Settings != nil {
		if i.Settings.NewContentLimit < 0 || i.Settings.NewContentLimit > 1 {
			errs = append(errs, domain.FieldError{Field: "settings.new_content_limit", Message: "must be between 0 and 1"})
		}
		if i.Settings.StudyMode != "" && !i.Settings.StudyMode.IsValid() {
			errs = append(errs, domain.FieldError{Field: "settings.study_mode", Message: "must be spaced or exam"})
		}
	}
	for _, k := range i.Filter.Kinds {
		if !k.IsValid() {
			errs = append(errs, domain.FieldError{Field: "filter.kinds", Message: "unknown item kind " + string(k)})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReviewItemInput holds the parameters for recording one attempt.
type ReviewItemInput struct {
	Item        domain.StudyItem
	Correct     bool
	SelfEval    domain.SelfEval
	ElapsedSec  float64
	Diagnostics map[string]any
}

// Validate checks all fields and collects all errors.
func (i *ReviewItemInput) Validate() error {
	var errs []domain.FieldError

	if i.Item == nil {
		errs = append(errs, domain.FieldError{Field: "item", Message: "required"})
	}
	if !i.SelfEval.IsValid() {
		errs = append(errs, domain.FieldError{Field: "self_eval", Message: "must be 0 (again) to 3 (easy)"})
	}
	if i.ElapsedSec < 0 || math.IsNaN(i.ElapsedSec) || math.IsInf(i.ElapsedSec, 0) {
		errs = append(errs, domain.FieldError{Field: "elapsed_sec", Message: "must be a non-negative number"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
