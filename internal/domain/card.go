package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudyItem is the capability set the scheduling engine needs from a
// reviewable item. Kind-specific content stays on the concrete types.
type StudyItem interface {
	ItemID() uuid.UUID
	Kind() ItemKind
	SRS() SRSState
	Meta() Classification
	// WithSRS returns a copy of the item carrying the given state.
	WithSRS(state SRSState) StudyItem
}

// SRSState is the scheduling state shared by every item kind.
type SRSState struct {
	NextReviewDate time.Time  `yaml:"next_review_date" json:"next_review_date"`
	Stability      float64    `yaml:"stability"        json:"stability"`
	MasteryScore   float64    `yaml:"mastery_score"    json:"mastery_score"`
	TotalAttempts  int        `yaml:"total_attempts"   json:"total_attempts"`
	LastWasCorrect *bool      `yaml:"last_was_correct" json:"last_was_correct,omitempty"`
	RecentError    int        `yaml:"recent_error"     json:"recent_error"`
	HotTopic       bool       `yaml:"hot_topic"        json:"hot_topic"`
	IsCritical     bool       `yaml:"is_critical"      json:"is_critical"`
	IsFundamental  bool       `yaml:"is_fundamental"   json:"is_fundamental"`
	LastReviewedAt *time.Time `yaml:"last_reviewed_at" json:"last_reviewed_at,omitempty"`
	AttemptHistory []Attempt  `yaml:"attempt_history"  json:"attempt_history"`
	CorrectStreak  int        `yaml:"correct_streak"   json:"correct_streak"`
	SRSStage       int        `yaml:"srs_stage"        json:"srs_stage"`
	Lapses         int        `yaml:"lapses"           json:"lapses"`
}

// NewSRSState returns the state of a freshly created item.
func NewSRSState(defaultStability float64, today time.Time) SRSState {
	return SRSState{
		NextReviewDate: today,
		Stability:      defaultStability,
	}
}

// IsNew reports whether the item has never been attempted.
func (s SRSState) IsNew() bool {
	return s.TotalAttempts == 0
}

// IsDue returns true if the item needs review at the given time.
//   - New items are always due.
//   - Other items are due when NextReviewDate <= now.
func (s SRSState) IsDue(now time.Time) bool {
	if s.IsNew() {
		return true
	}
	return !s.NextReviewDate.After(now)
}

// Attempt records a single review. Attempts are never edited once appended.
type Attempt struct {
	At             time.Time      `yaml:"at"              json:"at"`
	Correct        bool           `yaml:"correct"         json:"correct"`
	MasteryAfter   float64        `yaml:"mastery_after"   json:"mastery_after"`
	StabilityAfter float64        `yaml:"stability_after" json:"stability_after"`
	ElapsedSec     float64        `yaml:"elapsed_sec"     json:"elapsed_sec"`
	SelfEval       SelfEval       `yaml:"self_eval"       json:"self_eval"`
	Timing         TimingClass    `yaml:"timing"          json:"timing"`
	Diagnostics    map[string]any `yaml:"diagnostics"     json:"diagnostics,omitempty"`
}

// Classification holds the caller-assigned grouping metadata of an item.
type Classification struct {
	Subject  string   `yaml:"subject"  json:"subject"`
	Topic    string   `yaml:"topic"    json:"topic"`
	Bank     string   `yaml:"bank"     json:"bank"`
	Area     string   `yaml:"area"     json:"area"`
	Tags     []string `yaml:"tags"     json:"tags"`
	Favorite bool     `yaml:"favorite" json:"favorite"`
}

// Question is a quiz-style item with a set of options and one answer.
type Question struct {
	ID          uuid.UUID
	Statement   string
	Options     []string
	Answer      string
	Explanation string
	Class       Classification
	State       SRSState
}

func (q Question) ItemID() uuid.UUID    { return q.ID }
func (q Question) Kind() ItemKind       { return ItemKindQuestion }
func (q Question) SRS() SRSState        { return q.State }
func (q Question) Meta() Classification { return q.Class }

func (q Question) WithSRS(state SRSState) StudyItem {
	q.State = state
	return q
}

// Flashcard is a two-sided recall item.
type Flashcard struct {
	ID    uuid.UUID
	Front string
	Back  string
	Class Classification
	State SRSState
}

func (f Flashcard) ItemID() uuid.UUID    { return f.ID }
func (f Flashcard) Kind() ItemKind       { return ItemKindFlashcard }
func (f Flashcard) SRS() SRSState        { return f.State }
func (f Flashcard) Meta() Classification { return f.Class }

func (f Flashcard) WithSRS(state SRSState) StudyItem {
	f.State = state
	return f
}
