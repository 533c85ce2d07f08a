// Package deck reads and writes study decks: YAML files holding items,
// their scheduling state and the per-subject timing statistics.
package deck

import (
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
)

// File is the on-disk layout of a deck.
type File struct {
	FrozenSubjects []string                `yaml:"frozen_subjects,omitempty"`
	StudyLater     []string                `yaml:"study_later,omitempty"`
	Timing         map[string]timing.State `yaml:"timing,omitempty"`
	Items          []Entry                 `yaml:"items"`
}

// Entry is one item as written in a deck. Question fields and flashcard
// fields share the entry; Kind selects which apply.
type Entry struct {
	ID   string          `yaml:"id,omitempty"`
	Kind domain.ItemKind `yaml:"kind"`

	Statement   string   `yaml:"statement,omitempty"`
	Options     []string `yaml:"options,omitempty"`
	Answer      string   `yaml:"answer,omitempty"`
	Explanation string   `yaml:"explanation,omitempty"`

	Front string `yaml:"front,omitempty"`
	Back  string `yaml:"back,omitempty"`

	Subject  string   `yaml:"subject,omitempty"`
	Topic    string   `yaml:"topic,omitempty"`
	Bank     string   `yaml:"bank,omitempty"`
	Area     string   `yaml:"area,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Favorite bool     `yaml:"favorite,omitempty"`

	Hot         bool `yaml:"hot,omitempty"`
	Critical    bool `yaml:"critical,omitempty"`
	Fundamental bool `yaml:"fundamental,omitempty"`

	// SRS is absent for items never scheduled.
	SRS *domain.SRSState `yaml:"srs,omitempty"`
}
