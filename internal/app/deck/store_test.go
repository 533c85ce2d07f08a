package deck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

const (
	questionID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	laterID    = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

const sampleDeck = `
frozen_subjects: [archived]
study_later: ["` + laterID + `"]
timing:
  law:
    mean: 41.5
    window: [38, 40, 45]
    count: 3
items:
  - id: "` + questionID + `"
    kind: question
    statement: "Which court reviews constitutional claims?"
    options: ["Supreme", "Regional", "Local"]
    answer: "Supreme"
    subject: law
    topic: courts
    tags: [constitution]
    hot: true
    srs:
      next_review_date: 2025-03-12T09:00:00Z
      stability: 4.5
      mastery_score: 62
      total_attempts: 1
      last_was_correct: true
      last_reviewed_at: 2025-03-08T09:00:00Z
      srs_stage: 2
      attempt_history:
        - at: 2025-03-08T09:00:00Z
          correct: true
          self_eval: 2
          timing: SOP_OK
          elapsed_sec: 35
  - id: "` + laterID + `"
    kind: flashcard
    front: "e^(i*pi)"
    back: "-1"
    subject: math
    favorite: true
`

func writeDeck(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	d, err := Load(writeDeck(t, "deck.yaml", sampleDeck), 1, today)
	require.NoError(t, err)
	require.Len(t, d.Items, 2)

	assert.Equal(t, []string{"archived"}, d.FrozenSubjects)
	assert.Equal(t, 41.5, d.Timing["law"].Mean)
	assert.Equal(t, []float64{38, 40, 45}, d.Timing["law"].Window)

	q, ok := d.Items[0].(domain.Question)
	require.True(t, ok, "first item should be a question")
	assert.Equal(t, uuid.MustParse(questionID), q.ID)
	assert.Equal(t, "Supreme", q.Answer)
	assert.Equal(t, "courts", q.Class.Topic)
	assert.True(t, q.State.HotTopic, "entry flag folds into state")
	assert.Equal(t, 4.5, q.State.Stability)
	require.Len(t, q.State.AttemptHistory, 1)
	assert.Equal(t, domain.SelfEvalGood, q.State.AttemptHistory[0].SelfEval)
	assert.Equal(t, domain.TimingSOPOK, q.State.AttemptHistory[0].Timing)

	f, ok := d.Items[1].(domain.Flashcard)
	require.True(t, ok, "second item should be a flashcard")
	assert.True(t, f.State.IsNew())
	assert.Equal(t, 1.0, f.State.Stability)
	assert.True(t, f.State.NextReviewDate.Equal(today))
	assert.True(t, f.Class.Favorite)

	assert.Contains(t, d.StudyLaterIDs(), uuid.MustParse(laterID))
}

func TestLoad_AssignsMissingIDs(t *testing.T) {
	t.Parallel()

	d, err := Load(writeDeck(t, "deck.yaml", "items:\n  - kind: flashcard\n    front: a\n    back: b\n"), 1, today)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.NotEqual(t, uuid.Nil, d.Items[0].ItemID())
}

func TestLoad_MissingIDsAreStable(t *testing.T) {
	t.Parallel()

	const idless = `
items:
  - kind: flashcard
    front: "2 + 2"
    back: "4"
    subject: math
  - kind: flashcard
    front: "2 + 2"
    back: "4"
    subject: math
  - kind: question
    statement: "Capital of Peru?"
    options: ["Lima", "Cusco"]
    answer: "Lima"
`
	path := writeDeck(t, "deck.yaml", idless)

	first, err := Load(path, 1, today)
	require.NoError(t, err)
	second, err := Load(path, 1, today)
	require.NoError(t, err)

	ids := func(d *Deck) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(d.Items))
		for _, item := range d.Items {
			out = append(out, item.ItemID())
		}
		return out
	}
	assert.Equal(t, ids(first), ids(second), "the same file must yield the same ids")
	assert.NotEqual(t, first.Items[0].ItemID(), first.Items[1].ItemID(), "identical entries need distinct ids")

	// An id printed by one process resolves in the next.
	_, err = second.Find(first.Items[2].ItemID())
	assert.NoError(t, err)

	// The id survives a copy of the file to another path.
	moved := writeDeck(t, "moved.yaml", idless)
	third, err := Load(moved, 1, today)
	require.NoError(t, err)
	assert.Equal(t, ids(first), ids(third))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "items: [\n"},
		{"unknown kind", "items:\n  - kind: essay\n"},
		{"bad study later id", "study_later: [nope]\nitems: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeDeck(t, "deck.yaml", tt.content), 1, today)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), 1, today)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	path := writeDeck(t, "deck.yaml", sampleDeck)
	d, err := Load(path, 1, today)
	require.NoError(t, err)

	reviewedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	correct := false
	card := d.Items[1]
	st := card.SRS()
	st.TotalAttempts = 1
	st.Stability = 0.5
	st.LastWasCorrect = &correct
	st.LastReviewedAt = &reviewedAt
	st.RecentError = 1
	st.AttemptHistory = []domain.Attempt{{At: reviewedAt, SelfEval: domain.SelfEvalAgain, Timing: domain.TimingRush, ElapsedSec: 1.5}}

	require.NoError(t, d.Replace(card.WithSRS(st)))
	require.NoError(t, d.Save())

	again, err := Load(path, 1, today)
	require.NoError(t, err)
	require.Len(t, again.Items, 2)

	got := again.Items[1].SRS()
	assert.Equal(t, card.ItemID(), again.Items[1].ItemID())
	assert.Equal(t, 1, got.TotalAttempts)
	assert.Equal(t, 0.5, got.Stability)
	assert.Equal(t, 1, got.RecentError)
	require.NotNil(t, got.LastWasCorrect)
	assert.False(t, *got.LastWasCorrect)
	require.NotNil(t, got.LastReviewedAt)
	assert.True(t, got.LastReviewedAt.Equal(reviewedAt))
	require.Len(t, got.AttemptHistory, 1)
	assert.Equal(t, domain.TimingRush, got.AttemptHistory[0].Timing)

	assert.Equal(t, d.FrozenSubjects, again.FrozenSubjects)
	assert.Equal(t, d.Timing, again.Timing)
	assert.Equal(t, d.StudyLaterIDs(), again.StudyLaterIDs())

	q := again.Items[0].(domain.Question)
	assert.Equal(t, []string{"Supreme", "Regional", "Local"}, q.Options)
	assert.True(t, q.State.HotTopic)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "save should not leave temp files behind")
}

func TestFindReplace_NotFound(t *testing.T) {
	t.Parallel()

	d, err := Load(writeDeck(t, "deck.yaml", sampleDeck), 1, today)
	require.NoError(t, err)

	item, err := d.Find(uuid.MustParse(questionID))
	require.NoError(t, err)
	assert.Equal(t, domain.ItemKindQuestion, item.Kind())

	_, err = d.Find(uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = d.Replace(domain.Flashcard{ID: uuid.New()})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLoadAll(t *testing.T) {
	t.Parallel()

	first := writeDeck(t, "a.yaml", sampleDeck)
	second := writeDeck(t, "b.yaml", "study_later: [\"9b2f1f0e-52b4-4f6a-9d3b-3c1c5d8f2a10\"]\nitems:\n  - kind: flashcard\n    front: x\n    back: y\n")

	decks, err := LoadAll(context.Background(), []string{first, second}, 1, today)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, first, decks[0].Path)
	assert.Equal(t, second, decks[1].Path)

	set := Union(decks)
	assert.Len(t, set.StudyLaterIDs(), 2)
	assert.Contains(t, set, uuid.MustParse(laterID))

	_, err = LoadAll(context.Background(), []string{first, filepath.Join(t.TempDir(), "missing.yaml")}, 1, today)
	assert.Error(t, err)
}
