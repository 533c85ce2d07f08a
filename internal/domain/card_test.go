package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSRSState_IsDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state SRSState
		want  bool
	}{
		{
			name:  "new item is due regardless of date",
			state: SRSState{NextReviewDate: now.Add(48 * time.Hour)},
			want:  true,
		},
		{
			name:  "reviewed item due in the past",
			state: SRSState{TotalAttempts: 2, NextReviewDate: now.Add(-time.Hour)},
			want:  true,
		},
		{
			name:  "reviewed item due exactly now",
			state: SRSState{TotalAttempts: 2, NextReviewDate: now},
			want:  true,
		},
		{
			name:  "reviewed item due in the future",
			state: SRSState{TotalAttempts: 2, NextReviewDate: now.Add(time.Hour)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.state.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSRSState(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	st := NewSRSState(1.5, today)

	if !st.IsNew() {
		t.Error("fresh state should be new")
	}
	if st.Stability != 1.5 || !st.NextReviewDate.Equal(today) {
		t.Errorf("unexpected state: %+v", st)
	}
	if st.LastReviewedAt != nil || st.LastWasCorrect != nil {
		t.Error("fresh state should have no review markers")
	}
}

func TestWithSRS_ReturnsCopy(t *testing.T) {
	t.Parallel()

	q := Question{ID: uuid.New(), Statement: "s", Answer: "a", State: SRSState{Stability: 1}}
	updated := q.WithSRS(SRSState{Stability: 4, TotalAttempts: 1})

	if q.State.Stability != 1 {
		t.Errorf("original mutated: stability = %v", q.State.Stability)
	}
	if updated.SRS().Stability != 4 || updated.ItemID() != q.ID || updated.Kind() != ItemKindQuestion {
		t.Errorf("unexpected copy: %+v", updated)
	}

	f := Flashcard{ID: uuid.New(), Front: "f", Back: "b", Class: Classification{Subject: "law"}}
	fu := f.WithSRS(SRSState{TotalAttempts: 3})
	if fu.Kind() != ItemKindFlashcard || fu.Meta().Subject != "law" || fu.SRS().TotalAttempts != 3 {
		t.Errorf("unexpected flashcard copy: %+v", fu)
	}
}

func TestQueueFilter_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(QueueFilter{}).IsEmpty() {
		t.Error("zero filter should be empty")
	}
	if (QueueFilter{OnlyStudyLater: true}).IsEmpty() {
		t.Error("flag filter should not be empty")
	}
	if (QueueFilter{Tags: []string{"x"}}).IsEmpty() {
		t.Error("tag filter should not be empty")
	}
}
