package study

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type laterSet map[uuid.UUID]struct{}

func (s laterSet) StudyLaterIDs() map[uuid.UUID]struct{} { return s }

func testEngineConfig() domain.EngineConfig {
	return domain.EngineConfig{
		SRS: domain.SRSConfig{
			RTarget:          0.9,
			RNear:            0.95,
			OverdueBoost:     10,
			LowStabilityDays: 3,
			Weights: domain.PriorityWeights{
				IsHot:         1.5,
				IsFundamental: 1.0,
				IsCritical:    2.0,
				RecentError:   1.5,
				LowS:          1.0,
			},
		},
		Update: domain.UpdateConfig{
			AlphaHard:         1.2,
			AlphaGood:         2.0,
			AlphaEasy:         2.8,
			GammaFail:         0.5,
			RTFast:            0.6,
			RTSlow:            1.5,
			KRTBonus:          1.15,
			KLongGap:          1.2,
			MinIntervalDays:   1,
			MaxHotDays:        3,
			DefaultStability:  1,
			CapStabilityDays:  365,
			MasteryGainHard:   0.10,
			MasteryGainGood:   0.20,
			MasteryGainEasy:   0.30,
			MasteryLoss:       0.25,
			MaxStage:          8,
			WeakStabilityDays: 3,
			WeakMastery:       40,
		},
		Timing: domain.TimingConfig{
			SOPGuardTypes:    []domain.ItemKind{domain.ItemKindQuestion},
			MinThinkSec:      2,
			RushThresholdSec: 3,
			OverThresholdSec: 300,
			SOPBandLow:       0.4,
			SOPBandHigh:      2.5,
			LambdaEWMA:       0.2,
			MADAlertZ:        3.5,
			WindowN:          10,
			TargetSecDefault: 45,
		},
		Queue: domain.QueueConfig{
			StudyMode:              domain.StudyModeSpaced,
			NewContentLimit:        0.1,
			CriticalStabilityFloor: 10,
			MicroSpacedHours:       []float64{0.25, 1, 4, 24},
			DefaultSessionSize:     20,
		},
	}
}

func newTestService(t *testing.T, cfg domain.EngineConfig, gate contentGate, later studyLaterProvider) *Service {
	t.Helper()
	if gate == nil {
		gate = NewStructuralGate()
	}
	svc, err := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, gate, later, fixedClock{testNow})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func newState() domain.SRSState {
	return domain.NewSRSState(1, testNow)
}

// reviewedState is a state last reviewed daysAgo whose next review is
// dueIn days from now (negative for overdue).
func reviewedState(stability, mastery, daysAgo, dueIn float64) domain.SRSState {
	last := testNow.Add(days(-daysAgo))
	correct := true
	return domain.SRSState{
		NextReviewDate: testNow.Add(days(dueIn)),
		Stability:      stability,
		MasteryScore:   mastery,
		TotalAttempts:  1,
		LastWasCorrect: &correct,
		LastReviewedAt: &last,
		AttemptHistory: []domain.Attempt{{At: last, Correct: true, SelfEval: domain.SelfEvalGood, Timing: domain.TimingSOPOK}},
		SRSStage:       1,
		CorrectStreak:  1,
	}
}

func days(d float64) time.Duration {
	return time.Duration(d * float64(24*time.Hour))
}

func question(subject string, st domain.SRSState) domain.Question {
	return domain.Question{
		ID:        uuid.New(),
		Statement: "Which article governs " + subject + "?",
		Options:   []string{"a", "b", "c"},
		Answer:    "a",
		Class:     domain.Classification{Subject: subject},
		State:     st,
	}
}

func flashcard(subject string, st domain.SRSState) domain.Flashcard {
	return domain.Flashcard{
		ID:    uuid.New(),
		Front: "front",
		Back:  "back",
		Class: domain.Classification{Subject: subject},
		State: st,
	}
}

func ids(queue []domain.CalculatedItemMetrics) []uuid.UUID {
	out := make([]uuid.UUID, len(queue))
	for i, m := range queue {
		out[i] = m.Item.ItemID()
	}
	return out
}
