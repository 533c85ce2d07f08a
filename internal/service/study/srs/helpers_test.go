package srs

import (
	"time"

	"github.com/google/uuid"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testParams() Parameters {
	return Parameters{
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
		MicroSpacedHours: []float64{0.25, 1, 4, 24},
	}
}

// reviewedState returns a state last reviewed daysAgo with the given
// stability and mastery, scheduled by the regular interval.
func reviewedState(stability, mastery, daysAgo float64) domain.SRSState {
	last := testNow.Add(-daysToDuration(daysAgo))
	correct := true
	return domain.SRSState{
		NextReviewDate: last.Add(daysToDuration(IntervalDays(stability, 0.9))),
		Stability:      stability,
		MasteryScore:   mastery,
		TotalAttempts:  1,
		LastWasCorrect: &correct,
		LastReviewedAt: &last,
		AttemptHistory: []domain.Attempt{{At: last, Correct: true}},
		SRSStage:       1,
		CorrectStreak:  1,
	}
}

func ptr[T any](v T) *T { return &v }

// metricsFor builds metrics for an item whose identity only matters for
// tie-breaking.
func metricsFor(id uuid.UUID, state domain.SRSState, r, rProj float64) domain.CalculatedItemMetrics {
	return domain.CalculatedItemMetrics{
		Item:  domain.Flashcard{ID: id, Front: "f", Back: "b", State: state},
		RNow:  r,
		RProj: rProj,
		D:     CurrentDomain(state.MasteryScore, r),
	}
}
