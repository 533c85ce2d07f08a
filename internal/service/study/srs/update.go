package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// maxRecentError caps the recent-error counter used as a priority weight.
const maxRecentError = 3

// Parameters holds everything the update rule reads from configuration.
type Parameters struct {
	SRS    domain.SRSConfig
	Update domain.UpdateConfig
	// MicroSpacedHours are the re-exposure offsets after a weak failure.
	MicroSpacedHours []float64
}

// Outcome describes a single attempt on an item.
type Outcome struct {
	Correct    bool
	SelfEval   domain.SelfEval
	ElapsedSec float64
	Timing     domain.TimingClass
	// TargetSec is the learner's expected response time. Zero means unknown.
	TargetSec   float64
	ReviewedAt  time.Time
	Diagnostics map[string]any
}

// Patch holds the fields written back to an item after an attempt.
type Patch struct {
	Stability      float64
	MasteryScore   float64
	NextReviewDate time.Time
	IntervalDays   float64
	SRSStage       int
	CorrectStreak  int
	Lapses         int
	RecentError    int
	LastWasCorrect bool
	// MicroSchedule is non-empty only for failed weak items.
	MicroSchedule []time.Time
	Attempt       domain.Attempt
}

// Calculate computes the new scheduling state after one attempt. It does not
// touch the input; Apply produces the new snapshot.
func Calculate(state domain.SRSState, outcome Outcome, params Parameters) (Patch, error) {
	u := params.Update
	now := outcome.ReviewedAt

	s := state.Stability
	if s <= 0 {
		s = math.Max(u.DefaultStability, MinStability)
	}

	var (
		newS    float64
		mastery float64
		patch   Patch
	)

	if outcome.Correct {
		factor := growthFactor(outcome, u)
		if outcome.Timing == domain.TimingSOPOK {
			factor *= responseTimeBonus(outcome.ElapsedSec, outcome.TargetSec, u)
		}
		if survivedLongGap(state, now) {
			factor *= u.KLongGap
		}
		newS = math.Max(s, math.Min(s*factor, u.CapStabilityDays))

		mastery = state.MasteryScore + masteryGain(outcome, u)*(100-state.MasteryScore)

		patch.CorrectStreak = state.CorrectStreak + 1
		patch.SRSStage = state.SRSStage + 1
		if u.MaxStage > 0 && patch.SRSStage > u.MaxStage {
			patch.SRSStage = u.MaxStage
		}
		patch.Lapses = state.Lapses
		patch.RecentError = max(0, state.RecentError-1)
	} else {
		newS = s * u.GammaFail
		mastery = state.MasteryScore * (1 - u.MasteryLoss)

		patch.CorrectStreak = 0
		patch.SRSStage = state.SRSStage / 2
		patch.Lapses = state.Lapses + 1
		patch.RecentError = min(maxRecentError, state.RecentError+1)
	}

	if math.IsNaN(newS) || math.IsInf(newS, 0) {
		return Patch{}, fmt.Errorf("stability after review (prev %v): %w", state.Stability, domain.ErrNonFiniteStability)
	}

	mastery = clamp(mastery, 0, 100)
	interval := nextIntervalDays(newS, state.HotTopic, params)

	patch.Stability = newS
	patch.MasteryScore = mastery
	patch.IntervalDays = interval
	patch.NextReviewDate = now.Add(daysToDuration(interval))
	patch.LastWasCorrect = outcome.Correct
	patch.Attempt = domain.Attempt{
		At:             now,
		Correct:        outcome.Correct,
		MasteryAfter:   mastery,
		StabilityAfter: newS,
		ElapsedSec:     outcome.ElapsedSec,
		SelfEval:       outcome.SelfEval,
		Timing:         outcome.Timing,
		Diagnostics:    outcome.Diagnostics,
	}

	if !outcome.Correct && isWeak(newS, mastery, u) {
		patch.MicroSchedule = ScheduleMicroSpacing(now, params.MicroSpacedHours)
	}

	return patch, nil
}

// Apply returns a copy of state with the patch applied and exactly one
// attempt appended. The caller's history slice is never written to.
func (p Patch) Apply(state domain.SRSState) domain.SRSState {
	history := make([]domain.Attempt, len(state.AttemptHistory), len(state.AttemptHistory)+1)
	copy(history, state.AttemptHistory)
	state.AttemptHistory = append(history, p.Attempt)
	state.TotalAttempts++

	state.Stability = p.Stability
	state.MasteryScore = p.MasteryScore
	state.NextReviewDate = p.NextReviewDate
	state.SRSStage = p.SRSStage
	state.CorrectStreak = p.CorrectStreak
	state.Lapses = p.Lapses
	state.RecentError = p.RecentError

	correct := p.LastWasCorrect
	state.LastWasCorrect = &correct
	reviewedAt := p.Attempt.At
	state.LastReviewedAt = &reviewedAt

	return state
}

// growthFactor selects the multiplicative stability growth for a correct
// answer. Again on a correct answer counts as hard; a rushed answer is
// treated as a possible guess and never grows faster than hard.
func growthFactor(o Outcome, u domain.UpdateConfig) float64 {
	var f float64
	switch o.SelfEval {
	case domain.SelfEvalEasy:
		f = u.AlphaEasy
	case domain.SelfEvalGood:
		f = u.AlphaGood
	default:
		f = u.AlphaHard
	}
	if o.Timing == domain.TimingRush {
		f = math.Min(f, u.AlphaHard)
	}
	return math.Max(f, 1)
}

// responseTimeBonus is KRTBonus for answers at or under RTFast*target,
// fading linearly to 1 at RTSlow*target.
func responseTimeBonus(elapsedSec, targetSec float64, u domain.UpdateConfig) float64 {
	if targetSec <= 0 || u.KRTBonus <= 1 {
		return 1
	}
	ratio := elapsedSec / targetSec
	switch {
	case ratio <= u.RTFast:
		return u.KRTBonus
	case ratio >= u.RTSlow || u.RTSlow <= u.RTFast:
		return 1
	default:
		return 1 + (u.KRTBonus-1)*(u.RTSlow-ratio)/(u.RTSlow-u.RTFast)
	}
}

// survivedLongGap reports whether the item was answered after its scheduled
// interval had already run out.
func survivedLongGap(state domain.SRSState, now time.Time) bool {
	if state.LastReviewedAt == nil {
		return false
	}
	scheduled := state.NextReviewDate.Sub(*state.LastReviewedAt)
	if scheduled <= 0 {
		return false
	}
	return now.Sub(*state.LastReviewedAt) > scheduled
}

func masteryGain(o Outcome, u domain.UpdateConfig) float64 {
	var g float64
	switch o.SelfEval {
	case domain.SelfEvalEasy:
		g = u.MasteryGainEasy
	case domain.SelfEvalGood:
		g = u.MasteryGainGood
	default:
		g = u.MasteryGainHard
	}
	if o.Timing == domain.TimingRush {
		g /= 2
	}
	return clamp(g, 0, 1)
}

// nextIntervalDays converts stability into an interval that keeps R at or
// above the target, clamped to [MinIntervalDays, MaxHotDays (hot only)].
func nextIntervalDays(stability float64, hot bool, params Parameters) float64 {
	interval := IntervalDays(stability, params.SRS.RTarget)
	interval = math.Max(interval, params.Update.MinIntervalDays)
	if hot && params.Update.MaxHotDays > 0 {
		interval = math.Min(interval, params.Update.MaxHotDays)
	}
	return interval
}
