package srs

import (
	"math"
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// ScheduleMicroSpacing returns failedAt + offset for each hour offset, in the
// given order. Non-positive and non-finite offsets are skipped.
func ScheduleMicroSpacing(failedAt time.Time, hours []float64) []time.Time {
	if len(hours) == 0 {
		return nil
	}
	out := make([]time.Time, 0, len(hours))
	for _, h := range hours {
		if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			continue
		}
		out = append(out, failedAt.Add(time.Duration(h*float64(time.Hour))))
	}
	return out
}

// IsWeak reports whether an item is below the stability or mastery
// threshold that triggers micro-spacing after a failure.
func IsWeak(state domain.SRSState, u domain.UpdateConfig) bool {
	return isWeak(state.Stability, state.MasteryScore, u)
}

func isWeak(stability, mastery float64, u domain.UpdateConfig) bool {
	return stability < u.WeakStabilityDays || mastery < u.WeakMastery
}

// SoonestReview reconciles the regular schedule with a micro-spacing burst:
// the earliest micro checkpoint after now wins if it precedes next.
func SoonestReview(next time.Time, micro []time.Time, now time.Time) time.Time {
	soonest := next
	for _, t := range micro {
		if t.After(now) && t.Before(soonest) {
			soonest = t
		}
	}
	return soonest
}
