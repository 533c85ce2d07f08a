// Package srs implements the adaptive review model: exponential forgetting,
// the mastery/stability update rule, micro-spacing after failures and the
// priority scores used to order study queues.
//
// Every function in this package is pure. No logger, no context, no clock.
package srs

import (
	"math"
	"time"
)

// MinStability is the floor applied to stability before it is used as a
// divisor.
const MinStability = 1e-3

const (
	masteryWeight = 0.7
	recallWeight  = 0.3
)

// Retrievability returns the modeled probability of recall.
//
//	R(S, t) = exp(-t / max(S, ε))
//
// Negative elapsed time is treated as zero, so R is always in (0, 1].
func Retrievability(stabilityDays, elapsedDays float64) float64 {
	if elapsedDays <= 0 {
		return 1
	}
	s := math.Max(stabilityDays, MinStability)
	return math.Exp(-elapsedDays / s)
}

// CurrentDomain blends long-term mastery with instantaneous recall.
//
//	D = 0.7 * mastery + 0.3 * 100 * R
//
// Inputs and result are clamped (mastery and D to [0,100], R to [0,1]).
func CurrentDomain(masteryScore, r float64) float64 {
	m := clamp(masteryScore, 0, 100)
	r = clamp(r, 0, 1)
	return clamp(masteryWeight*m+recallWeight*100*r, 0, 100)
}

// IntervalDays inverts Retrievability: the elapsed days after which R drops
// to targetR.
//
//	I(S, r) = -S * ln(r)
func IntervalDays(stabilityDays, targetR float64) float64 {
	if targetR <= 0 || targetR >= 1 {
		return 0
	}
	return -math.Max(stabilityDays, MinStability) * math.Log(targetR)
}

// ElapsedDays returns the fractional days between the last review and now.
// It is 0 for items never reviewed and for clocks that went backwards.
func ElapsedDays(lastReviewedAt *time.Time, now time.Time) float64 {
	if lastReviewedAt == nil {
		return 0
	}
	d := now.Sub(*lastReviewedAt)
	if d <= 0 {
		return 0
	}
	return d.Hours() / 24
}

// DaysUntil returns the fractional days from now until target, or 0 when
// target is unset or already passed.
func DaysUntil(now time.Time, target *time.Time) float64 {
	if target == nil {
		return 0
	}
	d := target.Sub(now)
	if d <= 0 {
		return 0
	}
	return d.Hours() / 24
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * float64(24*time.Hour))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
