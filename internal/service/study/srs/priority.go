package srs

import (
	"bytes"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

const (
	// urgencyScale spreads the retrievability deficit over a range that
	// dominates single importance weights.
	urgencyScale = 10.0
	// nearBandScale is the maximum urgency of items not yet below target.
	nearBandScale = 5.0
)

// PrioritySpaced scores how urgently an item needs review to protect its
// retrievability. Items already below RTarget get OverdueBoost on top of
// their deficit; items between RTarget and RNear get a partial score.
func PrioritySpaced(m domain.CalculatedItemMetrics, cfg domain.SRSConfig) float64 {
	var urgency float64
	switch {
	case m.RNow < cfg.RTarget:
		urgency = urgencyScale*(cfg.RTarget-m.RNow)/cfg.RTarget + cfg.OverdueBoost
	case m.RNow < cfg.RNear && cfg.RNear > cfg.RTarget:
		urgency = nearBandScale * (cfg.RNear - m.RNow) / (cfg.RNear - cfg.RTarget)
	}
	return urgency + importance(m.Item.SRS(), cfg)
}

// PriorityExam scores the expected failure risk on exam day.
func PriorityExam(m domain.CalculatedItemMetrics, cfg domain.SRSConfig) float64 {
	return urgencyScale*(1-m.RProj) + importance(m.Item.SRS(), cfg)
}

// importance sums the additive weights of the item's flags.
func importance(s domain.SRSState, cfg domain.SRSConfig) float64 {
	w := cfg.Weights
	var score float64
	if s.HotTopic {
		score += w.IsHot
	}
	if s.IsFundamental {
		score += w.IsFundamental
	}
	if s.IsCritical {
		score += w.IsCritical
	}
	if s.RecentError > 0 {
		score += w.RecentError * float64(min(s.RecentError, maxRecentError))
	}
	if s.Stability < cfg.LowStabilityDays {
		score += w.LowS
	}
	return score
}

// LessSpaced orders by PrioritySpaced descending, then D ascending.
func LessSpaced(a, b *domain.CalculatedItemMetrics) bool {
	return less(a.PrioritySpaced, b.PrioritySpaced, a, b)
}

// LessExam orders by PriorityExam descending, then D ascending.
func LessExam(a, b *domain.CalculatedItemMetrics) bool {
	return less(a.PriorityExam, b.PriorityExam, a, b)
}

func less(pa, pb float64, a, b *domain.CalculatedItemMetrics) bool {
	if pa != pb {
		return pa > pb
	}
	if a.D != b.D {
		return a.D < b.D
	}
	ida, idb := a.Item.ItemID(), b.Item.ItemID()
	return bytes.Compare(ida[:], idb[:]) < 0
}
