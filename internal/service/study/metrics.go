package study

import (
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/srs"
)

// CalculateMetrics derives retrievability, domain and both priorities for an
// item at now. It is pure: equal inputs give equal outputs.
func CalculateMetrics(item domain.StudyItem, cfg domain.EngineConfig, now time.Time) domain.CalculatedItemMetrics {
	st := item.SRS()
	dt := srs.ElapsedDays(st.LastReviewedAt, now)
	r := srs.Retrievability(st.Stability, dt)

	m := domain.CalculatedItemMetrics{
		Item:  item,
		DT:    dt,
		RNow:  r,
		D:     srs.CurrentDomain(st.MasteryScore, r),
		RProj: srs.Retrievability(st.Stability, dt+srs.DaysUntil(now, cfg.Queue.ExamDate)),
	}
	m.PrioritySpaced = srs.PrioritySpaced(m, cfg.SRS)
	m.PriorityExam = srs.PriorityExam(m, cfg.SRS)

	return m
}

// CalculateCurrentDomain returns the blended domain score of an item at now.
func CalculateCurrentDomain(item domain.StudyItem, now time.Time) float64 {
	st := item.SRS()
	r := srs.Retrievability(st.Stability, srs.ElapsedDays(st.LastReviewedAt, now))
	return srs.CurrentDomain(st.MasteryScore, r)
}

// CalculateNewSRSState runs the update rule for one attempt and returns the
// patch to apply. The item is not modified.
func CalculateNewSRSState(item domain.StudyItem, outcome srs.Outcome, cfg domain.EngineConfig) (srs.Patch, error) {
	return srs.Calculate(item.SRS(), outcome, params(cfg))
}

// CalculateMetrics is the service-bound variant using the service clock and
// configuration.
func (s *Service) CalculateMetrics(item domain.StudyItem) domain.CalculatedItemMetrics {
	return CalculateMetrics(item, s.cfg, s.clock.Now())
}
