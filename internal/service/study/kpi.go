package study

import (
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
)

// computeKPIs summarises a queue. MeanPriority uses the priority the queue
// was ordered by. CriticalCount counts items carrying the caller-assigned
// critical flag, the same flag the OnlyCritical filter selects on.
func computeKPIs(queue []domain.CalculatedItemMetrics, useExam bool) domain.SessionKPIs {
	k := domain.SessionKPIs{Total: len(queue)}
	if len(queue) == 0 {
		return k
	}

	domains := make([]float64, 0, len(queue))
	var sumD, sumP float64

	for _, m := range queue {
		if m.DueReason == domain.DueReasonNew {
			k.NewCount++
		} else {
			k.DueCount++
		}
		if m.Item.SRS().IsCritical {
			k.CriticalCount++
		}
		domains = append(domains, m.D)
		sumD += m.D
		if useExam {
			sumP += m.PriorityExam
		} else {
			sumP += m.PrioritySpaced
		}
	}

	n := float64(len(queue))
	k.MeanDomain = sumD / n
	k.MedianDomain = timing.Median(domains)
	k.MeanPriority = sumP / n
	k.PercentNew = float64(k.NewCount) / n * 100

	return k
}
