package study

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/srs"
)

// seedStream is the PCG stream constant paired with the caller's seed.
const seedStream = 0x9e3779b97f4a7c15

type lessFunc func(a, b *domain.CalculatedItemMetrics) bool

// usesExamPriority reports whether a queue mode orders by exam priority.
// Critical mode follows the configured study mode.
func usesExamPriority(mode domain.QueueMode, study domain.StudyMode) bool {
	return mode == domain.QueueModeExam ||
		(mode == domain.QueueModeCritical && study == domain.StudyModeExam)
}

func priorityFor(mode domain.QueueMode, study domain.StudyMode) lessFunc {
	if usesExamPriority(mode, study) {
		return srs.LessExam
	}
	return srs.LessSpaced
}

func sortBy(list []domain.CalculatedItemMetrics, less lessFunc) {
	sort.SliceStable(list, func(i, j int) bool {
		return less(&list[i], &list[j])
	})
}

// buildStandardQueue interleaves subjects round-robin in alphabetical order.
// Within a subject, due items come first (by spaced priority), then new items
// in a seeded random order.
func buildStandardQueue(metrics []domain.CalculatedItemMetrics, size int, seed uint64) []domain.CalculatedItemMetrics {
	due := make(map[string][]domain.CalculatedItemMetrics)
	fresh := make(map[string][]domain.CalculatedItemMetrics)

	for _, m := range metrics {
		m.DueReason = dueReason(m.Item)
		subject := m.Item.Meta().Subject
		if m.DueReason == domain.DueReasonNew {
			fresh[subject] = append(fresh[subject], m)
		} else {
			due[subject] = append(due[subject], m)
		}
	}

	subjects := make([]string, 0, len(due)+len(fresh))
	for subj := range due {
		subjects = append(subjects, subj)
	}
	for subj := range fresh {
		if _, ok := due[subj]; !ok {
			subjects = append(subjects, subj)
		}
	}
	slices.Sort(subjects)

	rng := rand.New(rand.NewPCG(seed, seedStream))
	for _, subj := range subjects {
		sortBy(due[subj], srs.LessSpaced)
		list := fresh[subj]
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	}

	queue := make([]domain.CalculatedItemMetrics, 0, min(size, len(metrics)))
	for len(queue) < size {
		progressed := false
		for _, subj := range subjects {
			if len(queue) >= size {
				break
			}
			if d := due[subj]; len(d) > 0 {
				queue = append(queue, d[0])
				due[subj] = d[1:]
				progressed = true
			} else if n := fresh[subj]; len(n) > 0 {
				queue = append(queue, n[0])
				fresh[subj] = n[1:]
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	return queue
}

// buildExamQueue orders everything by exam priority and caps new content at
// floor(size * newContentLimit). Reviewed items fill the queue first.
func buildExamQueue(metrics []domain.CalculatedItemMetrics, size int, newContentLimit float64) []domain.CalculatedItemMetrics {
	var reviewed, fresh []domain.CalculatedItemMetrics
	for _, m := range metrics {
		m.DueReason = dueReason(m.Item)
		if m.DueReason == domain.DueReasonNew {
			fresh = append(fresh, m)
		} else {
			reviewed = append(reviewed, m)
		}
	}
	sortBy(reviewed, srs.LessExam)
	sortBy(fresh, srs.LessExam)

	newCap := min(newContentCap(size, newContentLimit), len(fresh))
	reviewCap := min(size-newCap, len(reviewed))

	queue := make([]domain.CalculatedItemMetrics, 0, reviewCap+newCap)
	queue = append(queue, reviewed[:reviewCap]...)
	queue = append(queue, fresh[:newCap]...)
	return queue
}

// newContentCap is floor(size * limit), tolerant to binary rounding such as
// 0.29 * 100 = 28.999999999999996.
func newContentCap(size int, limit float64) int {
	return int(math.Floor(float64(size)*limit + 1e-9))
}

// buildCriticalQueue keeps recently failed, low-stability and hot items.
func buildCriticalQueue(metrics []domain.CalculatedItemMetrics, size int, settings domain.QueueConfig) []domain.CalculatedItemMetrics {
	var selected []domain.CalculatedItemMetrics
	for _, m := range metrics {
		if !isCritical(m.Item.SRS(), settings.CriticalStabilityFloor) {
			continue
		}
		m.DueReason = dueReason(m.Item)
		selected = append(selected, m)
	}

	sortBy(selected, priorityFor(domain.QueueModeCritical, settings.StudyMode))

	if len(selected) > size {
		selected = selected[:size]
	}
	return selected
}

func isCritical(st domain.SRSState, stabilityFloor float64) bool {
	recentlyWrong := st.RecentError > 0 || (st.LastWasCorrect != nil && !*st.LastWasCorrect)
	return recentlyWrong || st.Stability < stabilityFloor || st.HotTopic
}
