package study

import (
	"slices"

	"github.com/google/uuid"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// applyFilter keeps the entries matching every predicate of f.
func applyFilter(metrics []domain.CalculatedItemMetrics, f domain.QueueFilter, later map[uuid.UUID]struct{}) []domain.CalculatedItemMetrics {
	if f.IsEmpty() {
		return metrics
	}
	out := metrics[:0:0]
	for _, m := range metrics {
		if matchesFilter(m.Item, f, later) {
			out = append(out, m)
		}
	}
	return out
}

func matchesFilter(item domain.StudyItem, f domain.QueueFilter, later map[uuid.UUID]struct{}) bool {
	meta := item.Meta()
	st := item.SRS()

	if !oneOf(f.Subjects, meta.Subject) || !oneOf(f.Topics, meta.Topic) ||
		!oneOf(f.Banks, meta.Bank) || !oneOf(f.Areas, meta.Area) {
		return false
	}
	if len(f.Kinds) > 0 && !slices.Contains(f.Kinds, item.Kind()) {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(meta.Tags, func(tag string) bool {
		return slices.Contains(f.Tags, tag)
	}) {
		return false
	}

	switch {
	case f.OnlyHot && !st.HotTopic,
		f.OnlyCritical && !st.IsCritical,
		f.OnlyFundamental && !st.IsFundamental,
		f.OnlyFavorites && !meta.Favorite,
		f.OnlyStrict && !IsStrictQuestion(item):
		return false
	}

	if f.OnlyStudyLater {
		if _, ok := later[item.ItemID()]; !ok {
			return false
		}
	}
	return true
}

// oneOf reports whether v is in allowed; an empty set allows everything.
func oneOf(allowed []string, v string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, v)
}
