package study

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// StructuralGate drops items that cannot be shown to a learner: missing
// identity, missing text or answer, or a subject that is frozen.
type StructuralGate struct {
	frozen map[string]struct{}
}

// NewStructuralGate creates a gate that also excludes the given subjects.
func NewStructuralGate(frozenSubjects ...string) *StructuralGate {
	g := &StructuralGate{frozen: make(map[string]struct{}, len(frozenSubjects))}
	for _, subj := range frozenSubjects {
		g.frozen[subj] = struct{}{}
	}
	return g
}

// FilterExecutable returns the executable items, keeping their order.
func (g *StructuralGate) FilterExecutable(items []domain.StudyItem) []domain.StudyItem {
	out := make([]domain.StudyItem, 0, len(items))
	for _, item := range items {
		if item == nil || item.ItemID() == uuid.Nil {
			continue
		}
		if _, ok := g.frozen[item.Meta().Subject]; ok {
			continue
		}
		if !isExecutable(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// IsStrictQuestion reports whether item is a multiple-choice question whose
// answer is one of its options.
func IsStrictQuestion(item domain.StudyItem) bool {
	q, ok := item.(domain.Question)
	if !ok || len(q.Options) < 2 {
		return false
	}
	return slices.Contains(q.Options, q.Answer)
}

// isExecutable checks the kind-specific content. A question with options
// needs at least two of them; kinds the gate does not know pass through.
func isExecutable(item domain.StudyItem) bool {
	switch v := item.(type) {
	case domain.Question:
		return !blank(v.Statement) && !blank(v.Answer) && len(v.Options) != 1
	case domain.Flashcard:
		return !blank(v.Front) && !blank(v.Back)
	default:
		return true
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
