package domain

// QueueFilter restricts the items eligible for a queue. Every non-empty
// field is a predicate and all predicates must hold (AND).
type QueueFilter struct {
	Subjects []string
	Topics   []string
	Banks    []string
	Areas    []string
	Tags     []string
	Kinds    []ItemKind

	OnlyHot         bool
	OnlyCritical    bool
	OnlyFundamental bool
	OnlyFavorites   bool
	OnlyStudyLater  bool
	// OnlyStrict keeps multiple-choice questions whose answer is one of
	// their options.
	OnlyStrict bool
}

// IsEmpty reports whether the filter has no predicates.
func (f QueueFilter) IsEmpty() bool {
	return len(f.Subjects) == 0 && len(f.Topics) == 0 && len(f.Banks) == 0 &&
		len(f.Areas) == 0 && len(f.Tags) == 0 && len(f.Kinds) == 0 &&
		!f.OnlyHot && !f.OnlyCritical && !f.OnlyFundamental &&
		!f.OnlyFavorites && !f.OnlyStudyLater && !f.OnlyStrict
}
