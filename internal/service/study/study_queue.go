package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// BuildStudyQueue assembles a session queue from a snapshot of items.
//
// Pipeline: safety gate, metrics, filters, early-review lock, mode-specific
// selection, KPIs. Items that fail the gate or the filters are dropped
// silently. An unknown mode returns domain.ErrUnknownStudyMode.
func (s *Service) BuildStudyQueue(ctx context.Context, input BuildQueueInput) (QueueResult, error) {
	if !input.Mode.IsValid() {
		return QueueResult{}, fmt.Errorf("build study queue: %w: %q", domain.ErrUnknownStudyMode, input.Mode)
	}
	if err := input.Validate(); err != nil {
		return QueueResult{}, err
	}

	cfg := s.cfg
	if input.Settings != nil {
		cfg.Queue = *input.Settings
	}
	settings := cfg.Queue
	if settings.StudyMode == "" {
		settings.StudyMode = domain.StudyModeSpaced
	}

	size := input.SessionSize
	if size == 0 {
		size = settings.DefaultSessionSize
	}

	now := s.clock.Now()

	executable := s.gate.FilterExecutable(input.Items)

	metrics := make([]domain.CalculatedItemMetrics, 0, len(executable))
	for _, item := range executable {
		metrics = append(metrics, CalculateMetrics(item, cfg, now))
	}

	var later map[uuid.UUID]struct{}
	if input.Filter.OnlyStudyLater {
		later = s.studyLater.StudyLaterIDs()
	}
	metrics = applyFilter(metrics, input.Filter, later)

	if settings.LockEarlyReview && input.Mode == domain.QueueModeStandard && !input.AllowEarly {
		metrics = dropNotYetDue(metrics, now)
	}

	var queue []domain.CalculatedItemMetrics
	switch input.Mode {
	case domain.QueueModeStandard:
		queue = buildStandardQueue(metrics, size, input.Seed)
	case domain.QueueModeExam:
		queue = buildExamQueue(metrics, size, settings.NewContentLimit)
	case domain.QueueModeCritical:
		queue = buildCriticalQueue(metrics, size, settings)
	}

	kpis := computeKPIs(queue, usesExamPriority(input.Mode, settings.StudyMode))

	s.log.InfoContext(ctx, "study queue built", logAttrs(ctx,
		slog.String("mode", input.Mode.String()),
		slog.Int("input", len(input.Items)),
		slog.Int("executable", len(executable)),
		slog.Int("eligible", len(metrics)),
		slog.Int("total", kpis.Total),
		slog.Int("due_count", kpis.DueCount),
		slog.Int("new_count", kpis.NewCount),
	)...)

	return QueueResult{Queue: queue, KPIs: kpis}, nil
}

// dropNotYetDue removes reviewed items whose next review is still in the
// future. New items are never locked.
func dropNotYetDue(metrics []domain.CalculatedItemMetrics, now time.Time) []domain.CalculatedItemMetrics {
	out := metrics[:0:0]
	for _, m := range metrics {
		if st := m.Item.SRS(); !st.IsNew() && st.NextReviewDate.After(now) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// dueReason tags an entry as new or due.
func dueReason(item domain.StudyItem) domain.DueReason {
	if item.SRS().IsNew() {
		return domain.DueReasonNew
	}
	return domain.DueReasonDue
}
