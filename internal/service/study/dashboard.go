package study

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/srs"
)

// Dashboard aggregates study statistics over a collection of items. Day
// boundaries (overdue, reviewed today, streak) follow the timezone tz.
func (s *Service) Dashboard(ctx context.Context, items []domain.StudyItem, tz *time.Location) domain.Dashboard {
	now := s.clock.Now()
	dayStart := DayStart(now, tz)
	nextDayStart := NextDayStart(now, tz)

	dash := domain.Dashboard{
		Total:       len(items),
		StageCounts: make(domain.StageCounts),
	}

	perDay := make(map[time.Time]int)
	var sumD float64

	for _, item := range items {
		st := item.SRS()
		dash.StageCounts[st.SRSStage]++

		r := srs.Retrievability(st.Stability, srs.ElapsedDays(st.LastReviewedAt, now))
		sumD += srs.CurrentDomain(st.MasteryScore, r)

		if !st.IsNew() && st.NextReviewDate.Before(nextDayStart) {
			dash.DueTodayCount++
		}
		if st.IsNew() {
			dash.NewCount++
		} else if st.IsDue(now) {
			dash.DueCount++
			// Due before today's start (overdue by at least one full day)
			if st.NextReviewDate.Before(dayStart) {
				dash.OverdueCount++
			}
		}

		for _, a := range st.AttemptHistory {
			if !a.At.Before(dayStart) {
				dash.ReviewedToday++
			}
			local := a.At.In(tz)
			perDay[time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)]++
		}
	}

	if len(items) > 0 {
		dash.MeanDomain = sumD / float64(len(items))
	}

	days := make([]domain.DayReviewCount, 0, len(perDay))
	for date, count := range perDay {
		days = append(days, domain.DayReviewCount{Date: date, Count: count})
	}
	slices.SortFunc(days, func(a, b domain.DayReviewCount) int {
		return b.Date.Compare(a.Date)
	})

	nowInTz := now.In(tz)
	today := time.Date(nowInTz.Year(), nowInTz.Month(), nowInTz.Day(), 0, 0, 0, 0, tz)
	dash.Streak = calculateStreak(days, today)

	s.log.InfoContext(ctx, "dashboard computed", logAttrs(ctx,
		slog.Int("total", dash.Total),
		slog.Int("due_count", dash.DueCount),
		slog.Int("due_today", dash.DueTodayCount),
		slog.Int("new_count", dash.NewCount),
		slog.Int("streak", dash.Streak),
	)...)

	return dash
}

// ItemStats returns aggregated statistics for a single item from its
// attempt history.
func ItemStats(item domain.StudyItem) domain.ItemStats {
	st := item.SRS()
	stats := domain.ItemStats{
		TotalAttempts: len(st.AttemptHistory),
		Stability:     st.Stability,
		MasteryScore:  st.MasteryScore,
		Lapses:        st.Lapses,
	}

	if stats.TotalAttempts == 0 {
		return stats
	}

	var correct int
	var totalElapsed float64
	var elapsedCount int
	for _, a := range st.AttemptHistory {
		if a.Correct {
			correct++
		}

		switch a.SelfEval {
		case domain.SelfEvalAgain:
			stats.EvalDistribution.Again++
		case domain.SelfEvalHard:
			stats.EvalDistribution.Hard++
		case domain.SelfEvalGood:
			stats.EvalDistribution.Good++
		case domain.SelfEvalEasy:
			stats.EvalDistribution.Easy++
		}

		switch a.Timing {
		case domain.TimingRush:
			stats.TimingBreakdown.Rush++
		case domain.TimingSOPOK:
			stats.TimingBreakdown.SOPOK++
		case domain.TimingOver:
			stats.TimingBreakdown.Over++
		}

		if a.ElapsedSec > 0 {
			totalElapsed += a.ElapsedSec
			elapsedCount++
		}
	}

	stats.AccuracyRate = float64(correct) / float64(stats.TotalAttempts) * 100
	if elapsedCount > 0 {
		avg := totalElapsed / float64(elapsedCount)
		stats.AverageElapsedSec = &avg
	}

	return stats
}

// ---------------------------------------------------------------------------
// Helper Functions
// ---------------------------------------------------------------------------

// calculateStreak calculates the current review streak in days.
// days must be sorted DESC by date (most recent first).
// Returns the number of consecutive days with reviews, starting from today or yesterday.
func calculateStreak(days []domain.DayReviewCount, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	streak := 0
	expectedDate := today

	sameDay := func(a, b time.Time) bool {
		return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
	}

	// If today has no reviews, start from yesterday
	if !sameDay(days[0].Date, today) {
		expectedDate = today.AddDate(0, 0, -1)
	}

	for _, d := range days {
		if !sameDay(d.Date, expectedDate) {
			break
		}
		streak++
		expectedDate = expectedDate.AddDate(0, 0, -1)
	}
	return streak
}
