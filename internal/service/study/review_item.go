package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/srs"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
)

// ReviewItem records one attempt: it classifies the response time in the
// item's subject scope, runs the update rule and returns a new snapshot of
// the item. Neither the input item nor the timing statistics are modified;
// committing the result is up to the caller.
func (s *Service) ReviewItem(ctx context.Context, input ReviewItemInput) (ReviewResult, error) {
	if err := input.Validate(); err != nil {
		return ReviewResult{}, err
	}

	now := s.clock.Now()
	item := input.Item

	sample := timing.Sample{Scope: timing.ScopeKey(item), Kind: item.Kind(), ElapsedSec: input.ElapsedSec}
	obs := s.tracker.Peek(sample)

	outcome := srs.Outcome{
		Correct:     input.Correct,
		SelfEval:    input.SelfEval,
		ElapsedSec:  input.ElapsedSec,
		Timing:      obs.Class,
		TargetSec:   obs.TargetSec,
		ReviewedAt:  now,
		Diagnostics: input.Diagnostics,
	}

	patch, err := CalculateNewSRSState(item, outcome, s.cfg)
	if err != nil {
		return ReviewResult{}, fmt.Errorf("calculate srs state: %w", err)
	}

	updated := item.WithSRS(patch.Apply(item.SRS()))

	result := ReviewResult{
		Item:       updated,
		Patch:      patch,
		Timing:     obs.Class,
		NextReview: srs.SoonestReview(patch.NextReviewDate, patch.MicroSchedule, now),
		Sample:     sample,
	}

	s.log.InfoContext(ctx, "item reviewed", logAttrs(ctx,
		slog.String("item_id", item.ItemID().String()),
		slog.Bool("correct", input.Correct),
		slog.String("self_eval", input.SelfEval.String()),
		slog.String("timing", obs.Class.String()),
		slog.Float64("stability", patch.Stability),
		slog.Float64("mastery", patch.MasteryScore),
		slog.Time("next_review", result.NextReview),
	)...)

	return result, nil
}

// CurrentDomain returns the domain score of an item at the service clock.
func (s *Service) CurrentDomain(item domain.StudyItem) float64 {
	return CalculateCurrentDomain(item, s.clock.Now())
}
