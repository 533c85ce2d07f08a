package study

import (
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/srs"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
)

// QueueResult holds a built session queue and its summary.
type QueueResult struct {
	Queue []domain.CalculatedItemMetrics
	KPIs  domain.SessionKPIs
}

// ReviewResult holds the outcome of recording one attempt.
type ReviewResult struct {
	// Item is the new snapshot; the input item is left untouched.
	Item   domain.StudyItem
	Patch  srs.Patch
	Timing domain.TimingClass
	// NextReview is the sooner of the regular schedule and the first
	// micro-spacing checkpoint.
	NextReview time.Time
	// Sample is the response time the review was classified with. It is
	// not yet part of the timing statistics; the caller folds it in with
	// Tracker.Apply when it commits the review.
	Sample timing.Sample
}
