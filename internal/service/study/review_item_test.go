package study

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/pkg/ctxutil"
)

func TestReviewItem_CorrectNewItem(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testEngineConfig(), nil, nil)
	item := question("law", newState())

	res, err := svc.ReviewItem(context.Background(), ReviewItemInput{
		Item:       item,
		Correct:    true,
		SelfEval:   domain.SelfEvalGood,
		ElapsedSec: 30,
	})
	require.NoError(t, err)

	st := res.Item.SRS()
	assert.Equal(t, 1, st.TotalAttempts)
	assert.Len(t, st.AttemptHistory, 1)
	assert.Greater(t, st.Stability, 1.0)
	assert.Greater(t, st.MasteryScore, 0.0)
	assert.Equal(t, domain.TimingSOPOK, res.Timing)
	assert.True(t, res.NextReview.After(testNow))
	assert.Equal(t, res.Patch.NextReviewDate, res.NextReview)
	assert.Empty(t, res.Patch.MicroSchedule)

	// The caller's snapshot is untouched.
	assert.Equal(t, 0, item.State.TotalAttempts)
	assert.Empty(t, item.State.AttemptHistory)

	assert.Equal(t, 1, svc.Tracker().Snapshot()["law"].Count)
}

func TestReviewItem_RoundTripRetrievability(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testEngineConfig(), nil, nil)
	item := question("law", reviewedState(4, 50, 5, -1))

	for _, correct := range []bool{true, false} {
		res, err := svc.ReviewItem(context.Background(), ReviewItemInput{
			Item:       item,
			Correct:    correct,
			SelfEval:   domain.SelfEvalGood,
			ElapsedSec: 20,
		})
		require.NoError(t, err)

		m := svc.CalculateMetrics(res.Item)
		assert.Equal(t, 1.0, m.RNow, "correct=%v", correct)
		assert.Equal(t, 0.0, m.DT)
		assert.InDelta(t, 0.7*res.Item.SRS().MasteryScore+30, svc.CurrentDomain(res.Item), 1e-9)
	}
}

func TestReviewItem_WeakFailureSchedulesMicroSpacing(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testEngineConfig(), nil, nil)
	item := flashcard("math", reviewedState(2, 30, 2, 0))

	res, err := svc.ReviewItem(context.Background(), ReviewItemInput{
		Item:       item,
		Correct:    false,
		SelfEval:   domain.SelfEvalAgain,
		ElapsedSec: 12,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Patch.MicroSchedule)
	assert.Equal(t, res.Patch.MicroSchedule[0], res.NextReview)
	assert.True(t, res.NextReview.Before(res.Patch.NextReviewDate))

	st := res.Item.SRS()
	assert.Equal(t, 1, st.RecentError)
	assert.Equal(t, 1, st.Lapses)
	require.NotNil(t, st.LastWasCorrect)
	assert.False(t, *st.LastWasCorrect)
}

func TestReviewItem_TimingClassification(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testEngineConfig(), nil, nil)

	res, err := svc.ReviewItem(context.Background(), ReviewItemInput{
		Item:       question("law", newState()),
		Correct:    true,
		SelfEval:   domain.SelfEvalEasy,
		ElapsedSec: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TimingRush, res.Timing)
	assert.Equal(t, domain.TimingRush, res.Item.SRS().AttemptHistory[0].Timing)

	res, err = svc.ReviewItem(context.Background(), ReviewItemInput{
		Item:       question("law", newState()),
		Correct:    true,
		SelfEval:   domain.SelfEvalGood,
		ElapsedSec: 400,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TimingOver, res.Timing)

	// Flashcards are not guarded by default.
	res, err = svc.ReviewItem(context.Background(), ReviewItemInput{
		Item:       flashcard("law", newState()),
		Correct:    true,
		SelfEval:   domain.SelfEvalGood,
		ElapsedSec: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TimingSOPOK, res.Timing)
	assert.Equal(t, domain.ItemKindFlashcard, res.Sample.Kind)
}

func TestReviewItem_DoesNotTouchTimingStats(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testEngineConfig(), nil, nil)
	for i := 0; i < 10; i++ {
		svc.Tracker().Apply(timing.Sample{Scope: "law", Kind: domain.ItemKindQuestion, ElapsedSec: 40})
	}
	before := svc.Tracker().Snapshot()

	var last ReviewResult
	for i := 0; i < 3; i++ {
		res, err := svc.ReviewItem(context.Background(), ReviewItemInput{
			Item:       question("law", newState()),
			Correct:    true,
			SelfEval:   domain.SelfEvalGood,
			ElapsedSec: 250,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TimingOver, res.Timing)
		last = res
	}
	assert.Equal(t, before, svc.Tracker().Snapshot())

	assert.Equal(t, timing.Sample{Scope: "law", Kind: domain.ItemKindQuestion, ElapsedSec: 250}, last.Sample)
	svc.Tracker().Apply(last.Sample)
	assert.Equal(t, 11, svc.Tracker().Snapshot()["law"].Count)
}

func TestReviewItem_KeepsDiagnostics(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testEngineConfig(), nil, nil)
	ctx := ctxutil.WithRequestID(context.Background(), "req-1")

	res, err := svc.ReviewItem(ctx, ReviewItemInput{
		Item:        question("law", newState()),
		Correct:     true,
		SelfEval:    domain.SelfEvalHard,
		ElapsedSec:  25,
		Diagnostics: map[string]any{"chosen": "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "b", res.Item.SRS().AttemptHistory[0].Diagnostics["chosen"])
}

func TestReviewItem_NonFiniteStability(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testEngineConfig(), nil, nil)

	for _, s := range []float64{math.Inf(1), math.NaN()} {
		st := reviewedState(1, 50, 1, 0)
		st.Stability = s
		_, err := svc.ReviewItem(context.Background(), ReviewItemInput{
			Item:       question("law", st),
			Correct:    true,
			SelfEval:   domain.SelfEvalGood,
			ElapsedSec: 20,
		})
		if !errors.Is(err, domain.ErrNonFiniteStability) {
			t.Errorf("stability %v: expected ErrNonFiniteStability, got %v", s, err)
		}
	}
}

func TestReviewItemInput_Validate(t *testing.T) {
	t.Parallel()

	item := question("law", newState())

	tests := []struct {
		name    string
		input   ReviewItemInput
		wantErr bool
		field   string
	}{
		{"valid", ReviewItemInput{Item: item, SelfEval: domain.SelfEvalGood, ElapsedSec: 10}, false, ""},
		{"zero elapsed", ReviewItemInput{Item: item, SelfEval: domain.SelfEvalAgain}, false, ""},
		{"nil item", ReviewItemInput{SelfEval: domain.SelfEvalGood}, true, "item"},
		{"bad eval", ReviewItemInput{Item: item, SelfEval: 7}, true, "self_eval"},
		{"negative elapsed", ReviewItemInput{Item: item, ElapsedSec: -1}, true, "elapsed_sec"},
		{"nan elapsed", ReviewItemInput{Item: item, ElapsedSec: math.NaN()}, true, "elapsed_sec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.input.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Errors[0].Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Errors[0].Field, tt.field)
			}
		})
	}
}

func TestCalculateMetrics_Idempotent(t *testing.T) {
	t.Parallel()

	cfg := testEngineConfig()
	item := question("law", reviewedState(7, 60, 4, 3))

	first := CalculateMetrics(item, cfg, testNow)
	second := CalculateMetrics(item, cfg, testNow)
	assert.Equal(t, first, second)
	assert.InDelta(t, math.Exp(-4.0/7.0), first.RNow, 1e-12)
	assert.InDelta(t, 0.7*60+30*first.RNow, first.D, 1e-9)
	assert.Equal(t, first.RNow, first.RProj, "no exam date projects to now")
}

func TestNewService_Validation(t *testing.T) {
	t.Parallel()

	cfg := testEngineConfig()
	cfg.SRS.RTarget = 1
	_, err := NewService(nil, cfg, NewStructuralGate(), nil, nil)
	assert.Error(t, err)

	cfg = testEngineConfig()
	cfg.Update.GammaFail = 0
	_, err = NewService(nil, cfg, NewStructuralGate(), nil, nil)
	assert.Error(t, err)

	_, err = NewService(nil, testEngineConfig(), nil, nil, nil)
	assert.Error(t, err)
}
