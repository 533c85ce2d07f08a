package srs

import (
	"math"
	"testing"
	"time"
)

func TestScheduleMicroSpacing(t *testing.T) {
	t.Parallel()

	got := ScheduleMicroSpacing(testNow, []float64{0.25, 1, -2, math.NaN(), 24})
	want := []time.Time{
		testNow.Add(15 * time.Minute),
		testNow.Add(time.Hour),
		testNow.Add(24 * time.Hour),
	}

	if len(got) != len(want) {
		t.Fatalf("ScheduleMicroSpacing() returned %d checkpoints, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("checkpoint %d = %v, want %v", i, got[i], want[i])
		}
	}

	if got := ScheduleMicroSpacing(testNow, nil); got != nil {
		t.Errorf("empty offsets should give nil, got %v", got)
	}
}

func TestIsWeak(t *testing.T) {
	t.Parallel()

	u := testParams().Update

	tests := []struct {
		name      string
		stability float64
		mastery   float64
		want      bool
	}{
		{"low stability", 1, 90, true},
		{"low mastery", 30, 20, true},
		{"strong", 30, 90, false},
		{"at both thresholds", 3, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := reviewedState(tt.stability, tt.mastery, 0)
			if got := IsWeak(st, u); got != tt.want {
				t.Errorf("IsWeak() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSoonestReview(t *testing.T) {
	t.Parallel()

	next := testNow.Add(48 * time.Hour)
	micro := []time.Time{testNow.Add(-time.Hour), testNow.Add(4 * time.Hour), testNow.Add(time.Hour)}

	if got := SoonestReview(next, micro, testNow); !got.Equal(testNow.Add(time.Hour)) {
		t.Errorf("SoonestReview() = %v, want +1h", got)
	}
	if got := SoonestReview(next, nil, testNow); !got.Equal(next) {
		t.Errorf("SoonestReview() without micro = %v, want %v", got, next)
	}
}
