// Package timing classifies response times as rushed, normal or overlong
// relative to the learner's own recent behaviour.
//
// The running statistics live in a State value owned by the caller, one per
// classification scope (a subject, or "global"). Classify both reads and
// updates that state, so a State must not be shared between concurrent
// writers; Tracker provides one lock per scope for multi-threaded hosts.
// Peek only reads, which lets a review be classified before the caller
// decides to commit it.
package timing

import (
	"math"
	"slices"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

const (
	// madToSigma converts a median absolute deviation into a standard
	// deviation estimate for normally distributed data.
	madToSigma = 1.4826
	// minSigmaFrac keeps the spread estimate away from zero when the window
	// is perfectly uniform.
	minSigmaFrac = 0.1
)

// State holds the running statistics of one scope. It is serialisable so the
// caller can persist it between sessions.
type State struct {
	Mean   float64   `json:"mean"   yaml:"mean"`
	Window []float64 `json:"window" yaml:"window,flow"`
	Count  int       `json:"count"  yaml:"count"`
}

// Warm reports whether the window is full enough for adaptive thresholds.
func (s *State) Warm(windowN int) bool {
	return windowN > 0 && len(s.Window) >= windowN
}

// Classifier applies static and adaptive thresholds to response times.
type Classifier struct {
	cfg domain.TimingConfig
}

// NewClassifier creates a Classifier for the given configuration.
func NewClassifier(cfg domain.TimingConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Guards reports whether items of the given kind are timing-classified.
// An empty guard list guards every kind.
func (c *Classifier) Guards(kind domain.ItemKind) bool {
	if len(c.cfg.SOPGuardTypes) == 0 {
		return true
	}
	return slices.Contains(c.cfg.SOPGuardTypes, kind)
}

// Classify classifies elapsedSec against the state as it was before this
// observation, then folds the observation into the state.
func (c *Classifier) Classify(state *State, elapsedSec float64) domain.TimingClass {
	class := c.classify(state, elapsedSec)
	c.observe(state, elapsedSec)
	return class
}

// Peek classifies without updating the state.
func (c *Classifier) Peek(state State, elapsedSec float64) domain.TimingClass {
	return c.classify(&state, elapsedSec)
}

// TargetSec is the expected response time: the running mean once warm,
// otherwise the configured default.
func (c *Classifier) TargetSec(state State) float64 {
	if state.Warm(c.cfg.WindowN) && state.Mean > 0 {
		return state.Mean
	}
	return c.cfg.TargetSecDefault
}

func (c *Classifier) classify(state *State, e float64) domain.TimingClass {
	cfg := c.cfg

	if e < cfg.MinThinkSec || e < cfg.RushThresholdSec {
		return domain.TimingRush
	}
	if cfg.OverThresholdSec > 0 && e > cfg.OverThresholdSec {
		return domain.TimingOver
	}

	// Cold start: static thresholds only.
	if !state.Warm(cfg.WindowN) || state.Mean <= 0 {
		return domain.TimingSOPOK
	}

	if e < cfg.SOPBandLow*state.Mean {
		return domain.TimingRush
	}
	if cfg.SOPBandHigh > 0 && e > cfg.SOPBandHigh*state.Mean {
		return domain.TimingOver
	}
	if cfg.MADAlertZ > 0 && (e-state.Mean)/sigma(state) > cfg.MADAlertZ {
		return domain.TimingOver
	}
	return domain.TimingSOPOK
}

// observe updates the EWMA and the sliding window. Once warm, the value fed
// to the EWMA is winsorised to the alert band so one outlier cannot drag
// the mean; the window keeps the raw value.
func (c *Classifier) observe(state *State, e float64) {
	if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 {
		return
	}
	cfg := c.cfg

	x := e
	if state.Count == 0 || state.Mean <= 0 {
		state.Mean = x
	} else {
		if state.Warm(cfg.WindowN) && cfg.MADAlertZ > 0 {
			band := cfg.MADAlertZ * sigma(state)
			x = math.Max(state.Mean-band, math.Min(state.Mean+band, x))
		}
		state.Mean = cfg.LambdaEWMA*x + (1-cfg.LambdaEWMA)*state.Mean
	}

	state.Window = append(state.Window, e)
	if cfg.WindowN > 0 && len(state.Window) > cfg.WindowN {
		state.Window = slices.Clone(state.Window[len(state.Window)-cfg.WindowN:])
	}
	state.Count++
}

// sigma is the robust spread of the window, floored at a fraction of the
// mean.
func sigma(state *State) float64 {
	return math.Max(madToSigma*MAD(state.Window), minSigmaFrac*state.Mean)
}

// Median returns the median of values, or 0 for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// MAD returns the median absolute deviation from the median.
func MAD(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	med := Median(values)
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - med)
	}
	return Median(dev)
}
