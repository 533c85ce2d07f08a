package timing

import (
	"maps"
	"slices"
	"sync"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// GlobalScope is the scope key used when items carry no subject.
const GlobalScope = "global"

type scope struct {
	mu    sync.Mutex
	state State
}

// Tracker owns the classifier state of many scopes, each behind its own lock.
type Tracker struct {
	classifier *Classifier

	mu     sync.Mutex
	scopes map[string]*scope
}

// NewTracker creates an empty Tracker.
func NewTracker(classifier *Classifier) *Tracker {
	return &Tracker{
		classifier: classifier,
		scopes:     make(map[string]*scope),
	}
}

// Observation is the result of classifying one response in a scope.
type Observation struct {
	Class domain.TimingClass
	// TargetSec is the expected response time before this observation.
	TargetSec float64
}

// Sample is one response time waiting to be folded into its scope.
type Sample struct {
	Scope      string          `json:"scope"`
	Kind       domain.ItemKind `json:"kind"`
	ElapsedSec float64         `json:"elapsed_sec"`
}

// Peek classifies s against its scope without changing the scope. Items of
// unguarded kinds are SOP_OK.
func (t *Tracker) Peek(s Sample) Observation {
	var state State
	if sc := t.lookup(s.Scope); sc != nil {
		sc.mu.Lock()
		state = State{Mean: sc.state.Mean, Window: slices.Clone(sc.state.Window), Count: sc.state.Count}
		sc.mu.Unlock()
	}

	obs := Observation{Class: domain.TimingSOPOK, TargetSec: t.classifier.TargetSec(state)}
	if t.classifier.Guards(s.Kind) {
		obs.Class = t.classifier.Peek(state, s.ElapsedSec)
	}
	return obs
}

// Apply folds s into its scope. Unguarded kinds leave the scope untouched.
func (t *Tracker) Apply(s Sample) {
	if !t.classifier.Guards(s.Kind) {
		return
	}
	sc := t.scope(s.Scope)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	t.classifier.Classify(&sc.state, s.ElapsedSec)
}

// SnapshotWith is Snapshot as it would be after Apply(s); the tracker itself
// is not changed.
func (t *Tracker) SnapshotWith(s Sample) map[string]State {
	out := t.Snapshot()
	if !t.classifier.Guards(s.Kind) {
		return out
	}
	st := out[s.Scope]
	t.classifier.Classify(&st, s.ElapsedSec)
	out[s.Scope] = st
	return out
}

// Snapshot returns a copy of every scope's state for persistence.
func (t *Tracker) Snapshot() map[string]State {
	t.mu.Lock()
	keys := slices.Collect(maps.Keys(t.scopes))
	t.mu.Unlock()

	out := make(map[string]State, len(keys))
	for _, k := range keys {
		sc := t.scope(k)
		sc.mu.Lock()
		out[k] = State{
			Mean:   sc.state.Mean,
			Window: slices.Clone(sc.state.Window),
			Count:  sc.state.Count,
		}
		sc.mu.Unlock()
	}
	return out
}

// Restore replaces the state of the given scopes.
func (t *Tracker) Restore(states map[string]State) {
	for k, st := range states {
		sc := t.scope(k)
		sc.mu.Lock()
		sc.state = State{Mean: st.Mean, Window: slices.Clone(st.Window), Count: st.Count}
		sc.mu.Unlock()
	}
}

// ScopeKey picks the classification scope for an item: its subject, or the
// global scope.
func ScopeKey(item domain.StudyItem) string {
	if s := item.Meta().Subject; s != "" {
		return s
	}
	return GlobalScope
}

func (t *Tracker) lookup(key string) *scope {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scopes[key]
}

func (t *Tracker) scope(key string) *scope {
	t.mu.Lock()
	defer t.mu.Unlock()
	sc, ok := t.scopes[key]
	if !ok {
		sc = &scope{}
		t.scopes[key] = sc
	}
	return sc
}
