package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/app/deck"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/config"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/pkg/ctxutil"
)

// App bundles the configured engine and the decks of one invocation.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Study    *study.Service
	Decks    []*deck.Deck
	Location *time.Location

	// mu guards the items of Decks.
	mu sync.RWMutex
}

// New loads configuration and decks and wires the study service. The
// returned context carries a fresh session id for log correlation.
func New(ctx context.Context, configPath string, deckPaths []string) (context.Context, *App, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return ctx, nil, err
	}

	logger := NewLogger(cfg.Log)

	sessionID := uuid.New()
	ctx = ctxutil.WithSessionID(ctx, sessionID)

	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("session_id", sessionID.String()),
		slog.Int("decks", len(deckPaths)),
	)

	engine := cfg.Engine()
	loc := study.ParseTimezone(cfg.Queue.Timezone)

	decks, err := deck.LoadAll(ctx, deckPaths, engine.Update.DefaultStability, study.DayStart(time.Now(), loc))
	if err != nil {
		return ctx, nil, fmt.Errorf("load decks: %w", err)
	}

	var frozen []string
	for _, d := range decks {
		frozen = append(frozen, d.FrozenSubjects...)
	}

	svc, err := study.NewService(logger, engine, study.NewStructuralGate(frozen...), deck.Union(decks), nil)
	if err != nil {
		return ctx, nil, fmt.Errorf("create study service: %w", err)
	}

	// Later decks win on a shared subject scope.
	states := make(map[string]timing.State)
	for _, d := range decks {
		for key, st := range d.Timing {
			states[key] = st
		}
	}
	svc.Tracker().Restore(states)

	return ctx, &App{
		Config:   cfg,
		Log:      logger,
		Study:    svc,
		Decks:    decks,
		Location: loc,
	}, nil
}

// Items returns the items of every deck in load order.
func (a *App) Items() []domain.StudyItem {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var items []domain.StudyItem
	for _, d := range a.Decks {
		items = append(items, d.Items...)
	}
	return items
}

// Item returns the item with the given id.
func (a *App) Item(id uuid.UUID) (domain.StudyItem, error) {
	item, _, err := a.Find(id)
	return item, err
}

// Find locates an item and the deck that owns it.
func (a *App) Find(id uuid.UUID) (domain.StudyItem, *deck.Deck, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.find(id)
}

func (a *App) find(id uuid.UUID) (domain.StudyItem, *deck.Deck, error) {
	for _, d := range a.Decks {
		if item, err := d.Find(id); err == nil {
			return item, d, nil
		}
	}
	return nil, nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
}

// Commit stores a reviewed item in its deck together with the timing
// statistics the review was classified with, and writes the deck. The
// tracker and the in-memory deck only change once the write succeeded.
func (a *App) Commit(ctx context.Context, res study.ReviewResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	item := res.Item
	prev, d, err := a.find(item.ItemID())
	if err != nil {
		return err
	}
	prevTiming := d.Timing

	if err := d.Replace(item); err != nil {
		return err
	}
	d.Timing = a.Study.Tracker().SnapshotWith(res.Sample)

	if err := d.Save(); err != nil {
		_ = d.Replace(prev)
		d.Timing = prevTiming
		return err
	}
	a.Study.Tracker().Apply(res.Sample)

	a.Log.DebugContext(ctx, "deck saved",
		slog.String("path", d.Path),
		slog.String("item_id", item.ItemID().String()),
		slog.String("timing_scope", res.Sample.Scope),
	)
	return nil
}
