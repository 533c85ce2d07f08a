package rest

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study"
)

type studyEngine interface {
	BuildStudyQueue(ctx context.Context, input study.BuildQueueInput) (study.QueueResult, error)
	ReviewItem(ctx context.Context, input study.ReviewItemInput) (study.ReviewResult, error)
	CalculateMetrics(item domain.StudyItem) domain.CalculatedItemMetrics
	Dashboard(ctx context.Context, items []domain.StudyItem, tz *time.Location) domain.Dashboard
}

type itemStore interface {
	Items() []domain.StudyItem
	Item(id uuid.UUID) (domain.StudyItem, error)
	Commit(ctx context.Context, res study.ReviewResult) error
}

// StudyHandler exposes the scheduling engine over JSON.
//
// Reviews take the write lock for the whole read-review-commit sequence so
// that two attempts on the same item cannot both start from the old state.
type StudyHandler struct {
	engine studyEngine
	store  itemStore
	tz     *time.Location
	log    *slog.Logger
	mu     sync.RWMutex
}

func NewStudyHandler(log *slog.Logger, engine studyEngine, store itemStore, tz *time.Location) *StudyHandler {
	if tz == nil {
		tz = time.UTC
	}
	return &StudyHandler{
		engine: engine,
		store:  store,
		tz:     tz,
		log:    log.With("handler", "study"),
	}
}

// Register mounts the study routes on mux.
func (h *StudyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/queue", h.Queue)
	mux.HandleFunc("POST /v1/items/{id}/reviews", h.Review)
	mux.HandleFunc("GET /v1/items/{id}/metrics", h.Metrics)
	mux.HandleFunc("GET /v1/items/{id}/stats", h.Stats)
	mux.HandleFunc("GET /v1/dashboard", h.Dashboard)
}

// QueueRequest is the body of POST /v1/queue.
type QueueRequest struct {
	Mode       domain.QueueMode `json:"mode"`
	Size       int              `json:"size"`
	Seed       uint64           `json:"seed"`
	AllowEarly bool             `json:"allow_early"`
	Filter     FilterRequest    `json:"filter"`
}

// FilterRequest mirrors domain.QueueFilter.
type FilterRequest struct {
	Subjects        []string          `json:"subjects"`
	Topics          []string          `json:"topics"`
	Banks           []string          `json:"banks"`
	Areas           []string          `json:"areas"`
	Tags            []string          `json:"tags"`
	Kinds           []domain.ItemKind `json:"kinds"`
	OnlyHot         bool              `json:"only_hot"`
	OnlyCritical    bool              `json:"only_critical"`
	OnlyFundamental bool              `json:"only_fundamental"`
	OnlyFavorites   bool              `json:"only_favorites"`
	OnlyStrict      bool              `json:"only_strict"`
	OnlyStudyLater  bool              `json:"only_study_later"`
}

func (f FilterRequest) toDomain() domain.QueueFilter {
	return domain.QueueFilter{
		Subjects:        f.Subjects,
		Topics:          f.Topics,
		Banks:           f.Banks,
		Areas:           f.Areas,
		Tags:            f.Tags,
		Kinds:           f.Kinds,
		OnlyHot:         f.OnlyHot,
		OnlyCritical:    f.OnlyCritical,
		OnlyFundamental: f.OnlyFundamental,
		OnlyFavorites:   f.OnlyFavorites,
		OnlyStrict:      f.OnlyStrict,
		OnlyStudyLater:  f.OnlyStudyLater,
	}
}

// Queue builds a session queue over every loaded item.
func (h *StudyHandler) Queue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QueueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, h.log, w, err)
		return
	}
	if req.Mode == "" {
		req.Mode = domain.QueueModeStandard
	}

	h.mu.RLock()
	res, err := h.engine.BuildStudyQueue(ctx, study.BuildQueueInput{
		Mode:        req.Mode,
		Items:       h.store.Items(),
		Filter:      req.Filter.toDomain(),
		SessionSize: req.Size,
		AllowEarly:  req.AllowEarly,
		Seed:        req.Seed,
	})
	h.mu.RUnlock()
	if err != nil {
		writeError(ctx, h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewQueueView(res))
}

// ReviewRequest is the body of POST /v1/items/{id}/reviews.
type ReviewRequest struct {
	Correct     bool           `json:"correct"`
	SelfEval    string         `json:"self_eval"`
	ElapsedSec  float64        `json:"elapsed_sec"`
	Diagnostics map[string]any `json:"diagnostics,omitempty"`
	DryRun      bool           `json:"dry_run"`
}

// Review records one attempt and, unless dry_run is set, saves the new
// snapshot to its deck.
func (h *StudyHandler) Review(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, h.log, w, err)
		return
	}

	var req ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, h.log, w, err)
		return
	}
	eval, ok := domain.ParseSelfEval(req.SelfEval)
	if !ok {
		writeError(ctx, h.log, w, domain.NewValidationError("self_eval", "must be again, hard, good, easy or 0-3"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	item, err := h.store.Item(id)
	if err != nil {
		writeError(ctx, h.log, w, err)
		return
	}

	res, err := h.engine.ReviewItem(ctx, study.ReviewItemInput{
		Item:        item,
		Correct:     req.Correct,
		SelfEval:    eval,
		ElapsedSec:  req.ElapsedSec,
		Diagnostics: req.Diagnostics,
	})
	if err != nil {
		writeError(ctx, h.log, w, err)
		return
	}

	if !req.DryRun {
		if err := h.store.Commit(ctx, res); err != nil {
			writeError(ctx, h.log, w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, NewReviewView(res, !req.DryRun))
}

// Metrics returns the current metrics of one item.
func (h *StudyHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewMetricsView(h.engine.CalculateMetrics(item)))
}

// Stats returns attempt statistics of one item.
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewItemStatsView(study.ItemStats(item)))
}

// Dashboard returns aggregated statistics over every loaded item.
func (h *StudyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	dash := h.engine.Dashboard(r.Context(), h.store.Items(), h.tz)
	h.mu.RUnlock()

	writeJSON(w, http.StatusOK, NewDashboardView(dash))
}

func (h *StudyHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.StudyItem, bool) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return nil, false
	}

	h.mu.RLock()
	item, err := h.store.Item(id)
	h.mu.RUnlock()
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return nil, false
	}
	return item, true
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a UUID")
	}
	return id, nil
}
