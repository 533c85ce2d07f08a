package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/srs"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study/timing"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type contentGate interface {
	FilterExecutable(items []domain.StudyItem) []domain.StudyItem
}

type studyLaterProvider interface {
	StudyLaterIDs() map[uuid.UUID]struct{}
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type noStudyLater struct{}

func (noStudyLater) StudyLaterIDs() map[uuid.UUID]struct{} { return nil }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the adaptive review scheduling engine.
type Service struct {
	log        *slog.Logger
	cfg        domain.EngineConfig
	gate       contentGate
	studyLater studyLaterProvider
	clock      clock
	classifier *timing.Classifier
	tracker    *timing.Tracker
}

// NewService creates a new study Service. A nil studyLater provider means no
// item is marked for later; a nil clock uses the system clock.
func NewService(
	log *slog.Logger,
	cfg domain.EngineConfig,
	gate contentGate,
	studyLater studyLaterProvider,
	clk clock,
) (*Service, error) {
	if gate == nil {
		return nil, fmt.Errorf("content gate is required")
	}
	if cfg.SRS.RTarget <= 0 || cfg.SRS.RTarget >= 1 {
		return nil, fmt.Errorf("invalid r_target: %v", cfg.SRS.RTarget)
	}
	if cfg.Update.GammaFail <= 0 || cfg.Update.GammaFail >= 1 {
		return nil, fmt.Errorf("invalid gamma_fail: %v", cfg.Update.GammaFail)
	}
	if studyLater == nil {
		studyLater = noStudyLater{}
	}
	if clk == nil {
		clk = systemClock{}
	}

	classifier := timing.NewClassifier(cfg.Timing)

	return &Service{
		log:        log.With("service", "study"),
		cfg:        cfg,
		gate:       gate,
		studyLater: studyLater,
		clock:      clk,
		classifier: classifier,
		tracker:    timing.NewTracker(classifier),
	}, nil
}

// Tracker exposes the per-scope timing statistics so the caller can persist
// and restore them.
func (s *Service) Tracker() *timing.Tracker {
	return s.tracker
}

// params builds the update-rule parameters from the engine configuration.
func params(cfg domain.EngineConfig) srs.Parameters {
	return srs.Parameters{
		SRS:              cfg.SRS,
		Update:           cfg.Update,
		MicroSpacedHours: cfg.Queue.MicroSpacedHours,
	}
}

// logAttrs prepends the session and request ids, when present, to attrs.
func logAttrs(ctx context.Context, attrs ...any) []any {
	var ids []any
	if id, ok := ctxutil.SessionIDFromCtx(ctx); ok {
		ids = append(ids, slog.String("session_id", id.String()))
	}
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		ids = append(ids, slog.String("request_id", id))
	}
	return append(ids, attrs...)
}
