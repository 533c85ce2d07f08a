package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration
// and parses the list-valued settings. Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}
	if err := c.SRSV2.validate(); err != nil {
		return fmt.Errorf("srs_v2: %w", err)
	}
	if err := c.Timing.validate(); err != nil {
		return fmt.Errorf("timing: %w", err)
	}
	if err := c.Exam.validate(); err != nil {
		return fmt.Errorf("exam_mode: %w", err)
	}
	if err := c.Queue.validate(); err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be in [1, 65535] (got %d)", s.Port)
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 {
		return fmt.Errorf("read_timeout and write_timeout must be > 0")
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be > 0 (got %v)", s.ShutdownTimeout)
	}
	return nil
}

func (s *SRSConfig) validate() error {
	if s.RTarget <= 0 || s.RTarget >= 1 {
		return fmt.Errorf("r_target must be in (0, 1) (got %v)", s.RTarget)
	}
	if s.RNear < s.RTarget || s.RNear >= 1 {
		return fmt.Errorf("r_near must be in [r_target, 1) (got %v)", s.RNear)
	}
	return nil
}

func (s *SRSV2Config) validate() error {
	if s.AlphaHard < 1 || s.AlphaGood < 1 || s.AlphaEasy < 1 {
		return fmt.Errorf("alpha_hard/good/easy must be >= 1 (got %v/%v/%v)", s.AlphaHard, s.AlphaGood, s.AlphaEasy)
	}
	if s.GammaFail <= 0 || s.GammaFail >= 1 {
		return fmt.Errorf("gamma_fail must be in (0, 1) (got %v)", s.GammaFail)
	}
	if s.KRTBonus < 1 || s.KLongGap < 1 {
		return fmt.Errorf("k_rt_bonus and k_long_gap must be >= 1")
	}
	if s.MinIntervalDays <= 0 {
		return fmt.Errorf("min_interval_days must be > 0 (got %v)", s.MinIntervalDays)
	}
	if s.MaxHotDays < s.MinIntervalDays {
		return fmt.Errorf("max_hot_days must be >= min_interval_days (got %v)", s.MaxHotDays)
	}
	if s.SDefaultDays <= 0 || s.CapSDays < s.SDefaultDays {
		return fmt.Errorf("s_default_days must be > 0 and <= cap_s_days")
	}
	if s.MasteryLoss < 0 || s.MasteryLoss > 1 {
		return fmt.Errorf("mastery_loss must be in [0, 1] (got %v)", s.MasteryLoss)
	}
	return nil
}

func (t *TimingConfig) validate() error {
	if t.LambdaEWMA <= 0 || t.LambdaEWMA > 1 {
		return fmt.Errorf("lambda_ewma must be in (0, 1] (got %v)", t.LambdaEWMA)
	}
	if t.WindowN < 1 {
		return fmt.Errorf("window_n must be >= 1 (got %d)", t.WindowN)
	}
	if t.SOPBandLow < 0 || t.SOPBandHigh <= t.SOPBandLow {
		return fmt.Errorf("sop_band_high must be greater than sop_band_low")
	}

	kinds, err := ParseItemKinds(t.SOPGuardTypesRaw)
	if err != nil {
		return fmt.Errorf("sop_guard_types: %w", err)
	}
	t.SOPGuardTypes = kinds

	return nil
}

func (e *ExamConfig) validate() error {
	if e.NewContentLimit < 0 || e.NewContentLimit > 1 {
		return fmt.Errorf("new_content_limit must be in [0, 1] (got %v)", e.NewContentLimit)
	}

	hours, err := ParseHours(e.MicroSpacedHoursRaw)
	if err != nil {
		return fmt.Errorf("micro_spaced_hours: %w", err)
	}
	e.MicroSpacedHours = hours

	date, err := ParseDate(e.ExamDateRaw)
	if err != nil {
		return fmt.Errorf("exam_date: %w", err)
	}
	e.ExamDate = date

	return nil
}

func (q *QueueConfig) validate() error {
	if !domain.StudyMode(q.StudyMode).IsValid() {
		return fmt.Errorf("study_mode must be spaced or exam (got %q)", q.StudyMode)
	}
	if q.DefaultSessionSize < 1 {
		return fmt.Errorf("default_session_size must be >= 1 (got %d)", q.DefaultSessionSize)
	}
	if _, err := time.LoadLocation(q.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", q.Timezone, err)
	}
	return nil
}

// ParseHours parses a comma-separated list of hour offsets (e.g.
// "0.25,1,4,24"). Offsets must be positive and keep their order. An empty
// string returns a nil slice.
func ParseHours(raw string) ([]float64, error) {
	parts := splitList(raw)
	if len(parts) == 0 {
		return nil, nil
	}

	hours := make([]float64, 0, len(parts))
	for _, p := range parts {
		h, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hour offset %q: %w", p, err)
		}
		if h <= 0 {
			return nil, fmt.Errorf("hour offset %q must be > 0", p)
		}
		hours = append(hours, h)
	}

	return hours, nil
}

// ParseItemKinds parses a comma-separated list of item kinds.
func ParseItemKinds(raw string) ([]domain.ItemKind, error) {
	parts := splitList(raw)
	if len(parts) == 0 {
		return nil, nil
	}

	kinds := make([]domain.ItemKind, 0, len(parts))
	for _, p := range parts {
		k := domain.ItemKind(strings.ToLower(p))
		if !k.IsValid() {
			return nil, fmt.Errorf("unknown item kind %q", p)
		}
		kinds = append(kinds, k)
	}

	return kinds, nil
}

// ParseDate parses a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
// An empty string returns nil.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", raw)
	}
	return &t, nil
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
