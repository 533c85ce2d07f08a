package config

import (
	"net"
	"strconv"
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	SRS    SRSConfig    `yaml:"srs"`
	SRSV2  SRSV2Config  `yaml:"srs_v2"`
	Timing TimingConfig `yaml:"timing"`
	Exam   ExamConfig   `yaml:"exam_mode"`
	Queue  QueueConfig  `yaml:"queue"`
}

// ServerConfig holds HTTP server settings for "studyctl serve".
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SRSConfig holds retrievability thresholds and priority weights.
type SRSConfig struct {
	RTarget          float64       `yaml:"r_target"           env:"SRS_R_TARGET"           env-default:"0.9"`
	RNear            float64       `yaml:"r_near"             env:"SRS_R_NEAR"             env-default:"0.95"`
	OverdueBoost     float64       `yaml:"overdue_boost"      env:"SRS_OVERDUE_BOOST"      env-default:"10"`
	LowStabilityDays float64       `yaml:"low_stability_days" env:"SRS_LOW_STABILITY_DAYS" env-default:"3"`
	Weights          WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds additive priority weights.
type WeightsConfig struct {
	IsHot         float64 `yaml:"is_hot"         env:"SRS_WEIGHT_HOT"          env-default:"1.5"`
	IsFundamental float64 `yaml:"is_fundamental" env:"SRS_WEIGHT_FUNDAMENTAL"  env-default:"1.0"`
	IsCritical    float64 `yaml:"is_critical"    env:"SRS_WEIGHT_CRITICAL"     env-default:"2.0"`
	RecentError   float64 `yaml:"recent_error"   env:"SRS_WEIGHT_RECENT_ERROR" env-default:"1.5"`
	LowS          float64 `yaml:"low_s"          env:"SRS_WEIGHT_LOW_S"        env-default:"1.0"`
}

// SRSV2Config holds the stability/mastery update rule parameters.
type SRSV2Config struct {
	AlphaHard float64 `yaml:"alpha_hard" env:"SRS_ALPHA_HARD" env-default:"1.2"`
	AlphaGood float64 `yaml:"alpha_good" env:"SRS_ALPHA_GOOD" env-default:"2.0"`
	AlphaEasy float64 `yaml:"alpha_easy" env:"SRS_ALPHA_EASY" env-default:"2.8"`
	GammaFail float64 `yaml:"gamma_fail" env:"SRS_GAMMA_FAIL" env-default:"0.5"`

	RTFast   float64 `yaml:"rt_fast"    env:"SRS_RT_FAST"    env-default:"0.6"`
	RTSlow   float64 `yaml:"rt_slow"    env:"SRS_RT_SLOW"    env-default:"1.5"`
	KRTBonus float64 `yaml:"k_rt_bonus" env:"SRS_K_RT_BONUS" env-default:"1.15"`
	KLongGap float64 `yaml:"k_long_gap" env:"SRS_K_LONG_GAP" env-default:"1.2"`

	MinIntervalDays float64 `yaml:"min_interval_days" env:"SRS_MIN_INTERVAL_DAYS" env-default:"1"`
	MaxHotDays      float64 `yaml:"max_hot_days"      env:"SRS_MAX_HOT_DAYS"      env-default:"3"`
	SDefaultDays    float64 `yaml:"s_default_days"    env:"SRS_S_DEFAULT_DAYS"    env-default:"1"`
	CapSDays        float64 `yaml:"cap_s_days"        env:"SRS_CAP_S_DAYS"        env-default:"365"`

	MasteryGainHard float64 `yaml:"mastery_gain_hard" env:"SRS_MASTERY_GAIN_HARD" env-default:"0.10"`
	MasteryGainGood float64 `yaml:"mastery_gain_good" env:"SRS_MASTERY_GAIN_GOOD" env-default:"0.20"`
	MasteryGainEasy float64 `yaml:"mastery_gain_easy" env:"SRS_MASTERY_GAIN_EASY" env-default:"0.30"`
	MasteryLoss     float64 `yaml:"mastery_loss"      env:"SRS_MASTERY_LOSS"      env-default:"0.25"`
	MaxStage        int     `yaml:"max_stage"         env:"SRS_MAX_STAGE"         env-default:"8"`

	WeakStabilityDays float64 `yaml:"weak_stability_days" env:"SRS_WEAK_STABILITY_DAYS" env-default:"3"`
	WeakMastery       float64 `yaml:"weak_mastery"        env:"SRS_WEAK_MASTERY"        env-default:"40"`
}

// TimingConfig holds timing classifier parameters.
type TimingConfig struct {
	SOPGuardTypesRaw string  `yaml:"sop_guard_types"  env:"TIMING_SOP_GUARD_TYPES"  env-default:"question"`
	MinThinkSec      float64 `yaml:"min_think_sec"    env:"TIMING_MIN_THINK_SEC"    env-default:"2"`
	RushThreshold    float64 `yaml:"rush_threshold"   env:"TIMING_RUSH_THRESHOLD"   env-default:"3"`
	OverThreshold    float64 `yaml:"over_threshold"   env:"TIMING_OVER_THRESHOLD"   env-default:"300"`
	SOPBandLow       float64 `yaml:"sop_band_low"     env:"TIMING_SOP_BAND_LOW"     env-default:"0.4"`
	SOPBandHigh      float64 `yaml:"sop_band_high"    env:"TIMING_SOP_BAND_HIGH"    env-default:"2.5"`
	LambdaEWMA       float64 `yaml:"lambda_ewma"      env:"TIMING_LAMBDA_EWMA"      env-default:"0.2"`
	MADAlertZ        float64 `yaml:"mad_alert_z"      env:"TIMING_MAD_ALERT_Z"      env-default:"3.5"`
	WindowN          int     `yaml:"window_n"         env:"TIMING_WINDOW_N"         env-default:"10"`
	TargetSecDefault float64 `yaml:"target_sec_default" env:"TIMING_TARGET_SEC_DEFAULT" env-default:"45"`

	// SOPGuardTypes is parsed from SOPGuardTypesRaw during validation.
	SOPGuardTypes []domain.ItemKind `yaml:"-" env:"-"`
}

// ExamConfig holds exam-mode settings.
type ExamConfig struct {
	MicroSpacedHoursRaw string  `yaml:"micro_spaced_hours" env:"EXAM_MICRO_SPACED_HOURS" env-default:"0.25,1,4,24"`
	ExamDateRaw         string  `yaml:"exam_date"          env:"EXAM_DATE"`
	NewContentLimit     float64 `yaml:"new_content_limit"  env:"EXAM_NEW_CONTENT_LIMIT"  env-default:"0.1"`

	// MicroSpacedHours is parsed from MicroSpacedHoursRaw during validation.
	MicroSpacedHours []float64 `yaml:"-" env:"-"`
	// ExamDate is parsed from ExamDateRaw (YYYY-MM-DD or RFC 3339) during validation.
	ExamDate *time.Time `yaml:"-" env:"-"`
}

// QueueConfig holds queue-builder gating and mode selection.
type QueueConfig struct {
	LockEarlyReview        bool    `yaml:"lock_early_review"        env:"QUEUE_LOCK_EARLY_REVIEW"        env-default:"false"`
	StudyMode              string  `yaml:"study_mode"               env:"QUEUE_STUDY_MODE"               env-default:"spaced"`
	CriticalStabilityFloor float64 `yaml:"critical_stability_floor" env:"QUEUE_CRITICAL_STABILITY_FLOOR" env-default:"10"`
	DefaultSessionSize     int     `yaml:"default_session_size"     env:"QUEUE_DEFAULT_SESSION_SIZE"     env-default:"20"`
	Timezone               string  `yaml:"timezone"                 env:"QUEUE_TIMEZONE"                 env-default:"UTC"`
}

// Engine converts the loaded configuration into the pure domain type the
// scheduling engine consumes. Validate must have been called first.
func (c *Config) Engine() domain.EngineConfig {
	return domain.EngineConfig{
		SRS: domain.SRSConfig{
			RTarget:          c.SRS.RTarget,
			RNear:            c.SRS.RNear,
			OverdueBoost:     c.SRS.OverdueBoost,
			LowStabilityDays: c.SRS.LowStabilityDays,
			Weights: domain.PriorityWeights{
				IsHot:         c.SRS.Weights.IsHot,
				IsFundamental: c.SRS.Weights.IsFundamental,
				IsCritical:    c.SRS.Weights.IsCritical,
				RecentError:   c.SRS.Weights.RecentError,
				LowS:          c.SRS.Weights.LowS,
			},
		},
		Update: domain.UpdateConfig{
			AlphaHard:         c.SRSV2.AlphaHard,
			AlphaGood:         c.SRSV2.AlphaGood,
			AlphaEasy:         c.SRSV2.AlphaEasy,
			GammaFail:         c.SRSV2.GammaFail,
			RTFast:            c.SRSV2.RTFast,
			RTSlow:            c.SRSV2.RTSlow,
			KRTBonus:          c.SRSV2.KRTBonus,
			KLongGap:          c.SRSV2.KLongGap,
			MinIntervalDays:   c.SRSV2.MinIntervalDays,
			MaxHotDays:        c.SRSV2.MaxHotDays,
			DefaultStability:  c.SRSV2.SDefaultDays,
			CapStabilityDays:  c.SRSV2.CapSDays,
			MasteryGainHard:   c.SRSV2.MasteryGainHard,
			MasteryGainGood:   c.SRSV2.MasteryGainGood,
			MasteryGainEasy:   c.SRSV2.MasteryGainEasy,
			MasteryLoss:       c.SRSV2.MasteryLoss,
			MaxStage:          c.SRSV2.MaxStage,
			WeakStabilityDays: c.SRSV2.WeakStabilityDays,
			WeakMastery:       c.SRSV2.WeakMastery,
		},
		Timing: domain.TimingConfig{
			SOPGuardTypes:    c.Timing.SOPGuardTypes,
			MinThinkSec:      c.Timing.MinThinkSec,
			RushThresholdSec: c.Timing.RushThreshold,
			OverThresholdSec: c.Timing.OverThreshold,
			SOPBandLow:       c.Timing.SOPBandLow,
			SOPBandHigh:      c.Timing.SOPBandHigh,
			LambdaEWMA:       c.Timing.LambdaEWMA,
			MADAlertZ:        c.Timing.MADAlertZ,
			WindowN:          c.Timing.WindowN,
			TargetSecDefault: c.Timing.TargetSecDefault,
		},
		Queue: domain.QueueConfig{
			LockEarlyReview:        c.Queue.LockEarlyReview,
			StudyMode:              domain.StudyMode(c.Queue.StudyMode),
			ExamDate:               c.Exam.ExamDate,
			NewContentLimit:        c.Exam.NewContentLimit,
			CriticalStabilityFloor: c.Queue.CriticalStabilityFloor,
			MicroSpacedHours:       c.Exam.MicroSpacedHours,
			DefaultSessionSize:     c.Queue.DefaultSessionSize,
		},
	}
}
