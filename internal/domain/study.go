package domain

import (
	"time"
)

// PriorityWeights are additive importance weights for both priority scores.
type PriorityWeights struct {
	IsHot         float64
	IsFundamental float64
	IsCritical    float64
	RecentError   float64
	LowS          float64
}

// SRSConfig holds retrievability thresholds and priority composition
// (pure domain type).
type SRSConfig struct {
	RTarget          float64
	RNear            float64
	Weights          PriorityWeights
	OverdueBoost     float64
	LowStabilityDays float64
}

// UpdateConfig holds the stability/mastery update rule parameters.
type UpdateConfig struct {
	AlphaHard float64
	AlphaGood float64
	AlphaEasy float64
	GammaFail float64

	RTFast   float64
	RTSlow   float64
	KRTBonus float64
	KLongGap float64

	MinIntervalDays  float64
	MaxHotDays       float64
	DefaultStability float64
	CapStabilityDays float64

	MasteryGainHard float64
	MasteryGainGood float64
	MasteryGainEasy float64
	MasteryLoss     float64
	MaxStage        int

	WeakStabilityDays float64
	WeakMastery       float64
}

// TimingConfig holds the timing classifier parameters.
type TimingConfig struct {
	SOPGuardTypes    []ItemKind
	MinThinkSec      float64
	RushThresholdSec float64
	OverThresholdSec float64
	SOPBandLow       float64
	SOPBandHigh      float64
	LambdaEWMA       float64
	MADAlertZ        float64
	WindowN          int
	TargetSecDefault float64
}

// QueueConfig holds queue-builder gating and mode selection.
type QueueConfig struct {
	LockEarlyReview        bool
	StudyMode              StudyMode
	ExamDate               *time.Time
	NewContentLimit        float64
	CriticalStabilityFloor float64
	MicroSpacedHours       []float64
	DefaultSessionSize     int
}

// EngineConfig is the complete configuration consumed by the engine.
type EngineConfig struct {
	SRS    SRSConfig
	Update UpdateConfig
	Timing TimingConfig
	Queue  QueueConfig
}

// CalculatedItemMetrics wraps an item with values derived at query time.
// It is never persisted.
type CalculatedItemMetrics struct {
	Item           StudyItem
	DT             float64
	RNow           float64
	D              float64
	PrioritySpaced float64
	PriorityExam   float64
	RProj          float64
	DueReason      DueReason
}

// SessionKPIs summarises a built queue.
type SessionKPIs struct {
	Total         int
	DueCount      int
	NewCount      int
	CriticalCount int
	MeanDomain    float64
	MedianDomain  float64
	MeanPriority  float64
	PercentNew    float64
}

// StageCounts holds the number of items per SRS stage.
type StageCounts map[int]int

// Dashboard holds aggregated study statistics over an item collection.
type Dashboard struct {
	Total         int
	DueCount      int
	NewCount      int
	OverdueCount  int
	// DueTodayCount counts reviewed items due before the learner's next day
	// starts, including those already due.
	DueTodayCount int
	ReviewedToday int
	Streak        int
	StageCounts   StageCounts
	MeanDomain    float64
}

// DayReviewCount holds the review count for a specific date.
type DayReviewCount struct {
	Date  time.Time
	Count int
}

// EvalCounts holds per-self-evaluation counters.
type EvalCounts struct {
	Again int
	Hard  int
	Good  int
	Easy  int
}

// TimingCounts holds per-timing-class counters.
type TimingCounts struct {
	Rush  int
	SOPOK int
	Over  int
}

// ItemStats holds statistics for a single item.
type ItemStats struct {
	TotalAttempts     int
	AccuracyRate      float64
	AverageElapsedSec *float64
	Stability         float64
	MasteryScore      float64
	Lapses            int
	EvalDistribution  EvalCounts
	TimingBreakdown   TimingCounts
}
