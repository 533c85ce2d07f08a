package rest

import (
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study"
)

// MetricsView is the wire form of one metrics entry.
type MetricsView struct {
	ID             string  `json:"id"`
	Kind           string  `json:"kind"`
	Subject        string  `json:"subject"`
	Reason         string  `json:"reason,omitempty"`
	ElapsedDays    float64 `json:"elapsed_days"`
	R              float64 `json:"r"`
	D              float64 `json:"d"`
	PrioritySpaced float64 `json:"priority_spaced"`
	PriorityExam   float64 `json:"priority_exam"`
	RProj          float64 `json:"r_proj"`
}

func NewMetricsView(m domain.CalculatedItemMetrics) MetricsView {
	return MetricsView{
		ID:             m.Item.ItemID().String(),
		Kind:           m.Item.Kind().String(),
		Subject:        m.Item.Meta().Subject,
		Reason:         m.DueReason.String(),
		ElapsedDays:    m.DT,
		R:              m.RNow,
		D:              m.D,
		PrioritySpaced: m.PrioritySpaced,
		PriorityExam:   m.PriorityExam,
		RProj:          m.RProj,
	}
}

// KPIView is the wire form of domain.SessionKPIs.
type KPIView struct {
	Total         int     `json:"total"`
	DueCount      int     `json:"due_count"`
	NewCount      int     `json:"new_count"`
	CriticalCount int     `json:"critical_count"`
	MeanDomain    float64 `json:"mean_domain"`
	MedianDomain  float64 `json:"median_domain"`
	MeanPriority  float64 `json:"mean_priority"`
	PercentNew    float64 `json:"percent_new"`
}

// QueueView is the wire form of a built queue.
type QueueView struct {
	Queue []MetricsView `json:"queue"`
	KPIs  KPIView       `json:"kpis"`
}

func NewQueueView(res study.QueueResult) QueueView {
	v := QueueView{Queue: make([]MetricsView, 0, len(res.Queue))}
	for _, m := range res.Queue {
		v.Queue = append(v.Queue, NewMetricsView(m))
	}
	k := res.KPIs
	v.KPIs = KPIView{
		Total:         k.Total,
		DueCount:      k.DueCount,
		NewCount:      k.NewCount,
		CriticalCount: k.CriticalCount,
		MeanDomain:    k.MeanDomain,
		MedianDomain:  k.MedianDomain,
		MeanPriority:  k.MeanPriority,
		PercentNew:    k.PercentNew,
	}
	return v
}

// ReviewView is the wire form of a recorded attempt.
type ReviewView struct {
	ID            string      `json:"id"`
	Timing        string      `json:"timing"`
	Stability     float64     `json:"stability"`
	MasteryScore  float64     `json:"mastery_score"`
	IntervalDays  float64     `json:"interval_days"`
	NextReview    time.Time   `json:"next_review"`
	MicroSchedule []time.Time `json:"micro_schedule,omitempty"`
	Stage         int         `json:"stage"`
	Streak        int         `json:"streak"`
	Lapses        int         `json:"lapses"`
	Saved         bool        `json:"saved"`
}

func NewReviewView(r study.ReviewResult, saved bool) ReviewView {
	st := r.Item.SRS()
	return ReviewView{
		ID:            r.Item.ItemID().String(),
		Timing:        r.Timing.String(),
		Stability:     st.Stability,
		MasteryScore:  st.MasteryScore,
		IntervalDays:  r.Patch.IntervalDays,
		NextReview:    r.NextReview,
		MicroSchedule: r.Patch.MicroSchedule,
		Stage:         st.SRSStage,
		Streak:        st.CorrectStreak,
		Lapses:        st.Lapses,
		Saved:         saved,
	}
}

// DashboardView is the wire form of domain.Dashboard.
type DashboardView struct {
	Total         int         `json:"total"`
	DueCount      int         `json:"due_count"`
	NewCount      int         `json:"new_count"`
	OverdueCount  int         `json:"overdue_count"`
	DueTodayCount int         `json:"due_today_count"`
	ReviewedToday int         `json:"reviewed_today"`
	Streak        int         `json:"streak"`
	MeanDomain    float64     `json:"mean_domain"`
	StageCounts   map[int]int `json:"stage_counts"`
}

func NewDashboardView(d domain.Dashboard) DashboardView {
	return DashboardView{
		Total:         d.Total,
		DueCount:      d.DueCount,
		NewCount:      d.NewCount,
		OverdueCount:  d.OverdueCount,
		DueTodayCount: d.DueTodayCount,
		ReviewedToday: d.ReviewedToday,
		Streak:        d.Streak,
		MeanDomain:    d.MeanDomain,
		StageCounts:   d.StageCounts,
	}
}

// ItemStatsView is the wire form of domain.ItemStats.
type ItemStatsView struct {
	TotalAttempts     int            `json:"total_attempts"`
	AccuracyRate      float64        `json:"accuracy_rate"`
	AverageElapsedSec *float64       `json:"average_elapsed_sec,omitempty"`
	Stability         float64        `json:"stability"`
	MasteryScore      float64        `json:"mastery_score"`
	Lapses            int            `json:"lapses"`
	EvalDistribution  map[string]int `json:"eval_distribution"`
	TimingBreakdown   map[string]int `json:"timing_breakdown"`
}

func NewItemStatsView(s domain.ItemStats) ItemStatsView {
	e, t := s.EvalDistribution, s.TimingBreakdown
	return ItemStatsView{
		TotalAttempts:     s.TotalAttempts,
		AccuracyRate:      s.AccuracyRate,
		AverageElapsedSec: s.AverageElapsedSec,
		Stability:         s.Stability,
		MasteryScore:      s.MasteryScore,
		Lapses:            s.Lapses,
		EvalDistribution: map[string]int{
			domain.SelfEvalAgain.String(): e.Again,
			domain.SelfEvalHard.String():  e.Hard,
			domain.SelfEvalGood.String():  e.Good,
			domain.SelfEvalEasy.String():  e.Easy,
		},
		TimingBreakdown: map[string]int{
			domain.TimingRush.String():  t.Rush,
			domain.TimingSOPOK.String(): t.SOPOK,
			domain.TimingOver.String():  t.Over,
		},
	}
}
