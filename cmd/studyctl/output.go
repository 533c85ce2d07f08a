package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/transport/rest"
)

// JSON output shares its wire form with the HTTP API.

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRows(w io.Writer, rows []rest.MetricsView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tKIND\tSUBJECT\tREASON\tR\tD\tP_SPACED\tP_EXAM")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.3f\t%.1f\t%.2f\t%.2f\n",
			i+1, r.ID, r.Kind, r.Subject, r.Reason, r.R, r.D, r.PrioritySpaced, r.PriorityExam)
	}
	return tw.Flush()
}

func printQueue(w io.Writer, result study.QueueResult, asJSON bool) error {
	view := rest.NewQueueView(result)
	if asJSON {
		return writeJSON(w, view)
	}

	if err := printRows(w, view.Queue); err != nil {
		return err
	}
	k := view.KPIs
	_, err := fmt.Fprintf(w, "\ntotal=%d due=%d new=%d critical=%d mean_d=%.1f median_d=%.1f mean_priority=%.2f new=%.0f%%\n",
		k.Total, k.DueCount, k.NewCount, k.CriticalCount, k.MeanDomain, k.MedianDomain, k.MeanPriority, k.PercentNew)
	return err
}

func printMetrics(w io.Writer, metrics []domain.CalculatedItemMetrics, asJSON bool) error {
	rows := make([]rest.MetricsView, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, rest.NewMetricsView(m))
	}
	if asJSON {
		return writeJSON(w, rows)
	}
	return printRows(w, rows)
}

func printReview(w io.Writer, r study.ReviewResult, saved, asJSON bool) error {
	v := rest.NewReviewView(r, saved)
	if asJSON {
		return writeJSON(w, v)
	}

	_, err := fmt.Fprintf(w, "%s timing=%s S=%.2fd m=%.1f interval=%.2fd next=%s stage=%d streak=%d saved=%t\n",
		v.ID, v.Timing, v.Stability, v.MasteryScore, v.IntervalDays,
		v.NextReview.Format(time.RFC3339), v.Stage, v.Streak, v.Saved)
	return err
}

func printDashboard(w io.Writer, d domain.Dashboard, asJSON bool) error {
	if asJSON {
		return writeJSON(w, rest.NewDashboardView(d))
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "total\t%d\n", d.Total)
	fmt.Fprintf(tw, "due\t%d\n", d.DueCount)
	fmt.Fprintf(tw, "overdue\t%d\n", d.OverdueCount)
	fmt.Fprintf(tw, "due today\t%d\n", d.DueTodayCount)
	fmt.Fprintf(tw, "new\t%d\n", d.NewCount)
	fmt.Fprintf(tw, "reviewed today\t%d\n", d.ReviewedToday)
	fmt.Fprintf(tw, "streak\t%d\n", d.Streak)
	fmt.Fprintf(tw, "mean domain\t%.1f\n", d.MeanDomain)
	for stage := 0; stage <= maxStage(d.StageCounts); stage++ {
		if n, ok := d.StageCounts[stage]; ok {
			fmt.Fprintf(tw, "stage %d\t%d\n", stage, n)
		}
	}
	return tw.Flush()
}

func maxStage(counts domain.StageCounts) int {
	m := 0
	for stage := range counts {
		m = max(m, stage)
	}
	return m
}

func printItemStats(w io.Writer, s domain.ItemStats, asJSON bool) error {
	if asJSON {
		return writeJSON(w, rest.NewItemStatsView(s))
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "attempts\t%d\n", s.TotalAttempts)
	fmt.Fprintf(tw, "accuracy\t%.1f%%\n", s.AccuracyRate)
	if s.AverageElapsedSec != nil {
		fmt.Fprintf(tw, "avg elapsed\t%.1fs\n", *s.AverageElapsedSec)
	}
	fmt.Fprintf(tw, "stability\t%.2fd\n", s.Stability)
	fmt.Fprintf(tw, "mastery\t%.1f\n", s.MasteryScore)
	fmt.Fprintf(tw, "lapses\t%d\n", s.Lapses)
	e := s.EvalDistribution
	fmt.Fprintf(tw, "again/hard/good/easy\t%d/%d/%d/%d\n", e.Again, e.Hard, e.Good, e.Easy)
	t := s.TimingBreakdown
	fmt.Fprintf(tw, "rush/ok/over\t%d/%d/%d\n", t.Rush, t.SOPOK, t.Over)
	return tw.Flush()
}
