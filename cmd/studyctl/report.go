package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study"
)

func newMetricsCmd(root *rootOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show retrievability, domain and priorities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, a, err := root.bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			items := a.Items()
			if id != "" {
				itemID, err := uuid.Parse(id)
				if err != nil {
					return fmt.Errorf("invalid --id %q: %w", id, err)
				}
				item, _, err := a.Find(itemID)
				if err != nil {
					return err
				}
				items = []domain.StudyItem{item}
			}

			metrics := make([]domain.CalculatedItemMetrics, 0, len(items))
			for _, item := range items {
				metrics = append(metrics, a.Study.CalculateMetrics(item))
			}

			return printMetrics(cmd.OutOrStdout(), metrics, root.jsonOut)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "only this item")
	return cmd
}

func newDashboardCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregated study statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, a, err := root.bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			dash := a.Study.Dashboard(ctx, a.Items(), a.Location)
			return printDashboard(cmd.OutOrStdout(), dash, root.jsonOut)
		},
	}
}

func newStatsCmd(root *rootOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the attempt statistics of one item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			itemID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid --id %q: %w", id, err)
			}

			_, a, err := root.bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			item, _, err := a.Find(itemID)
			if err != nil {
				return err
			}

			return printItemStats(cmd.OutOrStdout(), study.ItemStats(item), root.jsonOut)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "item id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
