package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study"
)

type reviewOptions struct {
	id      string
	correct bool
	eval    string
	elapsed float64
	dryRun  bool
}

func newReviewCmd(root *rootOptions) *cobra.Command {
	opts := &reviewOptions{}

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Record one attempt and reschedule the item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(opts.id)
			if err != nil {
				return fmt.Errorf("invalid --id %q: %w", opts.id, err)
			}
			eval, ok := domain.ParseSelfEval(opts.eval)
			if !ok {
				return fmt.Errorf("invalid --eval %q: want again, hard, good, easy or 0-3", opts.eval)
			}

			ctx, a, err := root.bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			item, _, err := a.Find(id)
			if err != nil {
				return err
			}

			result, err := a.Study.ReviewItem(ctx, study.ReviewItemInput{
				Item:       item,
				Correct:    opts.correct,
				SelfEval:   eval,
				ElapsedSec: opts.elapsed,
			})
			if err != nil {
				return fmt.Errorf("review item: %w", err)
			}

			if !opts.dryRun {
				if err := a.Commit(ctx, result); err != nil {
					return fmt.Errorf("save review: %w", err)
				}
			}

			return printReview(cmd.OutOrStdout(), result, !opts.dryRun, root.jsonOut)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.id, "id", "", "item id")
	f.BoolVar(&opts.correct, "correct", false, "the answer was correct")
	f.StringVar(&opts.eval, "eval", "good", "self evaluation: again, hard, good, easy")
	f.Float64Var(&opts.elapsed, "elapsed", 0, "response time in seconds")
	f.BoolVar(&opts.dryRun, "dry-run", false, "compute the new state without writing the deck")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
