package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/service/study"
)

type queueOptions struct {
	mode       string
	size       int
	seed       uint64
	allowEarly bool
	kinds      []string
	filter     domain.QueueFilter
}

func newQueueCmd(root *rootOptions) *cobra.Command {
	opts := &queueOptions{}

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Build a study session queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, a, err := root.bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			filter := opts.filter
			for _, k := range opts.kinds {
				filter.Kinds = append(filter.Kinds, domain.ItemKind(k))
			}

			result, err := a.Study.BuildStudyQueue(ctx, study.BuildQueueInput{
				Mode:        domain.QueueMode(opts.mode),
				Items:       a.Items(),
				Filter:      filter,
				SessionSize: opts.size,
				AllowEarly:  opts.allowEarly,
				Seed:        opts.seed,
			})
			if err != nil {
				return fmt.Errorf("build queue: %w", err)
			}

			return printQueue(cmd.OutOrStdout(), result, root.jsonOut)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", string(domain.QueueModeStandard), "queue mode: standard, exam or critical")
	f.IntVar(&opts.size, "size", 0, "session size (0 = configured default)")
	f.Uint64Var(&opts.seed, "seed", 1, "seed for the order of new items")
	f.BoolVar(&opts.allowEarly, "allow-early", false, "include items not yet due when early review is locked")
	f.StringSliceVar(&opts.filter.Subjects, "subject", nil, "only these subjects")
	f.StringSliceVar(&opts.filter.Topics, "topic", nil, "only these topics")
	f.StringSliceVar(&opts.filter.Banks, "bank", nil, "only these banks")
	f.StringSliceVar(&opts.filter.Areas, "area", nil, "only these areas")
	f.StringSliceVar(&opts.filter.Tags, "tag", nil, "only items carrying any of these tags")
	f.StringSliceVar(&opts.kinds, "kind", nil, "only these item kinds: question, flashcard")
	f.BoolVar(&opts.filter.OnlyHot, "only-hot", false, "only hot topics")
	f.BoolVar(&opts.filter.OnlyCritical, "only-critical", false, "only items flagged critical")
	f.BoolVar(&opts.filter.OnlyFundamental, "only-fundamental", false, "only fundamental items")
	f.BoolVar(&opts.filter.OnlyFavorites, "only-favorites", false, "only favorites")
	f.BoolVar(&opts.filter.OnlyStrict, "only-strict", false, "only multiple-choice questions with a valid answer")
	f.BoolVar(&opts.filter.OnlyStudyLater, "only-study-later", false, "only items marked for later")

	return cmd
}
