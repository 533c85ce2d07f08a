package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/app"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/pkg/ctxutil"
)

type rootOptions struct {
	configPath string
	decks      []string
	requestID  string
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "studyctl",
		Short:         "Adaptive review scheduling over YAML decks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config YAML (default: $CONFIG_PATH or ./config.yaml)")
	flags.StringSliceVar(&opts.decks, "deck", nil, "deck file; repeat or comma-separate for several")
	flags.StringVar(&opts.requestID, "request-id", "", "request id attached to every log line")
	flags.BoolVar(&opts.jsonOut, "json", false, "print results as JSON")

	cmd.AddCommand(
		newQueueCmd(opts),
		newReviewCmd(opts),
		newMetricsCmd(opts),
		newDashboardCmd(opts),
		newStatsCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// bootstrap loads config and decks for a command that needs them.
func (o *rootOptions) bootstrap(ctx context.Context) (context.Context, *app.App, error) {
	if len(o.decks) == 0 {
		return ctx, nil, fmt.Errorf("at least one --deck is required")
	}
	if o.requestID != "" {
		ctx = ctxutil.WithRequestID(ctx, o.requestID)
	}
	return app.New(ctx, o.configPath, o.decks)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
