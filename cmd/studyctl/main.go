// Command studyctl drives the review scheduling engine over YAML decks.
//
// Usage:
//
//	studyctl queue     --deck law.yaml --mode standard --size 20
//	studyctl review    --deck law.yaml --id <uuid> --correct --eval good --elapsed 42
//	studyctl metrics   --deck law.yaml [--id <uuid>]
//	studyctl dashboard --deck law.yaml
//	studyctl stats     --deck law.yaml --id <uuid>
//	studyctl serve     --deck law.yaml [--addr :8080]
//
// Configuration is read from --config (or CONFIG_PATH) and the environment.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
