package commands

import (
	"context"
	"io"
	"log"

	"tasksync/internal/config"
	"tasksync/internal/output"
	"tasksync/internal/service"
	"tasksync/internal/tasksync"
)

// newSyncClient builds the sync client used by every backend command.
// Warnings go to errOut.
func newSyncClient(cfg *config.Config, svc service.Service, view tasksync.View, errOut io.Writer) *tasksync.Client {
	policy, err := tasksync.ParseErrorPolicy(cfg.ErrorPolicy)
	if err != nil {
		policy = tasksync.PolicyLog
	}
	return tasksync.New(svc, view,
		tasksync.WithPolicy(policy),
		tasksync.WithLogger(log.New(errOut, "", 0)),
	)
}

// listView returns the view mutating commands print the reloaded list to.
// Quiet mode prints nothing.
func listView(cfg *config.Config, out io.Writer) tasksync.View {
	if cfg.Quiet {
		return tasksync.ViewFunc(func([]tasksync.Entry) {})
	}
	return output.NewTextView(out, output.WithStrike(cfg.Color))
}

// withCommandTimeout bounds a whole command: mutation plus reload.
func withCommandTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.CommandTimeout)
}
