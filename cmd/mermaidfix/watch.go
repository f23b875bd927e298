package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/julianshen/mermaidfix/internal/watcher"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Repair diagrams in place whenever watched files change",
		Long: `Watch the given files and directories and rewrite the mermaid blocks of
every created or modified file. Files already in repaired form are not
touched, so the command's own writes do not trigger further rewrites.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			w, err := watcher.New(a.cfg.Watch.Extensions, a.log)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.Add(args...); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.log.Info("watching for changes", zap.Strings("paths", args))
			runWatch(ctx, a, w.Watch(ctx), cmd.OutOrStdout())
			return nil
		},
	}
	return cmd
}

// runWatch rewrites files as events arrive until the channel closes or ctx
// is done.
func runWatch(ctx context.Context, a *app, events <-chan watcher.Event, out io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Op == watcher.Removed {
				continue
			}
			changed, err := a.runner.RewriteFile(ev.Path)
			if err != nil {
				a.log.Warn("watch repair failed", zap.String("source", ev.Path), zap.Error(err))
				continue
			}
			if changed {
				fmt.Fprintf(out, "fixed %s\n", ev.Path)
			}
		}
	}
}
