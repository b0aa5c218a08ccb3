package cmd

import (
	"context"
	"errors"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/votxt/internal/processor"
	"github.com/nguyentantai21042004/votxt/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process audio files dropped into the inbox folder",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	log := a.log

	handler := func(ctx context.Context, path string) error {
		res, err := a.proc.Process(ctx, path)
		if err != nil {
			return err
		}
		if res.TooShort {
			log.Info(ctx, "%s: %s", path, processor.TooShortMessage)
		}
		log.Info(ctx, "Results for %s in %s", path, res.Dir)
		return nil
	}

	w, err := watcher.New(a.cfg.Paths.Inbox, handler, log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "System: %s/%s, %d CPUs", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Inbox: %s", a.cfg.Paths.Inbox)
	log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info(ctx, "Shutting down")
	return nil
}
