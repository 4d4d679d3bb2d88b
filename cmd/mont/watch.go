package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sawyer-Powell/mont/internal/display"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Redraw the graph whenever a record changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err := runWatch(ctx); err != nil && ctx.Err() == nil {
			fatal(err)
		}
	},
}

func runWatch(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
		return backoff.Retry(func() error {
			if err := watchDir(ctx, changed); err != nil {
				fmt.Fprintf(os.Stderr, "watch error: %v, retrying\n", err)
				return err
			}
			return nil
		}, policy)
	})

	g.Go(func() error {
		redraw()
		// a short settle window collapses bursts from editors that
		// write temp files then rename
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-changed:
				if timer == nil {
					timer = time.NewTimer(200 * time.Millisecond)
					fire = timer.C
				} else {
					timer.Reset(200 * time.Millisecond)
				}
			case <-fire:
				timer = nil
				fire = nil
				redraw()
			}
		}
	})

	return g.Wait()
}

func watchDir(ctx context.Context, changed chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(taskStore.Dir()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if !strings.HasSuffix(ev.Name, ".md") && !strings.HasSuffix(ev.Name, ".yml") {
				continue
			}
			select {
			case changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return err
		}
	}
}

func redraw() {
	fmt.Print("\033[H\033[2J")
	g, err := taskStore.Graph()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	r := display.Renderer{Graph: g, DefaultGates: taskStore.Config().DefaultGates}
	fmt.Print(r.Render())
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
