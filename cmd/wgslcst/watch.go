package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"wgslcst/internal/driver"
	"wgslcst/internal/observ"
	"wgslcst/internal/trace"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "watch [flags] <file.wgsl>",
		Short:       "Reprint the tree of a WGSL file every time it changes",
		Args:        cobra.ExactArgs(1),
		RunE:        runWatch,
		Annotations: treeOutput,
	}
	cmd.Flags().Duration("debounce", 125*time.Millisecond, "quiet period before reparsing after a change")
	cmd.Flags().Bool("resilient", false, "print the partial tree even when errors occurred")
	cmd.Flags().String("format", "tree", "tree output format (tree|json|yaml)")
	cmd.Flags().Bool("eof", false, "end translation_unit with an <EOF> leaf")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	outFormat, resilient, err := treeFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	watcher, err := newFileWatcher(path)
	if err != nil {
		return err
	}
	defer watcher.Close()

	reparseOnce(cmd, path, opts, outFormat, resilient)
	return debounceEvents(cmd.Context(), watcher, path, interval, func() {
		trace.FromContext(cmd.Context()).WithField("file", path).Debug("change detected")
		reparseOnce(cmd, path, opts, outFormat, resilient)
	})
}

// reparseOnce parses path and prints the result. With --timings each run gets
// a timer of its own, so the summary covers that run alone.
func reparseOnce(cmd *cobra.Command, path string, opts driver.Options, outFormat string, resilient bool) *observ.Timer {
	if opts.Timer != nil {
		opts.Timer = observ.NewTimer()
	}
	ctx := cmd.Context()
	res, err := driver.ParseFile(ctx, nil, path, opts)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		return opts.Timer
	}
	if err := emitResult(cmd, res, outFormat, resilient); err != nil && !errors.Is(err, errFailed) {
		trace.FromContext(ctx).WithError(err).Error("write failed")
	}
	printTimings(cmd, opts.Timer)
	return opts.Timer
}

// newFileWatcher watches the directory holding path, so that editors
// replacing the file by rename are still seen.
func newFileWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return watcher, nil
}

// debounceEvents calls fn once target has seen no Create or Write event for interval.
// It returns nil when ctx ends and an error when the watcher fails.
func debounceEvents(ctx context.Context, watcher *fsnotify.Watcher, target string, interval time.Duration, fn func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watch: %w", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || (!ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(interval)
			} else {
				timer.Reset(interval)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			fn()
		case <-ctx.Done():
			return nil
		}
	}
}
