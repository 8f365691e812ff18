package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func (a *app) watchCmd() *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "watch -f model.yaml [-a algorithm]",
		Short: "Re-solve a model every time its file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o = a.resolve(o)

			return watchFile(cmd.Context(), o.file, a.logger, func() error {
				f, err := loadModel(o.file)
				if err != nil {
					return err
				}
				_, err = a.solveOnce(cmd.Context(), f, o)

				return err
			})
		},
	}
	o.bind(cmd, true)

	return cmd
}

// watchFile calls run once, then again after every write to path, until ctx
// is done. Errors from run are logged and do not stop the watch. The parent
// directory is watched so editors that replace the file are followed.
func watchFile(ctx context.Context, path string, logger *slog.Logger, run func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err = w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	solve := func() {
		if err := run(); err != nil {
			logger.Warn("solve failed", slog.String("file", abs), slog.String("error", err.Error()))
		}
	}
	solve()
	logger.Debug("watching model", slog.String("file", abs))

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("model changed", slog.String("file", abs), slog.String("op", ev.Op.String()))
			solve()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.String("error", err.Error()))
		case <-ctx.Done():
			return nil
		}
	}
}
