package app

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/agentstation/ripple"
	"github.com/agentstation/ripple/pkg/memdb"
)

// newWatchCommand creates the watch subcommand.
func (a *App) newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file.yaml>",
		Short: "Watch a YAML document and log realtime change events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVar(&a.config.Path, "path", "/", "location inside the document to watch")
	return cmd
}

func (a *App) runWatch(ctx context.Context, file string) error {
	logger := a.Logger()

	db, err := memdb.New(memdb.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := loadFile(db, file); err != nil {
		return err
	}

	ref := db.Ref(a.config.Path)

	valueListener := ripple.NewValueListener().
		OnDataChange(func(snap ripple.Snapshot) {
			logger.Info().
				Str("path", ref.Path()).
				Interface("value", snap.Value()).
				Msg("value changed")
		}).
		OnCancelled(func(derr ripple.DataError) {
			logger.Warn().
				Int("code", derr.Code()).
				Str("reason", derr.Message()).
				Msg("value subscription cancelled")
		}).
		Build()
	ref.AddValueListener(valueListener)
	defer ref.RemoveValueListener(valueListener)

	childBuilder, err := ripple.NewChildListenerFrom(ripple.Handlers{
		ripple.HandlerChildAdded: func(snap ripple.Snapshot, previousKey string) {
			logger.Info().
				Str("key", snap.Key()).
				Str("previous", previousKey).
				Msg("child added")
		},
		ripple.HandlerChildChanged: func(snap ripple.Snapshot, previousKey string) {
			logger.Info().
				Str("key", snap.Key()).
				Interface("value", snap.Value()).
				Msg("child changed")
		},
		ripple.HandlerChildRemoved: func(snap ripple.Snapshot) {
			logger.Info().
				Str("key", snap.Key()).
				Msg("child removed")
		},
		ripple.HandlerCancelled: func(derr ripple.DataError) {
			logger.Warn().
				Int("code", derr.Code()).
				Str("reason", derr.Message()).
				Msg("child subscription cancelled")
		},
	})
	if err != nil {
		return err
	}
	childListener := ref.AddChildListener(childBuilder.Build())
	defer ref.RemoveChildListener(childListener)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("watching %s: %w", file, err)
	}

	logger.Info().Str("file", file).Str("path", ref.Path()).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := loadFile(db, file); err != nil {
				// Editors often write partial files; keep watching.
				logger.Error().Err(err).Msg("reloading document")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("file watcher error")
		}
	}
}

// loadFile reads a YAML document from disk into the database root.
func loadFile(db *memdb.DB, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	if err := db.LoadYAML(data); err != nil {
		return fmt.Errorf("loading %s: %w", file, err)
	}
	return nil
}
