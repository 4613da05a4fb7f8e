package app

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/agentstation/ripple"
	"github.com/agentstation/ripple/pkg/logging"
	"github.com/agentstation/ripple/pkg/memdb"
)

// newGetCommand creates the get subcommand.
func (a *App) newGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file.yaml>",
		Short: "Read the value at a location once and print it as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&a.config.Path, "path", "/", "location inside the document to read")
	cmd.Flags().DurationVar(&a.config.Timeout, "timeout", 5*time.Second, "maximum time to wait for the read")
	return cmd
}

func (a *App) runGet(cmd *cobra.Command, file string) error {
	db, err := memdb.New(memdb.WithLogger(logging.NewNopLogger()))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := loadFile(db, file); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.config.Timeout)
	defer cancel()

	value, err := ripple.ReadValue(db.Ref(a.config.Path)).Wait(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", a.config.Path, err)
	}

	out, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
