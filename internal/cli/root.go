package cli

import (
	"context"
	"fmt"

	"go-inventory-tracker/internal/bootstrap"

	"github.com/spf13/cobra"
)

// Opener connects to the configured stores. Tests inject a sqlite-backed runtime.
type Opener func(ctx context.Context) (*bootstrap.Runtime, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
	open   Opener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the inventory admin CLI.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "inventory-admin",
		Short: "Maintenance commands for the inventory tracker",
		Long:  "Operates directly on the configured stores. Destructive commands require --yes.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewPurgeTransactionsCommand(opts))
	cmd.AddCommand(NewResetPasswordCommand(opts))
	cmd.AddCommand(NewArchiveAllCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// withRuntime opens the stores for the duration of fn
func withRuntime(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, rt *bootstrap.Runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := opts.open(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open stores", err)
	}
	defer rt.Close(context.Background())

	return fn(ctx, rt)
}
