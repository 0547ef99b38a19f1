package cli

import (
	"context"
	"fmt"

	"go-inventory-tracker/internal/bootstrap"
	"go-inventory-tracker/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type PurgeOptions struct {
	*RootOptions
	ID  string
	Yes bool
}

type PurgeResult struct {
	Deleted int64 `json:"deleted"`
}

// NewPurgeTransactionsCommand creates the purge-transactions command.
func NewPurgeTransactionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PurgeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "purge-transactions",
		Short: "Permanently delete transaction log entries",
		Long: `Delete one transaction (--id) or the whole log. Product stock levels are not touched.

Examples:
  inventory-admin purge-transactions --id 3f0c... --yes
  inventory-admin purge-transactions --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "purge a single transaction")
	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm the irreversible purge")

	return cmd
}

func runPurge(cmd *cobra.Command, opts *PurgeOptions) error {
	var id uuid.UUID
	if opts.ID != "" {
		parsed, err := uuid.Parse(opts.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --id", err)
		}
		id = parsed
	}
	if !opts.Yes {
		return NewExitError(ExitFailure, "refusing to purge without --yes")
	}

	return withRuntime(cmd, opts.RootOptions, func(ctx context.Context, rt *bootstrap.Runtime) error {
		var result PurgeResult
		if id != uuid.Nil {
			if err := rt.Inventory.PurgeTransaction(ctx, id, service.SystemActor); err != nil {
				return WrapExitError(ExitFailure, "purge failed", err)
			}
			result.Deleted = 1
		} else {
			n, err := rt.Inventory.PurgeAllTransactions(ctx, service.SystemActor)
			if err != nil {
				return WrapExitError(ExitFailure, "purge failed", err)
			}
			result.Deleted = n
		}
		return emit(cmd.OutOrStdout(), opts.Format, result, fmt.Sprintf("Deleted %d transaction(s).", result.Deleted))
	})
}
