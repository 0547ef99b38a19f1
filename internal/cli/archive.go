package cli

import (
	"context"
	"fmt"

	"go-inventory-tracker/internal/bootstrap"
	"go-inventory-tracker/internal/service"

	"github.com/spf13/cobra"
)

type ArchiveAllOptions struct {
	*RootOptions
	Yes bool
}

// NewArchiveAllCommand archives every active product in one unit of work.
func NewArchiveAllCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArchiveAllOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "archive-all",
		Short: "Archive every active product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes {
				return NewExitError(ExitFailure, "refusing to archive without --yes")
			}
			return withRuntime(cmd, opts.RootOptions, func(ctx context.Context, rt *bootstrap.Runtime) error {
				n, err := rt.Inventory.ArchiveAllProducts(ctx, service.SystemActor)
				if err != nil {
					return WrapExitError(ExitFailure, "archive failed", err)
				}
				return emit(cmd.OutOrStdout(), opts.Format,
					map[string]int{"archived": n},
					fmt.Sprintf("Archived %d product(s).", n))
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm archiving the whole catalog")

	return cmd
}
