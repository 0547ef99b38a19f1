package cli

import (
	"context"
	"fmt"
	"strings"

	"go-inventory-tracker/internal/bootstrap"
	"go-inventory-tracker/internal/stats"

	"github.com/spf13/cobra"
)

// NewStatsCommand prints the dashboard overview.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print inventory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *bootstrap.Runtime) error {
				dash, err := rt.Dashboard.GetDashboard(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to compute statistics", err)
				}
				return emit(cmd.OutOrStdout(), rootOpts.Format, dash, formatDashboard(dash))
			})
		},
	}
}

func formatDashboard(d *stats.Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Products:     %d\n", d.TotalProducts)
	fmt.Fprintf(&b, "Total stock:  %d\n", d.TotalStock)
	fmt.Fprintf(&b, "Transactions: %d\n", d.TotalTransactions)
	fmt.Fprintf(&b, "In stock:     %d (%d%%)\n", d.StockStatus.InStock, d.StockStatus.InStockPercentage)
	fmt.Fprintf(&b, "Low stock:    %d (%d%%)\n", d.StockStatus.LowStock, d.StockStatus.LowStockPercentage)
	fmt.Fprintf(&b, "Out of stock: %d (%d%%)", d.StockStatus.OutOfStock, d.StockStatus.OutOfStockPercentage)
	for _, c := range d.Categories {
		fmt.Fprintf(&b, "\n  %-20s %d (%d%%)", c.Category, c.Count, c.Percentage)
	}
	return b.String()
}
