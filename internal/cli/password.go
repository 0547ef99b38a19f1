package cli

import (
	"context"
	"fmt"

	"go-inventory-tracker/internal/bootstrap"

	"github.com/spf13/cobra"
)

type ResetPasswordOptions struct {
	*RootOptions
	Email    string
	Password string
}

// NewResetPasswordCommand sets a user's password without the old one and revokes their session.
func NewResetPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetPasswordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts.RootOptions, func(ctx context.Context, rt *bootstrap.Runtime) error {
				if err := rt.Auth.SetPassword(ctx, opts.Email, opts.Password); err != nil {
					return WrapExitError(ExitFailure, "reset failed", err)
				}
				return emit(cmd.OutOrStdout(), opts.Format,
					map[string]string{"email": opts.Email, "status": "updated"},
					fmt.Sprintf("Password for %s has been reset.", opts.Email))
			})
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "new password, at least 8 characters (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
