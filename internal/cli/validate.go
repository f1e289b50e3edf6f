package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"toolchain-fixtures/internal/app"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the application registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd)
		},
	}
}

func runValidate(ctx context.Context, cmd *cobra.Command) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{Registry: registryRequest()})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "validated: %s (latest %s, %d versions)\n", result.Name, result.LatestVersion, len(result.Versions))
	return nil
}
