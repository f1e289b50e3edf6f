package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-fixtures/internal/app"
)

type exportOptions struct {
	Output string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the application registry as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "-", "Output path (- for stdout)")
	_ = viper.BindPFlag("export_output", cmd.Flags().Lookup("output"))
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, opts exportOptions) error {
	service := newAppService()
	output := resolveString(cmd, opts.Output, "export_output", "output")
	result, err := service.Export(ctx, app.ExportRequest{
		Registry: registryRequest(),
		Output:   output,
		Out:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if output != "" && output != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s: %s\n", result.Name, result.Output)
	}
	return nil
}
