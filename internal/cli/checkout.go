package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-fixtures/internal/adapters"
	"toolchain-fixtures/internal/app"
	"toolchain-fixtures/internal/shared"
)

type checkoutOptions struct {
	Root        string
	Manifest    string
	Jobs        int
	RepoBinary  string
	ManifestURL string
}

func newCheckoutCommand() *cobra.Command {
	opts := checkoutOptions{}
	cmd := &cobra.Command{
		Use:   "checkout-aosp",
		Short: "Checkout the AOSP source tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckout(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Root, "aosp-root", "", "Checkout directory (defaults to <repo-root>/build/aosp)")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest to use for the checkout (defaults to <repo-root>/third_party/aosp_manifest.xml)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", shared.DefaultJobs(), "Projects to fetch simultaneously")
	cmd.Flags().StringVar(&opts.RepoBinary, "repo-binary", "repo", "Path of the repo tool")
	cmd.Flags().StringVar(&opts.ManifestURL, "manifest-url", adapters.DefaultPlatformManifestURL, "Manifest repository URL")
	_ = viper.BindPFlag("aosp_root", cmd.Flags().Lookup("aosp-root"))
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("jobs", cmd.Flags().Lookup("jobs"))
	_ = viper.BindPFlag("repo_binary", cmd.Flags().Lookup("repo-binary"))
	_ = viper.BindPFlag("manifest_url", cmd.Flags().Lookup("manifest-url"))
	return cmd
}

func runCheckout(ctx context.Context, cmd *cobra.Command, opts checkoutOptions) error {
	service := newAppService()
	result, err := service.Checkout(ctx, app.CheckoutRequest{
		RepoRoot:    viper.GetString("repo_root"),
		Root:        resolveString(cmd, opts.Root, "aosp_root", "aosp-root"),
		Manifest:    resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Jobs:        resolveInt(cmd, opts.Jobs, "jobs", "jobs"),
		RepoBinary:  resolveString(cmd, opts.RepoBinary, "repo_binary", "repo-binary"),
		ManifestURL: resolveString(cmd, opts.ManifestURL, "manifest_url", "manifest-url"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "checked out %s (manifest %s, %d jobs)\n", result.Root, result.Manifest, result.Jobs)
	return nil
}
