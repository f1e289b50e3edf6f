package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-fixtures/internal/adapters"
	"toolchain-fixtures/internal/app"
	"toolchain-fixtures/internal/types"
)

type configOptions struct {
	Release   string
	Variant   string
	OutputDir string
}

func newConfigCommand() *cobra.Command {
	opts := configOptions{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the build configuration of a version and variant as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Release, "release", "", "Application version (defaults to the latest)")
	cmd.Flags().StringVar(&opts.Variant, "variant", string(types.BuildVariantDeploy), "Build variant")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Base directory to derive the namespaced output directory from")
	_ = viper.BindPFlag("config_release", cmd.Flags().Lookup("release"))
	_ = viper.BindPFlag("config_variant", cmd.Flags().Lookup("variant"))
	_ = viper.BindPFlag("output_dir", cmd.Flags().Lookup("output-dir"))
	return cmd
}

type configOutput struct {
	Name          string                   `yaml:"name"`
	Version       types.VersionKey         `yaml:"version"`
	Variant       types.BuildVariant       `yaml:"variant"`
	OutputDir     string                   `yaml:"output_dir,omitempty"`
	Configuration types.BuildConfiguration `yaml:"configuration"`
}

func runConfig(ctx context.Context, cmd *cobra.Command, opts configOptions) error {
	service := newAppService()
	result, err := service.Configuration(ctx, app.ConfigurationRequest{
		Registry:  registryRequest(),
		Version:   types.VersionKey(resolveString(cmd, opts.Release, "config_release", "release")),
		Variant:   types.BuildVariant(resolveString(cmd, opts.Variant, "config_variant", "variant")),
		OutputDir: resolveString(cmd, opts.OutputDir, "output_dir", "output-dir"),
	})
	if err != nil {
		return err
	}
	data, err := adapters.MarshalYAML(configOutput{
		Name:          result.Name,
		Version:       result.Version,
		Variant:       result.Variant,
		OutputDir:     result.OutputDir,
		Configuration: result.Configuration,
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

type memoryOptions struct {
	Release string
}

func newMemoryCommand() *cobra.Command {
	opts := memoryOptions{}
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Print the heap search profile of a version",
		Long: "Print the heap search profile of a version. Only versions with " +
			"profile data have one, so --release is required.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMemory(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Release, "release", "", "Application version with a memory profile (required)")
	_ = viper.BindPFlag("memory_release", cmd.Flags().Lookup("release"))
	return cmd
}

func runMemory(ctx context.Context, cmd *cobra.Command, opts memoryOptions) error {
	release, err := requireRelease(resolveString(cmd, opts.Release, "memory_release", "release"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.MemoryProfile(ctx, app.MemoryProfileRequest{
		Registry: registryRequest(),
		Version:  release,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", result.Name, result.Version)
	fmt.Fprintf(out, "find-xmx-min: %d\n", result.Profile.FindXmxMin)
	fmt.Fprintf(out, "find-xmx-max: %d\n", result.Profile.FindXmxMax)
	fmt.Fprintf(out, "find-xmx-range: %d\n", result.Profile.FindXmxRange)
	fmt.Fprintf(out, "oom-threshold: %d\n", result.Profile.OOMThreshold)
	fmt.Fprintf(out, "skip-find-xmx-max: %t\n", result.Profile.SkipFindXmxMax)
	return nil
}

// requireRelease rejects an empty release for profile-backed commands.
func requireRelease(release string) (types.VersionKey, error) {
	if strings.TrimSpace(release) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--release is required: memory profiles exist only for some versions (see `versions`)")
	}
	return types.VersionKey(strings.TrimSpace(release)), nil
}
