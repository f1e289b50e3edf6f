package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-fixtures/internal/app"
	"toolchain-fixtures/internal/types"
)

type findXmxOptions struct {
	Release   string
	Variant   string
	Workload  []string
	Dir       string
	ExpectOOM bool
}

func newFindXmxCommand() *cobra.Command {
	opts := findXmxOptions{}
	cmd := &cobra.Command{
		Use:   "find-xmx [flags] -- <java> [args...]",
		Short: "Search the minimum heap size of a workload within a version's memory profile",
		Long: "Search the minimum heap size of a workload within a version's memory " +
			"profile. Only versions with profile data can be searched, so --release is required.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFindXmx(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Release, "release", "", "Application version with a memory profile (required)")
	cmd.Flags().StringVar(&opts.Variant, "variant", string(types.BuildVariantDeploy), "Build variant supplying system properties")
	cmd.Flags().StringSliceVar(&opts.Workload, "workload", nil, "Workload command, used when no command follows --")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Working directory of the workload")
	cmd.Flags().BoolVar(&opts.ExpectOOM, "expect-oom", false, "Also require the workload to run out of memory at the OOM threshold")
	_ = viper.BindPFlag("find_xmx_release", cmd.Flags().Lookup("release"))
	_ = viper.BindPFlag("find_xmx_variant", cmd.Flags().Lookup("variant"))
	_ = viper.BindPFlag("workload", cmd.Flags().Lookup("workload"))
	_ = viper.BindPFlag("workload_dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("expect_oom", cmd.Flags().Lookup("expect-oom"))
	return cmd
}

func runFindXmx(ctx context.Context, cmd *cobra.Command, opts findXmxOptions, args []string) error {
	command := args
	if len(command) == 0 {
		command = resolveStrings(cmd, opts.Workload, "workload", "workload")
	}
	if len(command) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workload command is required (pass it after -- or via --workload)")
	}
	release, err := requireRelease(resolveString(cmd, opts.Release, "find_xmx_release", "release"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.FindHeap(ctx, app.FindHeapRequest{
		Registry:  registryRequest(),
		Version:   release,
		Variant:   types.BuildVariant(resolveString(cmd, opts.Variant, "find_xmx_variant", "variant")),
		Command:   command,
		Dir:       resolveString(cmd, opts.Dir, "workload_dir", "dir"),
		ExpectOOM: resolveBool(cmd, opts.ExpectOOM, "expect_oom", "expect-oom"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s: min heap %dMB (%d probes)\n", result.Name, result.Version, result.Search.MinHeapMB, result.Search.Probes)
	if result.OOMVerified {
		fmt.Fprintf(out, "out of memory at %dMB as expected\n", result.Profile.OOMThreshold)
	}
	return nil
}
