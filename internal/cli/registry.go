package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Print the latest version of the application registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := newAppService().LoadRegistry(cmd.Context(), registryRequest())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), registry.LatestVersion())
			return nil
		},
	}
}

func newNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "name",
		Short: "Print the logical name of the application registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := newAppService().LoadRegistry(cmd.Context(), registryRequest())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), registry.Name())
			return nil
		},
	}
}

func newVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List versions, their variants and memory profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := newAppService().LoadRegistry(cmd.Context(), registryRequest())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, key := range registry.Versions() {
				variants, err := registry.Variants(key)
				if err != nil {
					return err
				}
				names := make([]string, 0, len(variants))
				for _, variant := range variants {
					names = append(names, string(variant))
				}
				line := fmt.Sprintf("%s: %s", key, strings.Join(names, ", "))
				if key == registry.LatestVersion() {
					line += " (latest)"
				}
				if _, err := registry.MemoryProfile(key); err == nil {
					line += " [memory profile]"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
