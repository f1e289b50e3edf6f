package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolchain-fixtures/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "TOOLCHAIN_FIXTURES"

var newAppService = app.NewService

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	App        string
	RepoRoot   string
	Registry   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "toolchain-fixtures",
		Short:         "Benchmark application build configurations and platform checkouts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.App, "app", "youtube", "Built-in application registry")
	cmd.PersistentFlags().StringVar(&cfg.RepoRoot, "repo-root", "", "Checkout root that registry paths are relative to (defaults to the working directory)")
	cmd.PersistentFlags().StringVar(&cfg.Registry, "registry", "", "Registry YAML file (overrides the built-in registry)")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("app", cmd.PersistentFlags().Lookup("app"))
	_ = viper.BindPFlag("repo_root", cmd.PersistentFlags().Lookup("repo-root"))
	_ = viper.BindPFlag("registry", cmd.PersistentFlags().Lookup("registry"))

	cmd.AddCommand(newLatestCommand())
	cmd.AddCommand(newNameCommand())
	cmd.AddCommand(newVersionsCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newMemoryCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newFindXmxCommand())
	cmd.AddCommand(newCheckoutCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("toolchain-fixtures")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/toolchain-fixtures")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging logs to stderr so command output on stdout stays parseable.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func registryRequest() app.RegistryRequest {
	return app.RegistryRequest{
		App:          viper.GetString("app"),
		RepoRoot:     viper.GetString("repo_root"),
		RegistryPath: viper.GetString("registry"),
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
