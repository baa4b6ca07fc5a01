package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/config"
	logpkg "github.com/kailas-cloud/cinedex/internal/logger"
)

var (
	flagEnv    string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:          "cinedex",
	Short:        "Movie catalog search service",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", config.GetEnv(), "environment: local, prod")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path, overrides the --env lookup")
}

// loadConfig reads the file named by --config, or config/<env>.yaml.
func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig) //nolint:wrapcheck // already descriptive
	}
	return config.Load(flagEnv) //nolint:wrapcheck // already descriptive
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logpkg.NewLogger(flagEnv, cfg.Logging.Level) //nolint:wrapcheck // already descriptive
}
