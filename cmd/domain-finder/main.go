// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the domain-finder CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/domain-finder/internal/config"
	"github.com/pdiddy/domain-finder/internal/secrets"
	"github.com/pdiddy/domain-finder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	logger *zap.Logger

	// configErr is a config file that exists but could not be read.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "domain-finder",
	Short: "Find the official athletics website domain of each institution",
	Long: `domain-finder reads a list of institutions, searches the web for each
one, scores the results and records the official athletics domain.

Manual overrides and the whitelist in domain-finder.yaml are consulted
before any search. Results are appended to the output file as the run
progresses, so an interrupted run picks up where it stopped.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./domain-finder.yaml or ~/.config/domain-finder/domain-finder.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory holding google-api-key and google-cse-id")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)
	config.ConfigureEnv(v)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(config.FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", config.FileName))
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	case errors.As(err, &notFound):
	default:
		configErr = fmt.Errorf("reading config: %w", err)
	}
}

// loadConfig decodes and validates the configuration. Credentials are
// resolved only when withCredentials is set.
func loadConfig(cmd *cobra.Command, withCredentials bool) (types.Config, error) {
	if configErr != nil {
		return types.Config{}, configErr
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if !withCredentials {
		return cfg, nil
	}

	dir, _ := cmd.Flags().GetString("secrets-dir")
	s, err := secrets.Load(dir, logger)
	if err != nil {
		return cfg, err
	}
	if len(s) > 0 {
		logger.Info("loaded secrets", zap.Strings("keys", secrets.Keys(s)))
	}
	if err := config.ResolveCredentials(&cfg, s, os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
