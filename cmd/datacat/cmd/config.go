// Copyright © 2018 One Concern

package cmd

import (
	"github.com/oneconcern/datacat"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the config of datacat",
	Long: `The namespace for managing config settings of datacat.

Configuration for datacat is the common set of flags that are needed for most commands
and do not change across runs: the collection directory, the digest cache location and
the mirror destinations.`,
}

func newConfig() (*datacat.Config, error) {
	cfg := datacat.NewConfig(zap.NewNop())
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
