// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/oneconcern/datacat"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datacat",
	Short: "Datacat curates a collection of small reference datasets",
	Long: `Datacat maintains a curated collection of small datasets distributed together with their provenance.

Every file of the collection is cataloged with its origin, authors, release date, license and
sha256 digest. The human readable manifest (a table in the README) and the checksum file are
rendered from the catalog and never edited by hand: datacat regenerates them whenever the
catalog changes and flags them when they drift.

`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		activeCmd = cmd
		if datacatFlags.root.cpuProf {
			f, err := os.Create("cpu.prof")
			if err != nil {
				log.Fatal(err)
			}
			_ = pprof.StartCPUProfile(f)
		}
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if datacatFlags.root.cpuProf {
			pprof.StopCPUProfile()
		}
	},
}

var config *datacat.Config

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addCollectionFlag(rootCmd)
	addCacheDirFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	addCPUProfFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("collection", ".")
	viper.SetDefault("log-level", "info")
	if os.Getenv("DATACAT_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("DATACAT_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.datacat")
		viper.AddConfigPath("/etc/datacat")
		viper.SetConfigName("datacat")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	datacatFlags.setDefaultsFromConfig(config)
}
