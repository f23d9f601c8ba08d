// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lead-finder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Up14/Lead-Finder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lead-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "lead-finder",
	Short: "Find, deduplicate, and prioritize scientific sales leads",
	Long: `lead-finder turns repeated literature searches into a ranked lead list.
It caches search results, merges duplicate people found across terms and
sources, scores each lead against weighted buying signals, and ranks the
batch for outreach.

Each pipeline stage is a subcommand: run executes a batch end to end;
cache, credits, and leads inspect and manage the stores behind it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lead-finder.yaml or ~/.config/lead-finder/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lead-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lead-finder"))
		}
	}

	viper.SetEnvPrefix("LEAD_FINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
