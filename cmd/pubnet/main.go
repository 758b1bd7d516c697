// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubnet CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubnet/internal/secrets"
	"github.com/pdiddy/pubnet/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "pubnet/0.1"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for
// key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pubnet CLI.
var rootCmd = &cobra.Command{
	Use:   "pubnet",
	Short: "PubMed search and co-authorship network construction",
	Long: `pubnet queries the NCBI PubMed database and turns the results into
co-authorship networks. A search resolves matching article identifiers,
fetches the full records in batches, and can cache them locally; the
graph command tallies every pair of co-authors across the result set and
writes node/edge artifacts that Gephi, yEd, or d3 import directly.

Each stage is a subcommand: search, count, ids, graph, and cache.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubnet.yaml or ~/.config/pubnet/pubnet.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubnet")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubnet"))
		}
	}

	viper.SetEnvPrefix("PUBNET")
	viper.AutomaticEnv()

	viper.SetDefault("tool", "pubnet")
	viper.SetDefault("timeout", 60*time.Second)
	viper.SetDefault("max_results", 100)
	viper.SetDefault("cache_path", "pubnet.db")
	viper.SetDefault("cache_max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// clientConfig resolves the Entrez client settings from config file,
// environment, secrets, and command flags, flags winning.
func clientConfig(cmd *cobra.Command) types.ClientConfig {
	cfg := types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: defaultUserAgent,
		},
		Tool:       viper.GetString("tool"),
		Email:      secretDefault("ncbi-email", viper.GetString("email")),
		APIKey:     secretDefault("ncbi-api-key", viper.GetString("api_key")),
		MaxResults: viper.GetInt("max_results"),
		StartYear:  viper.GetInt("start_year"),
		BatchDelay: viper.GetDuration("batch_delay"),
	}
	if cmd.Flags().Changed("max-results") {
		cfg.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	if cmd.Flags().Changed("start-year") {
		cfg.StartYear, _ = cmd.Flags().GetInt("start-year")
	}
	return cfg
}

// cacheConfig resolves the article cache settings. A --db flag on the
// calling command overrides the configured path.
func cacheConfig(cmd *cobra.Command) types.CacheConfig {
	cfg := types.CacheConfig{
		Path:       viper.GetString("cache_path"),
		MaxResults: viper.GetInt("cache_max_results"),
	}
	if f := cmd.Flags().Lookup("db"); f != nil && f.Changed {
		cfg.Path = f.Value.String()
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
