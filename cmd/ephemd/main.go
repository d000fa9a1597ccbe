package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gitlab.com/rt2-ephem.net/internal/config"
)

var (
	envFile    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "ephemd",
	Short: "RT2 pointing ephemeris server",
	Long: "ephemd turns object names and equatorial coordinates into per-second\n" +
		"azimuth/elevation pointing files for the RT2 telescope.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file first")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML settings file (environment variables still win)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration for commands that need it.
func loadConfig() (*config.AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	return config.NewSystemConfigFromFile(configFile)
}
