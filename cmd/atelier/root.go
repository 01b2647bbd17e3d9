package main

import (
	"os"

	"github.com/spf13/cobra"

	"atelier/internal/config"
)

var (
	configFile string
	envFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "atelier",
	Short: "Atelier runs the session board service and its standalone timers.",
	Long: `Atelier runs the session board service and its standalone timers. ` +
		`A board is a URL: every setting lives in its query string or fragment, ` +
		`so boards can be shared, bookmarked and stepped through with back and forward.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default configs/config.yml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default .env)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(config.Options{File: configFile, EnvFile: envFile})
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
