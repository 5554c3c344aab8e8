package cmd

import (
	"log/slog"
	"os"

	"github.com/Builder-Lawyers/site-builder/internal/infra/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:          "site-builder",
	Short:        "Website builder for small businesses",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnv(envFile)
		slog.SetDefault(config.NewLogger(config.NewLogConfig(), os.Stderr))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(validateCmd)
}

// loadEnv reads a dotenv file without overriding variables already set. A
// missing default .env is fine, a missing explicit one is logged.
func loadEnv(path string) {
	if path == "" {
		_ = godotenv.Load()
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Warn("can't load env file", "path", path, "err", err)
	}
}
