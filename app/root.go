// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/authorsite/authorsite/internal/config"
)

var (
	configPath string // directory holding main.toml
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "authorsite",
	Short: "authorsite serves an author website with an admin api",
	Long: `authorsite serves the public pages of an author website (hero, about, books, blog)
together with the json api the admin console uses to edit content, colour theme, settings and media.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error

		cfg, err = config.ReadConfig(configPath)

		return err
	},
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
