// Package app implements the command line interface.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "boomiis-api",
	Short: "Boomiis restaurant site backend",
	Long: `Boomiis restaurant site backend: menu, blog and gallery content,
web orders with payment intents, table reservations, event inquiries
and a small admin surface.`,
	Args:         cobra.OnlyValidArgs,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
