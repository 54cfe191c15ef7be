package cli

import (
	"github.com/andy/lumina/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "A terminal invoice builder for freelancers and small businesses",
	Long: `Lumina helps you draft an invoice, keep your business profile and client
list at hand, and send or export the result.

By default, running lumina without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(mailCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(logoCmd)
	rootCmd.AddCommand(assistCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(storageCmd)
}
