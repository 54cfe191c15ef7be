package cli

import (
	"context"
	"fmt"

	"github.com/andy/lumina/internal/domain"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show, set, or toggle the colour theme",
	Long:      `With no argument, toggles between light and dark.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) == 0 {
			theme, err := appInstance.AccountService.ToggleTheme(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Theme: %s\n", theme)
			return nil
		}

		theme, err := domain.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := appInstance.AccountService.SetTheme(ctx, theme); err != nil {
			return err
		}
		fmt.Printf("✓ Theme: %s\n", theme)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Remember who is using lumina on this machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		user, err := appInstance.AccountService.Login(context.Background(), args[0], name)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Signed in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.AccountService.Logout(context.Background()); err != nil {
			return err
		}
		fmt.Println("✓ Signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("name", "", "Display name (defaults to the part of the email before @)")
}
