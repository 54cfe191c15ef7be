package cli

import (
	"context"
	"fmt"

	"github.com/andy/lumina/internal/domain"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your business profile",
	Long:  `Save the invoice's sender details, logo, currency and tax settings as your business profile, or load them back.`,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current sender details as the business profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := appInstance.InvoiceService.SaveProfile(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Business profile saved: %s\n", profile.SenderName)
		return nil
	},
}

var profileLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Apply the saved business profile to the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.LoadProfile(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Business profile loaded: %s\n", inv.SenderName)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved business profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := appInstance.ProfileRepo.Get(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if profile == nil {
			fmt.Println("No business profile saved")
			return nil
		}

		rate := "(not set)"
		if profile.TaxRate != nil {
			rate = domain.FormatRate(*profile.TaxRate) + "%"
		}
		logo := "no"
		if profile.Logo != "" {
			logo = "yes"
		}

		fmt.Printf("Name:     %s\n", profile.SenderName)
		fmt.Printf("Email:    %s\n", profile.SenderEmail)
		fmt.Printf("Address:  %s\n", profile.SenderAddress)
		fmt.Printf("Currency: %s\n", profile.Currency)
		fmt.Printf("Tax:      %s (%s)\n", rate, profile.TaxType.Label())
		fmt.Printf("Logo:     %s\n", logo)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileLoadCmd)
	profileCmd.AddCommand(profileShowCmd)
}
