package cli

import (
	"context"
	"fmt"

	"github.com/andy/lumina/internal/app"
	"github.com/andy/lumina/internal/assist"
	"github.com/andy/lumina/internal/domain"
	"github.com/spf13/cobra"
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Draft invoice text with AI",
	Long:  `Generate payment terms, a thank-you note, or a more professional item description.`,
}

var assistTermsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Generate payment terms for the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := appInstance.Assist()
		if err != nil {
			return err
		}

		ctx := context.Background()
		current, err := appInstance.InvoiceService.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		descriptions := make([]string, 0, len(current.Items))
		for _, item := range current.Items {
			descriptions = append(descriptions, item.Description)
		}
		terms := svc.Terms(ctx, current.SenderName, assist.SummarizeItems(descriptions))

		if _, err := appInstance.InvoiceService.Update(ctx, func(inv *domain.InvoiceData) error {
			inv.Terms = terms
			return nil
		}); err != nil {
			return err
		}
		fmt.Println(terms)
		return nil
	},
}

var assistNotesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate a thank-you note for the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := appInstance.Assist()
		if err != nil {
			return err
		}

		ctx := context.Background()
		current, err := appInstance.InvoiceService.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		note := svc.ThankYouNote(ctx, current.RecipientName, current.SenderName)
		if _, err := appInstance.InvoiceService.Update(ctx, func(inv *domain.InvoiceData) error {
			inv.Notes = note
			return nil
		}); err != nil {
			return err
		}
		fmt.Println(note)
		return nil
	},
}

var assistItemCmd = &cobra.Command{
	Use:   "item [item]",
	Short: "Rewrite an item description to sound more professional",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := appInstance.Assist()
		if err != nil {
			return err
		}

		ctx := context.Background()
		current, err := appInstance.InvoiceService.Current(ctx)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		id, err := resolveItem(current, args[0])
		if err != nil {
			return err
		}
		item, _ := current.ItemByID(id)

		description := svc.ItemDescription(ctx, item.Description)
		if _, err := appInstance.InvoiceService.Update(ctx, func(inv *domain.InvoiceData) error {
			return inv.SetItemDescription(id, description)
		}); err != nil {
			return err
		}
		fmt.Println(description)
		return nil
	},
}

var assistKeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Store the AI API key in the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := app.ReadSecret("API key: ")
		if err != nil {
			return err
		}
		if err := appInstance.SetAPIKey(key); err != nil {
			return err
		}
		fmt.Println("✓ API key stored")
		return nil
	},
}

func init() {
	assistCmd.AddCommand(assistTermsCmd)
	assistCmd.AddCommand(assistNotesCmd)
	assistCmd.AddCommand(assistItemCmd)
	assistCmd.AddCommand(assistKeyCmd)
}
