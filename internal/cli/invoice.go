package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/andy/lumina/internal/app"
	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/export"
	"github.com/andy/lumina/internal/service"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.Current(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		printSummary(inv)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set [field] [value]",
	Short: "Set a field on the current invoice",
	Long: `Set a field on the current invoice.

Fields: ` + strings.Join(service.FieldNames(), ", ") + `

Examples:
  lumina set recipient-name "Globex Corp"
  lumina set tax-type cgst_sgst
  lumina set tax-rate 18`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.Update(context.Background(), func(inv *domain.InvoiceData) error {
			return service.SetField(inv, args[0], args[1])
		})
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s updated\n", args[0])
		printTotals(inv)
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new invoice from your business profile",
	Long: `Start a new invoice. Your sender details, logo, currency and tax settings
are kept (from the saved business profile when there is one); the client
details, notes and items are cleared and a new invoice number is issued.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		var confirm service.Confirmer = service.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
			return confirmPrompt(prompt), nil
		})
		if yes {
			confirm = service.AlwaysConfirm
		}

		inv, ok, err := appInstance.InvoiceService.StartNew(context.Background(), confirm)
		if err != nil {
			return fmt.Errorf("failed to start a new invoice: %w", err)
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		fmt.Printf("✓ New invoice %s (due %s)\n", inv.InvoiceNumber, inv.DueDate)
		return nil
	},
}

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Build a mailto link for the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := appInstance.InvoiceService.ComposeMail(context.Background())
		if err != nil {
			return err
		}
		if res.Warning != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", res.Warning)
		} else if res.Truncated {
			fmt.Fprintln(os.Stderr, "warning: the email body was shortened to fit the link")
		}

		open, _ := cmd.Flags().GetBool("open")
		if open {
			if err := app.OpenURI(res.URI); err != nil {
				return fmt.Errorf("failed to open mail client: %w", err)
			}
			fmt.Println("✓ Opened mail client")
			return nil
		}

		fmt.Println(res.URI)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current invoice as a PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.Current(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		dir, _ := cmd.Flags().GetString("out")
		if dir == "" {
			dir = appInstance.Config.Invoice.OutputDir
		}

		path, err := appInstance.PDF.WriteFile(dir, inv)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", path)
		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the current invoice as text",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.Current(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		return export.RenderText(cmd.OutOrStdout(), inv)
	},
}

var logoCmd = &cobra.Command{
	Use:   "logo",
	Short: "Set or clear the invoice logo",
}

var logoSetCmd = &cobra.Command{
	Use:   "set [path]",
	Short: "Use an image file (up to 2MB) as the logo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uri, err := export.LoadLogo(args[0])
		if err != nil {
			return err
		}
		if _, err := appInstance.InvoiceService.Update(context.Background(), func(inv *domain.InvoiceData) error {
			inv.Logo = uri
			return nil
		}); err != nil {
			return err
		}
		fmt.Println("✓ Logo updated")
		return nil
	},
}

var logoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the logo",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := appInstance.InvoiceService.Update(context.Background(), func(inv *domain.InvoiceData) error {
			inv.Logo = ""
			return nil
		}); err != nil {
			return err
		}
		fmt.Println("✓ Logo removed")
		return nil
	},
}

func printSummary(inv domain.InvoiceData) {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("Invoice: %s\n", inv.InvoiceNumber)
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("Date: %s    Due: %s\n", inv.Date, inv.DueDate)
	fmt.Printf("From: %s <%s>\n", inv.SenderName, inv.SenderEmail)
	fmt.Printf("To:   %s <%s>\n", inv.RecipientName, inv.RecipientEmail)
	if inv.CCEmail != "" || inv.BCCEmail != "" {
		fmt.Printf("Cc:   %s    Bcc: %s\n", inv.CCEmail, inv.BCCEmail)
	}
	fmt.Printf("Currency: %s    Tax: %s%% (%s)\n", inv.Currency, domain.FormatRate(inv.TaxRate), inv.TaxType.Label())
	fmt.Println()

	printItems(inv)
	printTotals(inv)
	fmt.Println(strings.Repeat("=", 72))
}

func printItems(inv domain.InvoiceData) {
	if len(inv.Items) == 0 {
		fmt.Println("No items")
		return
	}

	symbol := inv.Symbol()
	fmt.Printf("%-3s %-10s %-30s %8s %10s %12s\n", "#", "ID", "Description", "Qty", "Price", "Amount")
	fmt.Println(strings.Repeat("-", 72))
	for i, item := range inv.Items {
		fmt.Printf("%-3d %-10s %-30s %8s %10s %12s\n",
			i+1,
			truncate(item.ID, 10),
			truncate(item.Description, 30),
			domain.FormatRate(item.Quantity),
			domain.FormatMoney(symbol, item.Price),
			domain.FormatMoney(symbol, item.Amount()),
		)
	}
	fmt.Println(strings.Repeat("-", 72))
}

func printTotals(inv domain.InvoiceData) {
	symbol := inv.Symbol()
	totals := inv.Totals()

	fmt.Printf("Subtotal: %s\n", domain.FormatMoney(symbol, totals.Subtotal))
	for _, line := range domain.TaxBreakdown(inv.TaxType, inv.TaxRate, totals.TaxAmount) {
		fmt.Printf("%s: %s\n", line.Title(), domain.FormatMoney(symbol, line.Amount))
	}
	fmt.Printf("Total: %s\n", domain.FormatMoney(symbol, totals.Total))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	newCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	mailCmd.Flags().Bool("open", false, "Open the link in the default mail client")
	exportCmd.Flags().String("out", "", "Output directory (defaults to invoice.output_dir)")

	logoCmd.AddCommand(logoSetCmd)
	logoCmd.AddCommand(logoClearCmd)
}
