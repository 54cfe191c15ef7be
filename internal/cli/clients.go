package cli

import (
	"context"
	"fmt"

	"github.com/andy/lumina/internal/domain"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage saved clients",
	Long:  `Save the current recipient, search saved clients, and fill the invoice from one.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := appInstance.ClientRepo.List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}
		printClients(clients)
		return nil
	},
}

var clientsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current recipient as a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appInstance.InvoiceService.SaveClient(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Client saved: %s\n", client.Name)
		return nil
	},
}

var clientsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find saved clients by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := appInstance.InvoiceService.SearchClients(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to search clients: %w", err)
		}
		printClients(clients)
		return nil
	},
}

var clientsUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Fill the recipient from a saved client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.UseClient(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Recipient set to %s <%s>\n", inv.RecipientName, inv.RecipientEmail)
		return nil
	},
}

func printClients(clients []domain.SavedClient) {
	if len(clients) == 0 {
		fmt.Println("No clients found")
		return
	}

	fmt.Printf("%-30s %-30s %s\n", "Name", "Email", "Address")
	fmt.Println("--------------------------------------------------------------------------------")
	for _, c := range clients {
		fmt.Printf("%-30s %-30s %s\n", truncate(c.Name, 30), truncate(c.Email, 30), truncate(c.Address, 40))
	}
	fmt.Printf("\nTotal: %d client(s)\n", len(clients))
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsSaveCmd)
	clientsCmd.AddCommand(clientsSearchCmd)
	clientsCmd.AddCommand(clientsUseCmd)
}
