package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/service"
	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage line items",
	Long: `Add, edit, and remove line items on the current invoice.

Items are referenced by their position in "lumina items list" or by a
prefix of their ID.`,
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List line items",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.Current(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		printItems(inv)
		printTotals(inv)
		return nil
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a line item",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, _ := cmd.Flags().GetFloat64("qty")
		price, _ := cmd.Flags().GetFloat64("price")

		var added domain.LineItem
		inv, err := appInstance.InvoiceService.Update(context.Background(), func(inv *domain.InvoiceData) error {
			added = inv.AddItem()
			if len(args) == 1 {
				if err := inv.SetItemDescription(added.ID, args[0]); err != nil {
					return err
				}
			}
			if err := inv.SetItemQuantity(added.ID, qty); err != nil {
				return err
			}
			return inv.SetItemPrice(added.ID, price)
		})
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		fmt.Printf("✓ Item added (#%d, ID %s)\n", len(inv.Items), added.ID)
		printTotals(inv)
		return nil
	},
}

var itemsSetCmd = &cobra.Command{
	Use:   "set [item] [field] [value]",
	Short: "Set an item's description, qty or price",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.Update(context.Background(), func(inv *domain.InvoiceData) error {
			id, err := resolveItem(*inv, args[0])
			if err != nil {
				return err
			}
			return service.SetItemField(inv, id, args[1], args[2])
		})
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		fmt.Println("✓ Item updated")
		printTotals(inv)
		return nil
	},
}

var itemsRemoveCmd = &cobra.Command{
	Use:     "rm [item]",
	Aliases: []string{"remove"},
	Short:   "Remove a line item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.InvoiceService.Update(context.Background(), func(inv *domain.InvoiceData) error {
			id, err := resolveItem(*inv, args[0])
			if err != nil {
				return err
			}
			return inv.RemoveItem(id)
		})
		if err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}

		fmt.Println("✓ Item removed")
		printTotals(inv)
		return nil
	},
}

// resolveItem finds an item by 1-based position, exact ID or unique ID prefix
func resolveItem(inv domain.InvoiceData, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("item reference is required")
	}

	if _, ok := inv.ItemByID(ref); ok {
		return ref, nil
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(inv.Items) {
			return inv.Items[n-1].ID, nil
		}
	}

	var match string
	for _, item := range inv.Items {
		if strings.HasPrefix(item.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("item reference %q is ambiguous", ref)
			}
			match = item.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrItemNotFound, ref)
	}
	return match, nil
}

func init() {
	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsAddCmd)
	itemsCmd.AddCommand(itemsSetCmd)
	itemsCmd.AddCommand(itemsRemoveCmd)

	itemsAddCmd.Flags().Float64("qty", 1, "Quantity")
	itemsAddCmd.Flags().Float64("price", 0, "Unit price")
}
