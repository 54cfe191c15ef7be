package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/andy/lumina/internal/repository"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored data",
	Long: `Reset stored data.

Examples:
  lumina reset draft      # Discard the current invoice draft
  lumina reset clients    # Forget all saved clients
  lumina reset all        # Wipe everything: draft, profile, clients, counter, preferences`,
}

var resetDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Discard the current invoice draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		return resetKeys("This will discard the current invoice draft. Continue?", repository.KeyInvoiceDraft)
	},
}

var resetClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Forget all saved clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		return resetKeys("This will delete ALL saved clients. Continue?", repository.KeySavedClients)
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (draft, profile, clients, invoice counter, preferences). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}
		if err := appInstance.KV.Reset(context.Background()); err != nil {
			return err
		}
		fmt.Println("All data has been deleted.")
		return nil
	},
}

func resetKeys(message string, keys ...string) error {
	if !confirmPrompt(message) {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx := context.Background()
	for _, key := range keys {
		if err := appInstance.KV.Delete(ctx, key); err != nil {
			return err
		}
	}
	fmt.Println("Done.")
	return nil
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetDraftCmd)
	resetCmd.AddCommand(resetClientsCmd)
	resetCmd.AddCommand(resetAllCmd)
}
