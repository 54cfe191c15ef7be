package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and tune local storage",
}

var storageInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the database location, limit and stored keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		limit, err := appInstance.KV.Limit(ctx)
		if err != nil {
			return err
		}
		sizes, err := appInstance.KV.Sizes(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s\n", appInstance.DB.Path())
		if limit > 0 {
			fmt.Printf("Limit:    %d bytes per value\n", limit)
		} else {
			fmt.Println("Limit:    none")
		}
		fmt.Println()

		if len(sizes) == 0 {
			fmt.Println("Nothing stored yet.")
			return nil
		}
		fmt.Printf("%-20s %10s\n", "KEY", "BYTES")
		for _, ks := range sizes {
			fmt.Printf("%-20s %10d\n", ks.Key, ks.Bytes)
		}
		return nil
	},
}

var storageLimitCmd = &cobra.Command{
	Use:   "limit [bytes]",
	Short: "Set the largest value that can be stored (0 for no limit)",
	Long: `Set the largest single value that can be stored. Drafts that exceed it
are saved without their logo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid byte count %q", args[0])
		}
		if err := appInstance.KV.SetLimit(context.Background(), n); err != nil {
			return err
		}
		fmt.Printf("✓ Storage limit set to %d bytes\n", n)
		return nil
	},
}

func init() {
	storageCmd.AddCommand(storageInfoCmd)
	storageCmd.AddCommand(storageLimitCmd)
}
