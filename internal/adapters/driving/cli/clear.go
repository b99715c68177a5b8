package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear [storage-dir]",
	Short: "Remove all stored state",
	Long: `Removes the entire storage directory recursively.
A missing directory is not an error - clearing nothing succeeds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClear,
}

var clearKeyCmd = &cobra.Command{
	Use:   "clearkey <key> [storage-dir]",
	Short: "Remove the stored state for one key",
	Long: `Removes exactly the one stored file for a key.
Fails if nothing is stored for that key.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClearKey,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(clearKeyCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	if maintenance == nil {
		return errors.New("maintenance service not configured")
	}

	dir := storageDir(args, 0)
	if err := maintenance.ClearAll(context.Background(), dir); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Printf("Cleared %s\n", dir)
	return nil
}

func runClearKey(cmd *cobra.Command, args []string) error {
	if maintenance == nil {
		return errors.New("maintenance service not configured")
	}

	key := args[0]
	dir := storageDir(args, 1)
	if err := maintenance.ClearKey(context.Background(), key, dir); err != nil {
		return fmt.Errorf("clearkey failed: %w", err)
	}

	cmd.Printf("Cleared %s from %s\n", key, dir)
	return nil
}
