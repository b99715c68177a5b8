package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys [storage-dir]",
	Short: "List the keys with stored state",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeys,
}

var showCmd = &cobra.Command{
	Use:   "show <key> [storage-dir]",
	Short: "Print the stored value for a key",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(showCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	if maintenance == nil {
		return errors.New("maintenance service not configured")
	}

	dir := storageDir(args, 0)
	keys, err := maintenance.StoredKeys(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("keys failed: %w", err)
	}

	if len(keys) == 0 {
		cmd.Printf("No stored keys in %s\n", dir)
		return nil
	}
	for _, key := range keys {
		cmd.Println(key)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if maintenance == nil {
		return errors.New("maintenance service not configured")
	}

	key := args[0]
	dir := storageDir(args, 1)
	value, err := maintenance.Stored(context.Background(), key, dir)
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}
	cmd.Println(string(out))
	return nil
}
