package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [storage-dir]",
	Short: "Watch the storage directory for changes",
	Long: `Watches the storage directory and prints an event line whenever a
stored value is created, rewritten, or removed - including changes made
by other processes or by hand. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := storageDir(args, 0)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage directory %s does not exist", dir)
		}
		return fmt.Errorf("watch failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			key := domain.KeyFromLocation(event.Name)
			if key == "" {
				// Temp files from atomic writes and other noise.
				if !strings.HasSuffix(event.Name, ".tmp") {
					logger.Debug("ignoring event for %s", event.Name)
				}
				continue
			}
			cmd.Printf("%-8s %s (%s)\n", eventVerb(event.Op), key, filepath.Base(event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		case <-sig:
			cmd.Println("Stopped.")
			return nil
		}
	}
}

func eventVerb(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "created"
	case op.Has(fsnotify.Write):
		return "written"
	case op.Has(fsnotify.Remove):
		return "removed"
	case op.Has(fsnotify.Rename):
		return "renamed"
	default:
		return op.String()
	}
}
