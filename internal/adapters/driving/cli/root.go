package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
	"github.com/custodia-labs/cashola/internal/core/ports/driving"
	"github.com/custodia-labs/cashola/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root (cmd/cashola).
var (
	maintenance driving.Maintenance
	configStore driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "cashola",
	Short: "Maintenance commands for cashola storage",
	Long: `cashola persists in-memory values to local storage and keeps them
in sync as they mutate. This tool manages the stored state: clearing it,
listing it, and watching it change.

The storage directory defaults to ".cashola" in the working directory,
or storage.dir from the config file when set. Commands that take an
optional storage-dir argument override both.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
}

// Configure injects the services the commands run against.
// Must be called before Execute.
func Configure(m driving.Maintenance, c driven.ConfigStore) {
	maintenance = m
	configStore = c
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// storageDir resolves the storage directory for a command: an explicit
// positional argument wins, then the config file, then the default.
func storageDir(args []string, pos int) string {
	if len(args) > pos {
		return args[pos]
	}
	if configStore != nil {
		if dir := configStore.GetString("storage.dir"); dir != "" {
			return dir
		}
	}
	return domain.DefaultStorageDir
}
