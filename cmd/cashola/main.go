// Command cashola manages locally stored cashola state: clearing,
// listing, and watching the per-key JSON files written by bound values.
package main

import (
	"os"

	configfile "github.com/custodia-labs/cashola/internal/adapters/driven/config/file"
	storagefile "github.com/custodia-labs/cashola/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/cashola/internal/adapters/driving/cli"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
	"github.com/custodia-labs/cashola/internal/core/services"
	"github.com/custodia-labs/cashola/internal/logger"
)

func main() {
	backend := storagefile.NewBlobStore()

	// Config is optional: without a readable config file the commands
	// fall back to built-in defaults.
	var configStore driven.ConfigStore
	if cs, err := configfile.NewConfigStore(""); err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
	} else {
		configStore = cs
	}

	cli.Configure(services.NewMaintenance(backend), configStore)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
