package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashola/internal/adapters/driven/config/memory"
	storagememory "github.com/custodia-labs/cashola/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/services"
)

// setupCLI wires the commands to in-memory services and returns the
// backend for seeding and inspection.
func setupCLI(t *testing.T) *storagememory.BlobStore {
	t.Helper()
	backend := storagememory.NewBlobStore()
	Configure(services.NewMaintenance(backend), memory.NewConfigStore())
	t.Cleanup(func() { Configure(nil, nil) })
	return backend
}

// execCommand runs the root command with args and captures its output.
func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

// seed writes a value for key under dir.
func seed(t *testing.T, backend *storagememory.BlobStore, dir, key string, value any) {
	t.Helper()
	require.NoError(t, backend.Write(context.Background(), domain.Location(dir, key), value))
}
