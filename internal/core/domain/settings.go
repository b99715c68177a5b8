package domain

import "os"

// Default configuration values.
const (
	// DefaultStorageDir is the storage directory used when none is
	// configured, relative to the working directory.
	DefaultStorageDir = ".cashola"

	// DefaultIgnoreEnvVar is the environment variable consulted for
	// ignore-state when no other name is configured.
	DefaultIgnoreEnvVar = "IGNORE_CASHOLA"
)

// Settings configures a store. Settings are read at bind time: changing
// them after a key is bound does not move that key's storage location.
type Settings struct {
	// StorageDir is the directory holding one blob file per key.
	StorageDir string

	// IgnoreEnvVar names the environment variable whose value "true"
	// (exact string) activates ignore-state.
	IgnoreEnvVar string

	// Ignore forces ignore-state regardless of the environment.
	Ignore bool
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		StorageDir:   DefaultStorageDir,
		IgnoreEnvVar: DefaultIgnoreEnvVar,
	}
}

// Normalized fills zero-valued fields with defaults.
func (s Settings) Normalized() Settings {
	if s.StorageDir == "" {
		s.StorageDir = DefaultStorageDir
	}
	if s.IgnoreEnvVar == "" {
		s.IgnoreEnvVar = DefaultIgnoreEnvVar
	}
	return s
}

// Ignored computes ignore-state: the explicit Ignore flag wins, otherwise
// the configured environment variable must equal the literal "true".
func (s Settings) Ignored() bool {
	if s.Ignore {
		return true
	}
	name := s.IgnoreEnvVar
	if name == "" {
		name = DefaultIgnoreEnvVar
	}
	return os.Getenv(name) == "true"
}
