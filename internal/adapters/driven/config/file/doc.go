// Package file provides a TOML file-based implementation of the
// ConfigStore driven port.
//
// Configuration is stored at <configDir>/config.toml (default
// ~/.cashola/config.toml). Recognised keys:
//
//	[storage]
//	dir            = ".cashola"        # storage directory for blob files
//	ignore         = false             # force ignore-state
//	ignore_env_var = "IGNORE_CASHOLA"  # env var consulted for ignore-state
//
// Nested tables are flattened to dot-notation keys ("storage.dir") for
// lookup, and expanded back into tables when written.
package file
