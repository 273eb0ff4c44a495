// Package config provides configuration management for immich-album-manager.
//
// This package handles:
//   - Layered loading: defaults, YAML config file, environment, flags
//   - Saving settings back to a YAML file
//   - API key masking for display
//
// # Precedence
//
// Load resolves each value from the highest layer that provides it:
//
//	flags > IMMICH_* environment variables > config file > defaults
//
// Only flags the user actually changed participate; an untouched flag
// never shadows an environment or file value.
//
// # Config File
//
// The default location is config.yaml under the user config directory
// (e.g. ~/.config/immich-albums/config.yaml):
//
//	server: immich.local:2283
//	api_key: "..."
//	library_root: /mnt/photos
//
// An explicit --config path must exist; the default path is optional.
//
// # Environment
//
// Every field can be set via IMMICH_-prefixed variables: IMMICH_SERVER,
// IMMICH_API_KEY, IMMICH_LIBRARY_ROOT, IMMICH_DRY_RUN, IMMICH_VERBOSE.
package config
