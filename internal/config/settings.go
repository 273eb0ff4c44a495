package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
//
// Values are resolved by Load from four layers, lowest to highest
// precedence: built-in defaults, the YAML config file, IMMICH_*
// environment variables, and command-line flags the user actually set.
// A Settings value is passed explicitly to everything that needs it;
// there is no package-level configuration state.
type Settings struct {
	// Server is the Immich server address. A bare host:port works;
	// scheme and /api suffix are added as needed.
	Server string `koanf:"server" yaml:"server"`

	// APIKey authenticates requests. Create one in the Immich web UI
	// under Account Settings > API Keys.
	APIKey string `koanf:"api_key" yaml:"api_key"`

	// LibraryRoot is the local directory treated as the origin for the
	// server's relative folder addressing.
	LibraryRoot string `koanf:"library_root" yaml:"library_root"`

	// DryRun suppresses mutating calls and prints what would have
	// happened instead.
	DryRun bool `koanf:"dry_run" yaml:"dry_run"`

	// Verbose enables per-folder progress output.
	Verbose bool `koanf:"verbose" yaml:"verbose"`
}

// DefaultServer is the server address used when none is configured.
const DefaultServer = "127.0.0.1:2283"

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Server: DefaultServer,
	}
}

// MaskedAPIKey returns the API key with all but its last four
// characters replaced by asterisks, for echoing back to the user.
// Keys of four characters or fewer are masked entirely.
func (s *Settings) MaskedAPIKey() string {
	if len(s.APIKey) <= 4 {
		return strings.Repeat("*", len(s.APIKey))
	}
	return strings.Repeat("*", len(s.APIKey)-4) + s.APIKey[len(s.APIKey)-4:]
}

// Save writes the settings as YAML to path, creating parent directories
// as needed. The file is written with 0600 permissions since it may
// carry the API key.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
