package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. IMMICH_API_KEY sets api_key.
const envPrefix = "IMMICH_"

// DefaultConfigPath returns the default config file location:
// $XDG_CONFIG_HOME/immich-albums/config.yaml, falling back to the
// platform's user config directory. Returns "" when no user config
// directory can be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "immich-albums", "config.yaml")
}

// Load builds Settings from defaults, the config file, IMMICH_*
// environment variables, and command-line flags, in that order of
// increasing precedence.
//
// cfgFile may be empty, in which case the default location is tried;
// a missing default file is not an error, a missing explicit one is.
// flags may be nil. Only flags the user actually changed override the
// lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"server":       DefaultServer,
		"api_key":      "",
		"library_root": "",
		"dry_run":      false,
		"verbose":      false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file (explicit path, else the default location)
	path := cfgFile
	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		} else if cfgFile != "" {
			// An explicitly requested file must exist.
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables (IMMICH_ prefix)
	// Transform: IMMICH_LIBRARY_ROOT -> library_root
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// 4. Flags (highest precedence)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only flags that were explicitly set may override.
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case flag names to snake_case keys.
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	settings := DefaultSettings()
	if err := k.Unmarshal("", settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}
