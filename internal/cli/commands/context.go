package commands

import (
	"context"

	"github.com/immich-tools/immich-album-manager/internal/config"
)

// settingsKey is used to store the resolved settings in context.
type settingsKey struct{}

// WithSettings returns a context carrying the resolved settings.
func WithSettings(ctx context.Context, settings *config.Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, settings)
}

// GetSettings retrieves the settings from the command context.
func GetSettings(ctx context.Context) *config.Settings {
	if s, ok := ctx.Value(settingsKey{}).(*config.Settings); ok {
		return s
	}
	// Return defaults if none in context
	return config.DefaultSettings()
}
