package config

import (
	"os"
	"strconv"

	"github.com/masa-umich/limewire/internal/store"
)

// Default store connection parameters, used when the corresponding
// SYNNAX_* environment variable is unset.
const (
	DefaultStoreHost = "localhost"
	DefaultStorePort = 9090
)

// Settings bundles every env-var-sourced runtime setting that is not
// persisted to the on-disk registry.
type Settings struct {
	Store store.Settings

	// DevMode, when true, restricts the loaded channel map to the FC
	// board's entry for local development (set via LIMEWIRE_DEV_SYNNAX=1).
	DevMode bool
}

// LoadSettingsFromEnv reads store connection parameters and operator dev
// toggles from the environment. Unset variables fall back to sane
// defaults rather than erroring, since the store's own client dials
// lazily and will surface a clear connection error if the defaults are
// wrong for the target deployment.
func LoadSettingsFromEnv() Settings {
	port := DefaultStorePort
	if raw := os.Getenv("SYNNAX_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}

	secure := false
	if raw := os.Getenv("SYNNAX_SECURE"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			secure = parsed
		}
	}

	host := os.Getenv("SYNNAX_HOST")
	if host == "" {
		host = DefaultStoreHost
	}

	devMode := false
	if raw := os.Getenv("LIMEWIRE_DEV_SYNNAX"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			devMode = parsed
		}
	}

	return Settings{
		Store: store.Settings{
			Host:     host,
			Port:     port,
			Username: os.Getenv("SYNNAX_USERNAME"),
			Password: os.Getenv("SYNNAX_PASSWORD"),
			Secure:   secure,
		},
		DevMode: devMode,
	}
}
