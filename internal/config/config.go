// Package config resolves runtime settings for the bridge from the
// environment. Menu state itself is never persisted; the bridge starts from
// the standard menu bar on every launch.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings holds the bridge runtime configuration.
type Settings struct {
	// Address is the bridge endpoint, either host:port or unix:/path.
	Address string
	// Secret is the shared secret the host token derives from.
	Secret string
	// Debug enables verbose frame logging.
	Debug bool
}

// FromEnv reads settings from MENUBRIDGE_* environment variables. Absent
// values stay zero; the caller applies flag overrides and defaults.
func FromEnv() Settings {
	return Settings{
		Address: strings.TrimSpace(os.Getenv("MENUBRIDGE_ADDR")),
		Secret:  strings.TrimSpace(os.Getenv("MENUBRIDGE_SECRET")),
		Debug:   parseBool(os.Getenv("MENUBRIDGE_DEBUG")),
	}
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
