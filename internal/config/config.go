// Package config resolves bridge configuration from the environment.
//
// The registry base URL has exactly one configuration point: the
// AGENTMESH_REGISTRY_URL environment variable, falling back to the
// documented default host.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultRegistryURL is the fallback registry host used when no
	// override is configured.
	DefaultRegistryURL = "https://registry.agentmesh.chat"

	// DefaultHeartbeatInterval is the documented presence keepalive cadence.
	DefaultHeartbeatInterval = 30 * time.Second

	registryURLKey       = "registry_url"
	heartbeatIntervalKey = "heartbeat_interval"
	logLevelKey          = "log_level"

	envPrefix = "AGENTMESH"
)

// Config holds the resolved bridge settings.
type Config struct {
	// RegistryURL is the base URL for all registry HTTP requests,
	// without a trailing slash.
	RegistryURL string

	// HeartbeatInterval is the cadence for the optional background
	// heartbeat loop. Zero disables the loop.
	HeartbeatInterval time.Duration

	// LogLevel is the slog level name for the binary's stderr logger.
	LogLevel string
}

// Load resolves configuration from the environment on top of defaults.
//
// A nil viper instance creates a fresh one, which keeps tests isolated
// from process-global viper state.
func Load(v *viper.Viper) Config {
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(registryURLKey, DefaultRegistryURL)
	v.SetDefault(heartbeatIntervalKey, time.Duration(0))
	v.SetDefault(logLevelKey, "info")

	return Config{
		RegistryURL:       strings.TrimRight(v.GetString(registryURLKey), "/"),
		HeartbeatInterval: v.GetDuration(heartbeatIntervalKey),
		LogLevel:          v.GetString(logLevelKey),
	}
}
