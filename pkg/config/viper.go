package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/motorlogic/garage/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the GARAGE_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (GARAGE_API_LISTEN, GARAGE_STORAGE_DRIVER, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: GARAGE_API_LISTEN, GARAGE_SYNC_KAFKA_BROKERS, etc.
	v.SetEnvPrefix("GARAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Storage
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.postgres_url", d.Storage.PostgresURL)

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Lifecycle
	v.SetDefault("lifecycle.session_ttl", d.Lifecycle.SessionTTL)
	v.SetDefault("lifecycle.sweep_interval", d.Lifecycle.SweepInterval)
	v.SetDefault("lifecycle.op_retention", d.Lifecycle.OpRetention)
	v.SetDefault("lifecycle.max_profiles", d.Lifecycle.MaxProfiles)
	v.SetDefault("lifecycle.cap_policy", d.Lifecycle.CapPolicy)

	// Memory
	v.SetDefault("memory.window", d.Memory.Window)
	v.SetDefault("memory.token_budget", d.Memory.TokenBudget)
	v.SetDefault("memory.strategy", d.Memory.Strategy)
	v.SetDefault("memory.preserve_recent", d.Memory.PreserveRecent)

	// Sync
	v.SetDefault("sync.kafka_brokers", d.Sync.KafkaBrokers)
	v.SetDefault("sync.kafka_topic", d.Sync.KafkaTopic)
	v.SetDefault("sync.offline_queue_limit", d.Sync.OfflineQueueLimit)
}
