package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent garage configuration stored as config.toml
// in the .garage/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Storage   StorageConfig   `toml:"storage"`
	API       APIConfig       `toml:"api"`
	Lifecycle LifecycleConfig `toml:"lifecycle"`
	Memory    MemoryConfig    `toml:"memory"`
	Sync      SyncConfig      `toml:"sync"`
}

// StorageConfig selects the session store backend.
type StorageConfig struct {
	// Driver is one of "inmemory", "sqlite", or "postgres".
	Driver      string `toml:"driver,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresURL string `toml:"postgres_url,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// LifecycleConfig holds session retention settings. Durations use Go
// duration syntax ("1h", "30m", "168h").
type LifecycleConfig struct {
	SessionTTL    string `toml:"session_ttl,omitempty"`
	SweepInterval string `toml:"sweep_interval,omitempty"`
	OpRetention   string `toml:"op_retention,omitempty"`
	MaxProfiles   uint   `toml:"max_profiles,omitempty"`

	// CapPolicy is "reject" or "evict_lru".
	CapPolicy string `toml:"cap_policy,omitempty"`
}

// MemoryConfig holds context assembly settings.
type MemoryConfig struct {
	Window      uint `toml:"window,omitempty"`
	TokenBudget uint `toml:"token_budget,omitempty"`

	// Strategy is "truncate" or "summarize".
	Strategy       string `toml:"strategy,omitempty"`
	PreserveRecent uint   `toml:"preserve_recent,omitempty"`
}

// SyncConfig holds cross-node sync transport settings. Brokers is a
// comma-separated list; empty disables the Kafka transport and sync stays
// node-local.
type SyncConfig struct {
	KafkaBrokers      string `toml:"kafka_brokers,omitempty"`
	KafkaTopic        string `toml:"kafka_topic,omitempty"`
	OfflineQueueLimit uint   `toml:"offline_queue_limit,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func uintKey(get func(c *Config) uint, set func(c *Config, n uint)) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if get(c) == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(get(c)), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid numeric value %q: %w", v, err)
			}
			set(c, uint(n))
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.driver": {
		get: func(c *Config) string { return c.Storage.Driver },
		set: func(c *Config, v string) error { c.Storage.Driver = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_url": {
		get: func(c *Config) string { return c.Storage.PostgresURL },
		set: func(c *Config, v string) error { c.Storage.PostgresURL = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"lifecycle.session_ttl": {
		get: func(c *Config) string { return c.Lifecycle.SessionTTL },
		set: func(c *Config, v string) error { c.Lifecycle.SessionTTL = v; return nil },
	},
	"lifecycle.sweep_interval": {
		get: func(c *Config) string { return c.Lifecycle.SweepInterval },
		set: func(c *Config, v string) error { c.Lifecycle.SweepInterval = v; return nil },
	},
	"lifecycle.op_retention": {
		get: func(c *Config) string { return c.Lifecycle.OpRetention },
		set: func(c *Config, v string) error { c.Lifecycle.OpRetention = v; return nil },
	},
	"lifecycle.max_profiles": uintKey(
		func(c *Config) uint { return c.Lifecycle.MaxProfiles },
		func(c *Config, n uint) { c.Lifecycle.MaxProfiles = n },
	),
	"lifecycle.cap_policy": {
		get: func(c *Config) string { return c.Lifecycle.CapPolicy },
		set: func(c *Config, v string) error { c.Lifecycle.CapPolicy = v; return nil },
	},
	"memory.window": uintKey(
		func(c *Config) uint { return c.Memory.Window },
		func(c *Config, n uint) { c.Memory.Window = n },
	),
	"memory.token_budget": uintKey(
		func(c *Config) uint { return c.Memory.TokenBudget },
		func(c *Config, n uint) { c.Memory.TokenBudget = n },
	),
	"memory.strategy": {
		get: func(c *Config) string { return c.Memory.Strategy },
		set: func(c *Config, v string) error { c.Memory.Strategy = v; return nil },
	},
	"memory.preserve_recent": uintKey(
		func(c *Config) uint { return c.Memory.PreserveRecent },
		func(c *Config, n uint) { c.Memory.PreserveRecent = n },
	),
	"sync.kafka_brokers": {
		get: func(c *Config) string { return c.Sync.KafkaBrokers },
		set: func(c *Config, v string) error { c.Sync.KafkaBrokers = v; return nil },
	},
	"sync.kafka_topic": {
		get: func(c *Config) string { return c.Sync.KafkaTopic },
		set: func(c *Config, v string) error { c.Sync.KafkaTopic = v; return nil },
	},
	"sync.offline_queue_limit": uintKey(
		func(c *Config) uint { return c.Sync.OfflineQueueLimit },
		func(c *Config, n uint) { c.Sync.OfflineQueueLimit = n },
	),
}
