package config

const (
	defaultStorageDriver = "sqlite"
	defaultAPIListen     = ":8080"

	defaultSessionTTL    = "1h"
	defaultSweepInterval = "1m"
	defaultOpRetention   = "168h"
	defaultMaxProfiles   = 10
	defaultCapPolicy     = "reject"

	defaultMemoryWindow   = 20
	defaultTokenBudget    = 2048
	defaultMemoryStrategy = "truncate"
	defaultPreserveRecent = 5

	defaultKafkaTopic        = "garage.sync.ops"
	defaultOfflineQueueLimit = 512
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Lifecycle: LifecycleConfig{
			SessionTTL:    defaultSessionTTL,
			SweepInterval: defaultSweepInterval,
			OpRetention:   defaultOpRetention,
			MaxProfiles:   defaultMaxProfiles,
			CapPolicy:     defaultCapPolicy,
		},
		Memory: MemoryConfig{
			Window:         defaultMemoryWindow,
			TokenBudget:    defaultTokenBudget,
			Strategy:       defaultMemoryStrategy,
			PreserveRecent: defaultPreserveRecent,
		},
		Sync: SyncConfig{
			KafkaTopic:        defaultKafkaTopic,
			OfflineQueueLimit: defaultOfflineQueueLimit,
		},
	}
}
