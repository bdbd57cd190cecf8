package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/motorlogic/garage/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Configer config", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("LoadConfig", func() {
		It("returns default config when no config file exists", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).NotTo(BeNil())

			defaults := config.NewDefaultConfig()
			Expect(cfg.Version).To(Equal(defaults.Version))
			Expect(cfg.Storage.Driver).To(Equal(defaults.Storage.Driver))
			Expect(cfg.API.Listen).To(Equal(defaults.API.Listen))
			Expect(cfg.Lifecycle.SessionTTL).To(Equal(defaults.Lifecycle.SessionTTL))
			Expect(cfg.Lifecycle.MaxProfiles).To(Equal(defaults.Lifecycle.MaxProfiles))
			Expect(cfg.Lifecycle.CapPolicy).To(Equal(defaults.Lifecycle.CapPolicy))
			Expect(cfg.Memory.Window).To(Equal(defaults.Memory.Window))
			Expect(cfg.Memory.TokenBudget).To(Equal(defaults.Memory.TokenBudget))
			Expect(cfg.Memory.Strategy).To(Equal(defaults.Memory.Strategy))
			Expect(cfg.Sync.KafkaTopic).To(Equal(defaults.Sync.KafkaTopic))
			Expect(cfg.Sync.OfflineQueueLimit).To(Equal(defaults.Sync.OfflineQueueLimit))
		})

		It("loads a valid config file", func() {
			data := `version = 0

[storage]
driver = "postgres"
postgres_url = "postgres://localhost:5432/garage"

[memory]
token_budget = 4096
`
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).NotTo(BeNil())
			Expect(cfg.Version).To(Equal(0))
			Expect(cfg.Storage.Driver).To(Equal("postgres"))
			Expect(cfg.Storage.PostgresURL).To(Equal("postgres://localhost:5432/garage"))
			Expect(cfg.Memory.TokenBudget).To(Equal(uint(4096)))
		})

		It("loads all config fields", func() {
			data := `version = 0

[storage]
driver = "sqlite"
sqlite_path = "/tmp/garage.sqlite"

[api]
listen = ":9090"

[lifecycle]
session_ttl = "30m"
sweep_interval = "10s"
op_retention = "72h"
max_profiles = 5
cap_policy = "evict_lru"

[memory]
window = 40
token_budget = 8192
strategy = "summarize"
preserve_recent = 10

[sync]
kafka_brokers = "broker1:9092,broker2:9092"
kafka_topic = "garage.ops"
offline_queue_limit = 1024
`
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Version).To(Equal(0))
			Expect(cfg.Storage.Driver).To(Equal("sqlite"))
			Expect(cfg.Storage.SQLitePath).To(Equal("/tmp/garage.sqlite"))
			Expect(cfg.API.Listen).To(Equal(":9090"))
			Expect(cfg.Lifecycle.SessionTTL).To(Equal("30m"))
			Expect(cfg.Lifecycle.SweepInterval).To(Equal("10s"))
			Expect(cfg.Lifecycle.OpRetention).To(Equal("72h"))
			Expect(cfg.Lifecycle.MaxProfiles).To(Equal(uint(5)))
			Expect(cfg.Lifecycle.CapPolicy).To(Equal("evict_lru"))
			Expect(cfg.Memory.Window).To(Equal(uint(40)))
			Expect(cfg.Memory.TokenBudget).To(Equal(uint(8192)))
			Expect(cfg.Memory.Strategy).To(Equal("summarize"))
			Expect(cfg.Memory.PreserveRecent).To(Equal(uint(10)))
			Expect(cfg.Sync.KafkaBrokers).To(Equal("broker1:9092,broker2:9092"))
			Expect(cfg.Sync.KafkaTopic).To(Equal("garage.ops"))
			Expect(cfg.Sync.OfflineQueueLimit).To(Equal(uint(1024)))
		})

		It("returns error for malformed TOML", func() {
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid toml [[["), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())
		})

		It("returns error for unsupported config version", func() {
			data := `version = 99
`
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported config version"))
			Expect(cfg).To(BeNil())
		})

		It("accepts config with version 0 (omitted)", func() {
			data := `[storage]
driver = "inmemory"
`
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Storage.Driver).To(Equal("inmemory"))
		})
	})

	Describe("SaveConfig", func() {
		It("persists config to disk", func() {
			cfg := &config.Config{
				Version: config.CurrentV,
				Storage: config.StorageConfig{
					Driver:     "sqlite",
					SQLitePath: "/tmp/garage.sqlite",
				},
				Memory: config.MemoryConfig{
					TokenBudget: 4096,
				},
			}

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SaveConfig(cfg)
			Expect(err).NotTo(HaveOccurred())

			// Verify the file exists
			_, err = os.Stat(filepath.Join(tmpDir, "config.toml"))
			Expect(err).NotTo(HaveOccurred())

			// Load it back and verify
			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Storage.Driver).To(Equal("sqlite"))
			Expect(loaded.Storage.SQLitePath).To(Equal("/tmp/garage.sqlite"))
			Expect(loaded.Memory.TokenBudget).To(Equal(uint(4096)))
		})

		It("returns error for nil config", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SaveConfig(nil)
			Expect(err).To(HaveOccurred())
		})

		It("overwrites existing config", func() {
			first := &config.Config{
				Version: config.CurrentV,
				Storage: config.StorageConfig{Driver: "inmemory"},
			}
			second := &config.Config{
				Version: config.CurrentV,
				Storage: config.StorageConfig{Driver: "postgres"},
			}

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SaveConfig(first)
			Expect(err).NotTo(HaveOccurred())

			err = c.SaveConfig(second)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Storage.Driver).To(Equal("postgres"))
		})
	})

	Describe("SetConfigValue", func() {
		It("sets a string config key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("storage.driver", "postgres")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Storage.Driver).To(Equal("postgres"))
		})

		It("sets a uint config key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("memory.token_budget", "8192")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Memory.TokenBudget).To(Equal(uint(8192)))
		})

		It("returns error for unknown key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("nonexistent_key", "value")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown config key"))
		})

		It("returns error for invalid uint value", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("memory.token_budget", "not-a-number")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid numeric value"))
		})

		It("sets sync.kafka_brokers", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("sync.kafka_brokers", "broker1:9092")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Sync.KafkaBrokers).To(Equal("broker1:9092"))
		})

		It("preserves existing values when setting a new key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("storage.driver", "sqlite")
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("storage.sqlite_path", "/var/lib/garage.sqlite")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Storage.Driver).To(Equal("sqlite"))
			Expect(cfg.Storage.SQLitePath).To(Equal("/var/lib/garage.sqlite"))
		})
	})

	Describe("GetConfigValue", func() {
		It("gets a set config value", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("lifecycle.cap_policy", "evict_lru")
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("lifecycle.cap_policy")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal("evict_lru"))
		})

		It("returns default value when no config file exists", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("storage.driver")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal(config.NewDefaultConfig().Storage.Driver))
		})

		It("returns empty string for key with no default", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("storage.postgres_url")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(BeEmpty())
		})

		It("returns error for unknown key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.GetConfigValue("nonexistent_key")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown config key"))
		})

		It("gets a uint config value as string", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("lifecycle.max_profiles", "25")
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("lifecycle.max_profiles")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal("25"))
		})
	})

	Describe("ValidConfigKeys", func() {
		It("returns all expected keys", func() {
			keys := config.ValidConfigKeys()
			Expect(keys).To(ContainElements(
				"storage.driver",
				"storage.sqlite_path",
				"storage.postgres_url",
				"api.listen",
				"lifecycle.session_ttl",
				"lifecycle.sweep_interval",
				"lifecycle.op_retention",
				"lifecycle.max_profiles",
				"lifecycle.cap_policy",
				"memory.window",
				"memory.token_budget",
				"memory.strategy",
				"memory.preserve_recent",
				"sync.kafka_brokers",
				"sync.kafka_topic",
				"sync.offline_queue_limit",
			))
		})

		It("returns keys in stable order", func() {
			keys1 := config.ValidConfigKeys()
			keys2 := config.ValidConfigKeys()
			Expect(keys1).To(Equal(keys2))
		})
	})

	Describe("IsValidConfigKey", func() {
		It("returns true for valid keys", func() {
			Expect(config.IsValidConfigKey("storage.driver")).To(BeTrue())
			Expect(config.IsValidConfigKey("memory.token_budget")).To(BeTrue())
			Expect(config.IsValidConfigKey("sync.kafka_brokers")).To(BeTrue())
		})

		It("returns false for invalid keys", func() {
			Expect(config.IsValidConfigKey("nonexistent")).To(BeFalse())
			Expect(config.IsValidConfigKey("")).To(BeFalse())
		})

		It("returns false for flat key names", func() {
			Expect(config.IsValidConfigKey("driver")).To(BeFalse())
			Expect(config.IsValidConfigKey("token_budget")).To(BeFalse())
		})
	})

	Describe("round-trip", func() {
		It("saves and loads config correctly with all fields", func() {
			cfg := &config.Config{
				Version: config.CurrentV,
				Storage: config.StorageConfig{
					Driver:     "sqlite",
					SQLitePath: "/tmp/test.sqlite",
				},
				API: config.APIConfig{
					Listen: ":9091",
				},
				Lifecycle: config.LifecycleConfig{
					SessionTTL:    "2h",
					SweepInterval: "30s",
					OpRetention:   "96h",
					MaxProfiles:   20,
					CapPolicy:     "evict_lru",
				},
				Memory: config.MemoryConfig{
					Window:         30,
					TokenBudget:    4096,
					Strategy:       "summarize",
					PreserveRecent: 8,
				},
				Sync: config.SyncConfig{
					KafkaBrokers:      "broker1:9092",
					KafkaTopic:        "garage.ops",
					OfflineQueueLimit: 256,
				},
			}

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SaveConfig(cfg)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})
	})
})

var _ = Describe("ParseConfigTOML", func() {
	It("parses valid TOML into a Config", func() {
		data := []byte(`version = 0

[storage]
driver = "postgres"
postgres_url = "postgres://db:5432/garage"

[memory]
token_budget = 512
`)
		cfg, err := config.ParseConfigTOML(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Version).To(Equal(0))
		Expect(cfg.Storage.Driver).To(Equal("postgres"))
		Expect(cfg.Storage.PostgresURL).To(Equal("postgres://db:5432/garage"))
		Expect(cfg.Memory.TokenBudget).To(Equal(uint(512)))
	})

	It("returns error for invalid TOML", func() {
		cfg, err := config.ParseConfigTOML([]byte("not valid [[["))
		Expect(err).To(HaveOccurred())
		Expect(cfg).To(BeNil())
	})

	It("returns empty config for empty input", func() {
		cfg, err := config.ParseConfigTOML([]byte(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).NotTo(BeNil())
		Expect(cfg.Storage.Driver).To(BeEmpty())
	})

	It("rejects unsupported config version", func() {
		data := []byte(`version = 2
`)
		cfg, err := config.ParseConfigTOML(data)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unsupported config version"))
		Expect(cfg).To(BeNil())
	})
})

var _ = Describe("NewDefaultConfig", func() {
	It("returns fully-populated defaults", func() {
		cfg := config.NewDefaultConfig()
		Expect(cfg.Version).To(Equal(config.CurrentV))
		Expect(cfg.Storage.Driver).To(Equal("sqlite"))
		Expect(cfg.API.Listen).To(Equal(":8080"))
		Expect(cfg.Lifecycle.SessionTTL).To(Equal("1h"))
		Expect(cfg.Lifecycle.SweepInterval).To(Equal("1m"))
		Expect(cfg.Lifecycle.OpRetention).To(Equal("168h"))
		Expect(cfg.Lifecycle.MaxProfiles).To(Equal(uint(10)))
		Expect(cfg.Lifecycle.CapPolicy).To(Equal("reject"))
		Expect(cfg.Memory.Window).To(Equal(uint(20)))
		Expect(cfg.Memory.TokenBudget).To(Equal(uint(2048)))
		Expect(cfg.Memory.Strategy).To(Equal("truncate"))
		Expect(cfg.Memory.PreserveRecent).To(Equal(uint(5)))
		Expect(cfg.Sync.KafkaTopic).To(Equal("garage.sync.ops"))
		Expect(cfg.Sync.OfflineQueueLimit).To(Equal(uint(512)))
	})
})

var _ = Describe("InitViper", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "viper-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("returns viper with defaults when no config file exists", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).NotTo(BeNil())

		defaults := config.NewDefaultConfig()
		Expect(v.GetString("storage.driver")).To(Equal(defaults.Storage.Driver))
		Expect(v.GetString("api.listen")).To(Equal(defaults.API.Listen))
		Expect(v.GetString("lifecycle.session_ttl")).To(Equal(defaults.Lifecycle.SessionTTL))
		Expect(v.GetUint("memory.token_budget")).To(Equal(defaults.Memory.TokenBudget))
	})

	It("reads config file values over defaults", func() {
		data := `[storage]
driver = "postgres"
postgres_url = "postgres://db:5432/garage"
`
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(v.GetString("storage.driver")).To(Equal("postgres"))
		Expect(v.GetString("storage.postgres_url")).To(Equal("postgres://db:5432/garage"))
		// Unset fields should still get defaults
		defaults := config.NewDefaultConfig()
		Expect(v.GetString("api.listen")).To(Equal(defaults.API.Listen))
	})

	It("respects environment variables with GARAGE_ prefix", func() {
		os.Setenv("GARAGE_STORAGE_DRIVER", "inmemory")
		defer os.Unsetenv("GARAGE_STORAGE_DRIVER")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(v.GetString("storage.driver")).To(Equal("inmemory"))
	})

	It("env vars take precedence over config file values", func() {
		data := `[storage]
driver = "sqlite"
`
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())

		os.Setenv("GARAGE_STORAGE_DRIVER", "postgres")
		defer os.Unsetenv("GARAGE_STORAGE_DRIVER")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(v.GetString("storage.driver")).To(Equal("postgres"))
	})
})

var _ = Describe("BindFlags", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "bindflag-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("binds cobra flags to viper keys via registry", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		fs := config.FlagSet{
			config.FlagListen: {Name: "listen", Shorthand: "l", ViperKey: "api.listen", Description: "Address for API server to listen on"},
		}

		cmd := &cobra.Command{Use: "test"}
		var listen string
		config.AddStringFlag(cmd, fs, config.FlagListen, &listen)

		// Simulate flag being set by user
		err = cmd.Flags().Set("listen", ":7777")
		Expect(err).NotTo(HaveOccurred())

		config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagListen})

		Expect(v.GetString("api.listen")).To(Equal(":7777"))
	})

	It("falls through to config when flag not set", func() {
		data := `[api]
listen = ":5555"
`
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		fs := config.FlagSet{
			config.FlagListen: {Name: "listen", Shorthand: "l", ViperKey: "api.listen", Description: "Address for API server to listen on"},
		}

		cmd := &cobra.Command{Use: "test"}
		var listen string
		config.AddStringFlag(cmd, fs, config.FlagListen, &listen)

		// Do NOT set the flag -- should fall through to config file value
		config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagListen})

		Expect(v.GetString("api.listen")).To(Equal(":5555"))
	})

	It("skips bindings for nonexistent registry keys", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		fs := config.FlagSet{}

		cmd := &cobra.Command{Use: "test"}

		// "nonexistent" is not in the FlagSet -- should be safely skipped
		config.BindRegisteredFlags(v, cmd, fs, []string{"nonexistent"})

		defaults := config.NewDefaultConfig()
		Expect(v.GetString("api.listen")).To(Equal(defaults.API.Listen))
	})

	It("AddStringFlag pulls name, shorthand, and description from FlagSet", func() {
		fs := config.FlagSet{
			config.FlagSQLite: {Name: "sqlite", Shorthand: "s", ViperKey: "storage.sqlite_path", Description: "Path to the SQLite database file"},
		}

		cmd := &cobra.Command{Use: "test"}
		var path string
		config.AddStringFlag(cmd, fs, config.FlagSQLite, &path)

		f := cmd.Flags().Lookup("sqlite")
		Expect(f).NotTo(BeNil())
		Expect(f.Shorthand).To(Equal("s"))
		Expect(f.Usage).To(Equal("Path to the SQLite database file"))
	})

	It("AddUintFlag works for max-profiles", func() {
		fs := config.FlagSet{
			config.FlagMaxProfiles: {Name: "max-profiles", ViperKey: "lifecycle.max_profiles", Description: "Maximum saved profiles per owner"},
		}

		cmd := &cobra.Command{Use: "test"}
		var max uint
		config.AddUintFlag(cmd, fs, config.FlagMaxProfiles, &max)

		f := cmd.Flags().Lookup("max-profiles")
		Expect(f).NotTo(BeNil())
		Expect(f.Usage).To(Equal("Maximum saved profiles per owner"))
		Expect(f.DefValue).To(Equal("10"))
	})
})

var _ = Describe("default merging via LoadConfig", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "config-defaults-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("fills in defaults for unset fields in a partial config", func() {
		// Config file only sets storage.driver; everything else should get defaults.
		data := `version = 0

[storage]
driver = "postgres"
`
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())

		c, err := config.NewConfiger(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := c.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		// Explicitly set value should be preserved.
		Expect(cfg.Storage.Driver).To(Equal("postgres"))

		// Unset fields should get defaults.
		defaults := config.NewDefaultConfig()
		Expect(cfg.API.Listen).To(Equal(defaults.API.Listen))
		Expect(cfg.Lifecycle.SessionTTL).To(Equal(defaults.Lifecycle.SessionTTL))
		Expect(cfg.Lifecycle.MaxProfiles).To(Equal(defaults.Lifecycle.MaxProfiles))
		Expect(cfg.Memory.Window).To(Equal(defaults.Memory.Window))
		Expect(cfg.Memory.Strategy).To(Equal(defaults.Memory.Strategy))
		Expect(cfg.Sync.KafkaTopic).To(Equal(defaults.Sync.KafkaTopic))
	})

	It("does not overwrite explicitly set values", func() {
		data := `version = 0

[storage]
driver = "sqlite"
sqlite_path = "/data/garage.sqlite"

[api]
listen = ":9091"

[lifecycle]
session_ttl = "45m"
max_profiles = 3

[memory]
strategy = "summarize"

[sync]
kafka_brokers = "broker:9092"
`
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())

		c, err := config.NewConfiger(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := c.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Storage.Driver).To(Equal("sqlite"))
		Expect(cfg.Storage.SQLitePath).To(Equal("/data/garage.sqlite"))
		Expect(cfg.API.Listen).To(Equal(":9091"))
		Expect(cfg.Lifecycle.SessionTTL).To(Equal("45m"))
		Expect(cfg.Lifecycle.MaxProfiles).To(Equal(uint(3)))
		Expect(cfg.Memory.Strategy).To(Equal("summarize"))
		Expect(cfg.Sync.KafkaBrokers).To(Equal("broker:9092"))
	})
})
