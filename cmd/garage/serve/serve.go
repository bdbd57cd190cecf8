// Package servecmder provides the serve command that runs the state core.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/motorlogic/garage/api"
	"github.com/motorlogic/garage/pkg/config"
	"github.com/motorlogic/garage/pkg/core"
	"github.com/motorlogic/garage/pkg/eventstream"
	eskafka "github.com/motorlogic/garage/pkg/eventstream/kafka"
	"github.com/motorlogic/garage/pkg/eventstream/nop"
	"github.com/motorlogic/garage/pkg/lifecycle"
	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/memctx"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/inmemory"
	"github.com/motorlogic/garage/pkg/storage/postgres"
	"github.com/motorlogic/garage/pkg/storage/sqlite"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

type ServeCommander struct {
	listen        string
	storageDriver string
	sqlitePath    string
	postgresURL   string
	kafkaBrokers  string
	debug         bool
	configDir     string

	logger *zap.Logger
	v      *viper.Viper
}

const serveLongDesc string = `Run the garage state core.

Serves the session, memory-context, profile, sync, and privacy APIs on one
listener. Storage backend, retention policy, and the sync transport come
from config.toml, environment (GARAGE_ prefix), or flags.`

const serveShortDesc string = "Run the garage state core"

var serveFlags = config.FlagSet{
	config.FlagListen:        {Name: "listen", Shorthand: "l", ViperKey: "api.listen", Description: "Address for the API server to listen on"},
	config.FlagStorageDriver: {Name: "storage-driver", ViperKey: "storage.driver", Description: "Storage backend (inmemory, sqlite, postgres)"},
	config.FlagSQLite:        {Name: "sqlite", Shorthand: "s", ViperKey: "storage.sqlite_path", Description: "Path to the SQLite database file"},
	config.FlagPostgres:      {Name: "postgres", ViperKey: "storage.postgres_url", Description: "Postgres connection URL"},
	config.FlagKafkaBrokers:  {Name: "kafka-brokers", ViperKey: "sync.kafka_brokers", Description: "Comma-separated Kafka brokers for cross-node sync (empty = node-local)"},
}

var serveFlagKeys = []string{
	config.FlagListen,
	config.FlagStorageDriver,
	config.FlagSQLite,
	config.FlagPostgres,
	config.FlagKafkaBrokers,
}

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			cmder.v, err = config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(cmder.v, cmd, serveFlags, serveFlagKeys)
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, serveFlags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, serveFlags, config.FlagStorageDriver, &cmder.storageDriver)
	config.AddStringFlag(cmd, serveFlags, config.FlagSQLite, &cmder.sqlitePath)
	config.AddStringFlag(cmd, serveFlags, config.FlagPostgres, &cmder.postgresURL)
	config.AddStringFlag(cmd, serveFlags, config.FlagKafkaBrokers, &cmder.kafkaBrokers)

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	opts, err := c.storageOptions()
	if err != nil {
		return err
	}

	store, err := c.createStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	// Lifecycle sweeper
	sweepInterval, err := time.ParseDuration(c.v.GetString("lifecycle.sweep_interval"))
	if err != nil {
		return fmt.Errorf("parsing lifecycle.sweep_interval: %w", err)
	}
	opRetention, err := time.ParseDuration(c.v.GetString("lifecycle.op_retention"))
	if err != nil {
		return fmt.Errorf("parsing lifecycle.op_retention: %w", err)
	}
	sweeper := lifecycle.NewSweeper(store, lifecycle.Config{
		Interval:    sweepInterval,
		OpRetention: opRetention,
		Logger:      c.logger,
	})
	sweeper.Start()
	defer sweeper.Stop()

	// Sync engine
	engine := gsync.NewEngine(gsync.Config{
		Ops:       store,
		Publisher: c.createPublisher(),
		Logger:    c.logger,
	})
	defer engine.Close()

	// Context builder
	builder, err := memctx.NewBuilder(store, memctx.Config{
		Window:         int(c.v.GetUint("memory.window")),
		TokenBudget:    int(c.v.GetUint("memory.token_budget")),
		Strategy:       memctx.Strategy(c.v.GetString("memory.strategy")),
		PreserveRecent: int(c.v.GetUint("memory.preserve_recent")),
	}, nil, c.logger)
	if err != nil {
		return fmt.Errorf("creating context builder: %w", err)
	}

	facade := core.New(store, engine, builder, c.logger)
	facade.AttachRetentionPolicy(sweeper)

	apiServer := api.NewServer(api.Config{
		ListenAddr: c.v.GetString("api.listen"),
	}, facade, c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return apiServer.Shutdown()
	}
}

func (c *ServeCommander) storageOptions() (storage.Options, error) {
	opts := storage.DefaultOptions()

	ttl, err := time.ParseDuration(c.v.GetString("lifecycle.session_ttl"))
	if err != nil {
		return opts, fmt.Errorf("parsing lifecycle.session_ttl: %w", err)
	}
	opts.EphemeralTTL = ttl
	opts.MaxProfiles = int(c.v.GetUint("lifecycle.max_profiles"))

	switch policy := c.v.GetString("lifecycle.cap_policy"); policy {
	case string(storage.CapReject):
		opts.CapPolicy = storage.CapReject
	case string(storage.CapEvictLRU):
		opts.CapPolicy = storage.CapEvictLRU
	default:
		return opts, fmt.Errorf("unknown lifecycle.cap_policy %q", policy)
	}

	return opts, nil
}

func (c *ServeCommander) createStore(opts storage.Options) (storage.Store, error) {
	switch driver := c.v.GetString("storage.driver"); driver {
	case "sqlite":
		path := c.v.GetString("storage.sqlite_path")
		if path == "" {
			path = "garage.sqlite"
		}
		store, err := sqlite.NewDriver(path, opts)
		if err != nil {
			return nil, fmt.Errorf("creating sqlite store: %w", err)
		}
		c.logger.Info("using SQLite storage", zap.String("path", path))
		return store, nil

	case "postgres":
		url := c.v.GetString("storage.postgres_url")
		if url == "" {
			return nil, fmt.Errorf("storage.postgres_url required for postgres driver")
		}
		store, err := postgres.NewDriver(context.Background(), url, opts)
		if err != nil {
			return nil, fmt.Errorf("creating postgres store: %w", err)
		}
		c.logger.Info("using Postgres storage")
		return store, nil

	case "inmemory":
		c.logger.Info("using in-memory storage")
		return inmemory.NewDriver(opts), nil

	default:
		return nil, fmt.Errorf("unknown storage.driver %q", driver)
	}
}

func (c *ServeCommander) createPublisher() eventstream.Publisher {
	brokers := c.v.GetString("sync.kafka_brokers")
	if brokers == "" {
		c.logger.Info("sync transport disabled, operations stay node-local")
		return nop.NewPublisher()
	}

	topic := c.v.GetString("sync.kafka_topic")
	c.logger.Info("using Kafka sync transport",
		zap.String("brokers", brokers),
		zap.String("topic", topic),
	)
	return eskafka.NewPublisher(strings.Split(brokers, ","), topic)
}
