// Package configcmder provides the config command for managing persistent
// garage configuration stored in the .garage/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent garage configuration.

Configuration is stored as config.toml in the .garage/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  storage.driver, storage.sqlite_path, storage.postgres_url,
  api.listen,
  lifecycle.session_ttl, lifecycle.sweep_interval, lifecycle.op_retention,
  lifecycle.max_profiles, lifecycle.cap_policy,
  memory.window, memory.token_budget, memory.strategy, memory.preserve_recent,
  sync.kafka_brokers, sync.kafka_topic, sync.offline_queue_limit

Use subcommands to get, set, or list configuration values:
  garage config set <key> <value>    Set a configuration value
  garage config get <key>            Get a configuration value
  garage config list                 List all configuration values

Examples:
  garage config set storage.driver postgres
  garage config set lifecycle.session_ttl 30m
  garage config get memory.strategy
  garage config list`

const configShortDesc string = "Manage persistent garage configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
