// Package garagecmder
package garagecmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/motorlogic/garage/cmd/garage/config"
	servecmder "github.com/motorlogic/garage/cmd/garage/serve"
	synccmder "github.com/motorlogic/garage/cmd/garage/sync"
	versioncmder "github.com/motorlogic/garage/cmd/garage/version"
)

const garageLongDesc string = `Garage is the session state, memory, and sync core
for the automotive assistant.

Run services using:
  garage serve         Run the state core API server

Sync a device using:
  garage sync          Pull the operations this device missed

Manage configuration using:
  garage config set <key> <value>
  garage config get <key>
  garage config list`

const garageShortDesc string = "Garage - Assistant State Core"

func NewGarageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garage",
		Short: garageShortDesc,
		Long:  garageLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .garage/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(synccmder.NewSyncCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
