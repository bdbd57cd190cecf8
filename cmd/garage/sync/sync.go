// Package synccmder provides the `garage sync` device client command.
package synccmder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/config"
	"github.com/motorlogic/garage/pkg/dotdir"
	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/sse"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

type syncCommander struct {
	server    string
	owner     string
	follow    bool
	reset     bool
	debug     bool
	configDir string

	logger *zap.Logger
	v      *viper.Viper
	client *http.Client
}

const syncLongDesc string = `Sync this device against a garage server.

Pulls the operations this device missed since its last sync and records the
new position in .garage/device.json, so the next run resumes incrementally.
With --follow the command stays attached to the live operation stream and
checkpoints after every received operation.

The device identity is generated on first run and reused afterwards. Passing
a different --owner than the one on record restarts incremental sync from
scratch for the new owner.`

const syncShortDesc string = "Pull missed sync operations for this device"

// NewSyncCmd creates the sync cobra command.
func NewSyncCmd() *cobra.Command {
	cmder := &syncCommander{client: http.DefaultClient}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: syncShortDesc,
		Long:  syncLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			cmder.v, err = config.InitViper(cmder.configDir)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cmder.server, "server", "http://localhost:8080", "Base URL of the garage API server")
	cmd.Flags().StringVarP(&cmder.owner, "owner", "o", "", "Owner id to sync as (remembered across runs)")
	cmd.Flags().BoolVarP(&cmder.follow, "follow", "f", false, "Stay attached to the live operation stream")
	cmd.Flags().BoolVar(&cmder.reset, "reset", false, "Forget the stored device identity and start fresh")

	return cmd
}

func (c *syncCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	mgr := dotdir.NewManager()
	if c.reset {
		if err := mgr.ClearDeviceState(c.configDir); err != nil {
			return err
		}
	}

	state, err := mgr.LoadDeviceState(c.configDir)
	if err != nil {
		return err
	}
	if state == nil {
		state = &dotdir.DeviceState{DeviceID: uuid.NewString()}
	}
	if c.owner != "" && c.owner != state.OwnerID {
		// A different owner restarts incremental sync from scratch.
		state.OwnerID = c.owner
		state.LastSynced = session.Clock{}
	}
	if state.OwnerID == "" {
		return fmt.Errorf("no owner on record for this device; pass --owner")
	}

	device := gsync.NewDeviceWithQueueLimit(state.DeviceID, state.OwnerID, int(c.v.GetUint("sync.offline_queue_limit")))
	device.Observe(state.LastSynced)
	device.BeginConnect()

	applied, err := c.pull(ctx, device)
	if err != nil {
		return err
	}
	device.MarkSynced()

	state.LastSynced = device.LastSeen()
	if err := mgr.SaveDeviceState(state, c.configDir); err != nil {
		return err
	}
	fmt.Printf("synced %d operation(s) as device %s\n", applied, device.ID)

	if !c.follow {
		return nil
	}
	return c.followStream(ctx, mgr, state, device)
}

// pull fetches the operations this device missed since its last-seen clock
// and advances the device position past each one.
func (c *syncCommander) pull(ctx context.Context, device *gsync.Device) (int, error) {
	target, err := c.opsURL(device)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("contacting sync server: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sync request failed: %s", resp.Status)
	}

	var body struct {
		Count int                      `json:"count"`
		Ops   []*session.SyncOperation `json:"ops"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding sync response: %w", err)
	}

	for _, op := range body.Ops {
		c.logOp(op)
		device.Observe(op.Clock)
	}
	return body.Count, nil
}

// opsURL builds the replay-since-clock request for the device's position.
func (c *syncCommander) opsURL(device *gsync.Device) (string, error) {
	u, err := url.Parse(c.server)
	if err != nil {
		return "", fmt.Errorf("parsing server url: %w", err)
	}
	u.Path = "/owners/" + device.OwnerID + "/sync"

	q := url.Values{}
	q.Set("device", device.ID)
	if since := device.LastSeen(); !since.IsZero() {
		q.Set("since_wall", strconv.FormatInt(since.WallMicros, 10))
		q.Set("since_counter", strconv.FormatUint(since.Counter, 10))
		q.Set("since_device", since.Device)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// followStream stays attached to the owner's live SSE stream, checkpointing
// the device position after every received operation so a crash resumes
// where the stream left off.
func (c *syncCommander) followStream(ctx context.Context, mgr *dotdir.Manager, state *dotdir.DeviceState, device *gsync.Device) error {
	u, err := url.Parse(c.server)
	if err != nil {
		return fmt.Errorf("parsing server url: %w", err)
	}
	u.Path = "/owners/" + device.OwnerID + "/sync/stream"
	u.RawQuery = url.Values{"device": {device.ID}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("attaching to sync stream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream request failed: %s", resp.Status)
	}

	reader := sse.NewReader(resp.Body)
	for {
		ev, err := reader.Next()
		if err != nil {
			return fmt.Errorf("reading sync stream: %w", err)
		}
		if ev == nil {
			device.MarkDisconnected()
			return nil
		}
		if ev.Type != "op" {
			continue
		}

		var op session.SyncOperation
		if err := json.Unmarshal([]byte(ev.Data), &op); err != nil {
			c.logger.Warn("skipping undecodable stream event",
				zap.String("event_id", ev.ID),
				zap.Error(err),
			)
			continue
		}

		c.logOp(&op)
		device.Observe(op.Clock)
		state.LastSynced = device.LastSeen()
		if err := mgr.SaveDeviceState(state, c.configDir); err != nil {
			return err
		}
	}
}

func (c *syncCommander) logOp(op *session.SyncOperation) {
	c.logger.Info("received operation",
		zap.String("kind", string(op.Kind)),
		zap.String("target_id", op.TargetID),
		zap.String("origin_device", op.OriginDevice),
		zap.String("clock", op.Clock.String()),
	)
}
