package synccmder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/motorlogic/garage/pkg/dotdir"
	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/session"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

func TestSync(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sync Command Suite")
}

var _ = Describe("NewSyncCmd", func() {
	It("creates a command with correct use name", func() {
		cmd := NewSyncCmd()
		Expect(cmd.Use).To(Equal("sync"))
	})

	It("has the expected flags", func() {
		cmd := NewSyncCmd()

		Expect(cmd.Flags().Lookup("server")).NotTo(BeNil())

		ownerFlag := cmd.Flags().Lookup("owner")
		Expect(ownerFlag).NotTo(BeNil())
		Expect(ownerFlag.Shorthand).To(Equal("o"))

		followFlag := cmd.Flags().Lookup("follow")
		Expect(followFlag).NotTo(BeNil())
		Expect(followFlag.Shorthand).To(Equal("f"))

		Expect(cmd.Flags().Lookup("reset")).NotTo(BeNil())
	})

	It("accepts no positional arguments", func() {
		cmd := NewSyncCmd()
		err := cmd.Args(cmd, []string{"extra"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("syncCommander", func() {
	var (
		ctx   context.Context
		cmder *syncCommander
	)

	newCommander := func(server string) *syncCommander {
		return &syncCommander{
			server: server,
			logger: logger.NewNop(),
			v:      viper.New(),
			client: http.DefaultClient,
		}
	}

	opsPayload := func(ops ...*session.SyncOperation) []byte {
		raw, err := json.Marshal(map[string]any{"count": len(ops), "ops": ops})
		Expect(err).NotTo(HaveOccurred())
		return raw
	}

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("pull", func() {
		It("fetches missed operations and advances the device position", func() {
			op := &session.SyncOperation{
				OpID:         "op-1",
				OwnerID:      "acct_1",
				Kind:         session.OpMessageAppend,
				OriginDevice: "phone",
				Clock:        session.Clock{WallMicros: 42, Device: "phone"},
			}

			var gotPath, gotDevice string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotDevice = r.URL.Query().Get("device")
				w.Header().Set("Content-Type", "application/json")
				w.Write(opsPayload(op))
			}))
			defer ts.Close()

			cmder = newCommander(ts.URL)
			device := gsync.NewDevice("dev-1", "acct_1")

			applied, err := cmder.pull(ctx, device)
			Expect(err).NotTo(HaveOccurred())
			Expect(applied).To(Equal(1))
			Expect(gotPath).To(Equal("/owners/acct_1/sync"))
			Expect(gotDevice).To(Equal("dev-1"))
			Expect(device.LastSeen()).To(Equal(op.Clock))
		})

		It("resumes from the device's last-seen clock", func() {
			var query map[string][]string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				w.Write(opsPayload())
			}))
			defer ts.Close()

			cmder = newCommander(ts.URL)
			device := gsync.NewDevice("dev-1", "acct_1")
			device.Observe(session.Clock{WallMicros: 42, Counter: 3, Device: "phone"})

			_, err := cmder.pull(ctx, device)
			Expect(err).NotTo(HaveOccurred())
			Expect(query["since_wall"]).To(Equal([]string{"42"}))
			Expect(query["since_counter"]).To(Equal([]string{"3"}))
			Expect(query["since_device"]).To(Equal([]string{"phone"}))
		})

		It("surfaces a failing server", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer ts.Close()

			cmder = newCommander(ts.URL)
			_, err := cmder.pull(ctx, gsync.NewDevice("dev-1", "acct_1"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("followStream", func() {
		It("checkpoints the device position after each streamed operation", func() {
			op := &session.SyncOperation{
				OpID:         "op-7",
				OwnerID:      "acct_1",
				Kind:         session.OpSessionTitle,
				OriginDevice: "phone",
				Clock:        session.Clock{WallMicros: 7, Device: "phone"},
			}
			raw, err := json.Marshal(op)
			Expect(err).NotTo(HaveOccurred())

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				fmt.Fprintf(w, "event: op\nid: %s\ndata: %s\n\n", op.OpID, raw)
			}))
			defer ts.Close()

			configDir := GinkgoT().TempDir()
			cmder = newCommander(ts.URL)
			cmder.configDir = configDir

			mgr := dotdir.NewManager()
			state := &dotdir.DeviceState{DeviceID: "dev-1", OwnerID: "acct_1"}
			device := gsync.NewDevice("dev-1", "acct_1")

			Expect(cmder.followStream(ctx, mgr, state, device)).To(Succeed())
			Expect(device.LastSeen()).To(Equal(op.Clock))

			// The checkpoint survives a restart.
			reloaded, err := mgr.LoadDeviceState(configDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded).NotTo(BeNil())
			Expect(reloaded.LastSynced).To(Equal(op.Clock))
		})

		It("skips keep-alive comments and unknown events", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				fmt.Fprint(w, ": keep-alive\n\nevent: noise\ndata: ignored\n\n")
			}))
			defer ts.Close()

			cmder = newCommander(ts.URL)
			cmder.configDir = GinkgoT().TempDir()
			device := gsync.NewDevice("dev-1", "acct_1")

			state := &dotdir.DeviceState{DeviceID: "dev-1", OwnerID: "acct_1"}
			Expect(cmder.followStream(ctx, dotdir.NewManager(), state, device)).To(Succeed())
			Expect(device.LastSeen().IsZero()).To(BeTrue())
		})
	})

	Describe("run", func() {
		It("requires an owner when none is on record", func() {
			cmder = newCommander("http://localhost:0")
			cmder.configDir = GinkgoT().TempDir()

			err := cmder.run(ctx)
			Expect(err).To(MatchError(ContainSubstring("owner")))
		})
	})
})
