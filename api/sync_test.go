package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

var _ = Describe("Sync handlers", func() {
	var (
		server *Server
		engine *gsync.Engine
	)

	BeforeEach(func() {
		server, engine = newTestServer()
	})

	AfterEach(func() {
		Expect(engine.Close()).To(Succeed())
	})

	createSession := func(owner string) session.Session {
		req := jsonRequest(http.MethodPost, "/sessions", CreateSessionRequest{OwnerID: owner, Device: "phone"})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		var sess session.Session
		decodeBody(resp, &sess)
		return sess
	}

	opsBody := func(resp *http.Response) (int, []*session.SyncOperation) {
		var body struct {
			Count int                      `json:"count"`
			Ops   []*session.SyncOperation `json:"ops"`
		}
		decodeBody(resp, &body)
		return body.Count, body.Ops
	}

	Describe("GET /owners/:id/sync", func() {
		It("returns the owner's missed operations", func() {
			createSession("acct_1")

			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/sync", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			count, ops := opsBody(resp)
			Expect(count).To(Equal(1))
			Expect(ops[0].Kind).To(Equal(session.OpSessionCreate))
		})

		It("excludes the requesting device's own writes", func() {
			createSession("acct_1")

			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/sync?device=phone", nil))
			Expect(err).NotTo(HaveOccurred())

			count, _ := opsBody(resp)
			Expect(count).To(BeZero())
		})

		It("honors the since clock", func() {
			createSession("acct_1")

			// Read the create op's clock, then ask for anything after it.
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/sync", nil))
			Expect(err).NotTo(HaveOccurred())
			_, ops := opsBody(resp)
			since := ops[0].Clock

			target := fmt.Sprintf("/owners/acct_1/sync?since_wall=%d&since_counter=%d&since_device=%s",
				since.WallMicros, since.Counter, since.Device)
			resp, err = server.app.Test(jsonRequest(http.MethodGet, target, nil))
			Expect(err).NotTo(HaveOccurred())

			count, _ := opsBody(resp)
			Expect(count).To(BeZero())
		})

		It("rejects a malformed since clock", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/sync?since_wall=soon", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /owners/:id/sync/stream", func() {
		It("requires a device parameter", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/sync/stream", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /owners/:id/sync/replay", func() {
		It("applies queued operations and reports conflicts", func() {
			sess := createSession("acct_1")

			raw, err := json.Marshal(session.Message{ID: "m1", Role: session.RoleUser, Content: "queued offline"})
			Expect(err).NotTo(HaveOccurred())

			req := jsonRequest(http.MethodPost, "/owners/acct_1/sync/replay", ReplayRequest{
				Ops: []*session.SyncOperation{{
					OpID:         "q1",
					OwnerID:      "acct_1",
					TargetID:     sess.ID,
					TargetType:   session.TargetSession,
					Kind:         session.OpMessageAppend,
					Delta:        raw,
					OriginDevice: "tablet",
					Clock:        session.Clock{WallMicros: 1, Device: "tablet"},
				}},
			})
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body ReplayResponse
			decodeBody(resp, &body)
			Expect(body.Applied).To(Equal(1))
			Expect(body.Conflicts).To(BeEmpty())

			get, err := server.app.Test(jsonRequest(http.MethodGet, "/sessions/"+sess.ID, nil))
			Expect(err).NotTo(HaveOccurred())
			var got session.Session
			decodeBody(get, &got)
			Expect(got.Messages).To(HaveLen(1))
		})

		It("rejects a queue for another owner", func() {
			req := jsonRequest(http.MethodPost, "/owners/acct_1/sync/replay", ReplayRequest{
				Ops: []*session.SyncOperation{{
					OpID:    "q1",
					OwnerID: "acct_2",
					Kind:    session.OpSessionTitle,
				}},
			})
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})
})

var _ = Describe("Owner retention handler", func() {
	var (
		server *Server
		engine *gsync.Engine
	)

	BeforeEach(func() {
		server, engine = newTestServer()
	})

	AfterEach(func() {
		Expect(engine.Close()).To(Succeed())
	})

	It("stores a retention preference for an account", func() {
		req := jsonRequest(http.MethodPut, "/owners/acct_1/retention", SetRetentionRequest{Days: 30})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
	})

	It("clears the preference with zero days", func() {
		req := jsonRequest(http.MethodPut, "/owners/acct_1/retention", SetRetentionRequest{Days: 0})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
	})

	It("rejects negative days", func() {
		req := jsonRequest(http.MethodPut, "/owners/acct_1/retention", SetRetentionRequest{Days: -7})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("rejects guest owners", func() {
		guest := session.NewGuestOwnerID()
		req := jsonRequest(http.MethodPut, "/owners/"+guest+"/retention", SetRetentionRequest{Days: 30})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})
})

var _ = Describe("Owner privacy handlers", func() {
	var (
		server *Server
		engine *gsync.Engine
	)

	BeforeEach(func() {
		server, engine = newTestServer()
	})

	AfterEach(func() {
		Expect(engine.Close()).To(Succeed())
	})

	It("exports everything the owner holds", func() {
		req := jsonRequest(http.MethodPost, "/sessions", CreateSessionRequest{OwnerID: "acct_1", Device: "phone"})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		resp, err = server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/export", nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var snap session.Snapshot
		decodeBody(resp, &snap)
		Expect(snap.OwnerID).To(Equal("acct_1"))
		Expect(snap.Sessions).To(HaveLen(1))
		Expect(snap.AsOf.IsZero()).To(BeFalse())
	})

	It("erases the owner and returns 204", func() {
		req := jsonRequest(http.MethodPost, "/sessions", CreateSessionRequest{OwnerID: "acct_1", Device: "phone"})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		resp, err = server.app.Test(jsonRequest(http.MethodDelete, "/owners/acct_1", nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

		resp, err = server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/sessions", nil))
		Expect(err).NotTo(HaveOccurred())
		var body struct {
			Count int `json:"count"`
		}
		decodeBody(resp, &body)
		Expect(body.Count).To(BeZero())
	})
})
