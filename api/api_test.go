package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/core"
	"github.com/motorlogic/garage/pkg/lifecycle"
	"github.com/motorlogic/garage/pkg/logger"
	"github.com/motorlogic/garage/pkg/memctx"
	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/inmemory"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Suite")
}

// newTestServer wires a server over the in-memory store.
func newTestServer() (*Server, *gsync.Engine) {
	log := logger.NewNop()
	store := inmemory.NewDriver(storage.DefaultOptions())
	engine := gsync.NewEngine(gsync.Config{Ops: store, Logger: log})
	builder, err := memctx.NewBuilder(store, memctx.Config{}, nil, log)
	Expect(err).NotTo(HaveOccurred())
	facade := core.New(store, engine, builder, log)
	facade.AttachRetentionPolicy(lifecycle.NewSweeper(store, lifecycle.Config{Logger: log}))
	return NewServer(Config{ListenAddr: ":0"}, facade, log), engine
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, body)
	Expect(err).NotTo(HaveOccurred())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(resp *http.Response, into any) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(json.Unmarshal(raw, into)).To(Succeed())
}

var _ = Describe("Session handlers", func() {
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

	Describe("GET /ping", func() {
		It("answers pong", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/ping", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})

	Describe("POST /sessions", func() {
		It("starts an anonymous ephemeral session when no owner is given", func() {
			sess := createSession("")
			Expect(sess.OwnerID).To(HavePrefix(session.GuestPrefix))
			Expect(sess.Tier).To(Equal(session.TierEphemeral))
			Expect(sess.ExpiresAt).NotTo(BeNil())
		})

		It("starts a persistent session for an account owner", func() {
			sess := createSession("acct_1")
			Expect(sess.Tier).To(Equal(session.TierPersistent))
			Expect(sess.ExpiresAt).To(BeNil())
		})

		It("rejects a tier the owner id contradicts", func() {
			req := jsonRequest(http.MethodPost, "/sessions", CreateSessionRequest{
				OwnerID: "acct_1",
				Tier:    session.TierEphemeral,
				Device:  "phone",
			})
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /sessions/:id", func() {
		It("returns the session", func() {
			sess := createSession("acct_1")

			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/sessions/"+sess.ID, nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var got session.Session
			decodeBody(resp, &got)
			Expect(got.ID).To(Equal(sess.ID))
		})

		It("returns 404 for an unknown id", func() {
			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/sessions/nope", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /sessions/:id/turns", func() {
		It("stores the exchange and derives a title", func() {
			sess := createSession("acct_1")

			req := jsonRequest(http.MethodPost, "/sessions/"+sess.ID+"/turns", CommitTurnRequest{
				UserMessage:      session.Message{Content: "Car pulls left when braking"},
				AssistantMessage: session.Message{Content: "Check for a sticking caliper"},
				Device:           "phone",
			})
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			getResp, err := server.app.Test(jsonRequest(http.MethodGet, "/sessions/"+sess.ID, nil))
			Expect(err).NotTo(HaveOccurred())
			var got session.Session
			decodeBody(getResp, &got)
			Expect(got.Messages).To(HaveLen(2))
			Expect(got.Title).To(Equal("Car pulls left when braking"))
		})

		It("rejects an empty turn", func() {
			sess := createSession("acct_1")

			req := jsonRequest(http.MethodPost, "/sessions/"+sess.ID+"/turns", CommitTurnRequest{Device: "phone"})
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("state endpoints", func() {
		It("round-trips a state slot", func() {
			sess := createSession("acct_1")

			put := jsonRequest(http.MethodPut, "/sessions/"+sess.ID+"/state/prefs.units", SetStateRequest{
				Value:  json.RawMessage(`{"system":"metric"}`),
				Device: "phone",
			})
			resp, err := server.app.Test(put)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			get := jsonRequest(http.MethodGet, "/sessions/"+sess.ID+"/state/prefs.units", nil)
			resp, err = server.app.Test(get)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body struct {
				Key   string          `json:"key"`
				Value json.RawMessage `json:"value"`
			}
			decodeBody(resp, &body)
			Expect(body.Key).To(Equal("prefs.units"))
			Expect(body.Value).To(MatchJSON(`{"system":"metric"}`))
		})

		It("rejects a malformed well-known value", func() {
			sess := createSession("acct_1")

			put := jsonRequest(http.MethodPut, "/sessions/"+sess.ID+"/state/prefs.units", SetStateRequest{
				Value:  json.RawMessage(`{"system":"cubits"}`),
				Device: "phone",
			})
			resp, err := server.app.Test(put)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /sessions/:id/claim", func() {
		It("migrates a guest session to the account", func() {
			sess := createSession("")

			req := jsonRequest(http.MethodPost, "/sessions/"+sess.ID+"/claim", ClaimRequest{NewOwnerID: "acct_9", Device: "phone"})
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var claimed session.Session
			decodeBody(resp, &claimed)
			Expect(claimed.OwnerID).To(Equal("acct_9"))
			Expect(claimed.Tier).To(Equal(session.TierPersistent))
		})

		It("returns 409 when the session belongs to another account", func() {
			sess := createSession("")

			first := jsonRequest(http.MethodPost, "/sessions/"+sess.ID+"/claim", ClaimRequest{NewOwnerID: "acct_9", Device: "phone"})
			resp, err := server.app.Test(first)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			second := jsonRequest(http.MethodPost, "/sessions/"+sess.ID+"/claim", ClaimRequest{NewOwnerID: "acct_10", Device: "tablet"})
			resp, err = server.app.Test(second)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusConflict))
		})
	})

	Describe("DELETE /sessions/:id", func() {
		It("ends the session and tolerates repeats", func() {
			sess := createSession("acct_1")

			resp, err := server.app.Test(jsonRequest(http.MethodDelete, "/sessions/"+sess.ID+"?device=phone", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			resp, err = server.app.Test(jsonRequest(http.MethodDelete, "/sessions/"+sess.ID+"?device=phone", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
		})
	})

	Describe("GET /sessions/:id/context", func() {
		It("assembles the bounded context", func() {
			sess := createSession("acct_1")

			turn := jsonRequest(http.MethodPost, "/sessions/"+sess.ID+"/turns", CommitTurnRequest{
				UserMessage:      session.Message{Content: "hello"},
				AssistantMessage: session.Message{Content: "hi"},
				Device:           "phone",
			})
			resp, err := server.app.Test(turn)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			resp, err = server.app.Test(jsonRequest(http.MethodGet, "/sessions/"+sess.ID+"/context", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var mctx memctx.Context
			decodeBody(resp, &mctx)
			Expect(mctx.SessionID).To(Equal(sess.ID))
			Expect(mctx.Messages).To(HaveLen(2))
		})
	})

	Describe("GET /owners/:id/sessions", func() {
		It("lists only the owner's sessions", func() {
			createSession("acct_1")
			createSession("acct_1")
			createSession("acct_2")

			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/sessions", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body struct {
				Count    int                `json:"count"`
				Sessions []*session.Session `json:"sessions"`
			}
			decodeBody(resp, &body)
			Expect(body.Count).To(Equal(2))
		})
	})
})
