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

var _ = Describe("Profile handlers", func() {
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

	addProfile := func(owner, id string) *http.Response {
		req := jsonRequest(http.MethodPost, "/owners/"+owner+"/profiles", AddProfileRequest{
			ID:      id,
			Payload: json.RawMessage(`{"year":2019,"make":"Subaru","model":"Outback"}`),
			Device:  "phone",
		})
		resp, err := server.app.Test(req)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	Describe("POST /owners/:id/profiles", func() {
		It("saves a profile and returns it", func() {
			resp := addProfile("acct_1", "")
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var p session.Profile
			decodeBody(resp, &p)
			Expect(p.ID).NotTo(BeEmpty())
			Expect(p.OwnerID).To(Equal("acct_1"))
		})

		It("requires a payload", func() {
			req := jsonRequest(http.MethodPost, "/owners/acct_1/profiles", AddProfileRequest{Device: "phone"})
			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("refuses guest-shaped owners", func() {
			resp := addProfile(session.NewGuestOwnerID(), "")
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("returns 409 at the cap under the rejection policy", func() {
			for i := 0; i < 10; i++ {
				Expect(addProfile("acct_1", fmt.Sprintf("p%d", i)).StatusCode).To(Equal(http.StatusCreated))
			}
			Expect(addProfile("acct_1", "p10").StatusCode).To(Equal(http.StatusConflict))
		})
	})

	Describe("GET /owners/:id/profiles", func() {
		It("lists the owner's profiles", func() {
			Expect(addProfile("acct_1", "p1").StatusCode).To(Equal(http.StatusCreated))
			Expect(addProfile("acct_1", "p2").StatusCode).To(Equal(http.StatusCreated))

			resp, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/profiles", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body struct {
				Count    int                `json:"count"`
				Profiles []*session.Profile `json:"profiles"`
			}
			decodeBody(resp, &body)
			Expect(body.Count).To(Equal(2))
		})
	})

	Describe("DELETE /owners/:id/profiles/:profileID", func() {
		It("removes the profile", func() {
			Expect(addProfile("acct_1", "p1").StatusCode).To(Equal(http.StatusCreated))

			resp, err := server.app.Test(jsonRequest(http.MethodDelete, "/owners/acct_1/profiles/p1?device=phone", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			list, err := server.app.Test(jsonRequest(http.MethodGet, "/owners/acct_1/profiles", nil))
			Expect(err).NotTo(HaveOccurred())
			var body struct {
				Count int `json:"count"`
			}
			decodeBody(list, &body)
			Expect(body.Count).To(BeZero())
		})
	})
})
