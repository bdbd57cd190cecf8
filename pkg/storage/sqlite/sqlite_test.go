package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/storage"
	"github.com/motorlogic/garage/pkg/storage/sqlite"
)

func TestSqlite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SQLite Driver Suite")
}

var _ = Describe("Driver", func() {
	var (
		ctx    context.Context
		driver *sqlite.Driver
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		driver, err = sqlite.NewDriver(":memory:", storage.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	Describe("NewDriver", func() {
		It("creates a driver with a file database", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "garage.sqlite")

			d, err := sqlite.NewDriver(dbPath, storage.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			defer d.Close()

			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("session round-trip", func() {
		It("stores and retrieves a session with its messages", func() {
			s, err := driver.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			_, err = driver.AppendMessage(ctx, s.ID, session.Message{Role: session.RoleUser, Content: "hello"}, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = driver.AppendMessage(ctx, s.ID, session.Message{Role: session.RoleAssistant, Content: "hi"}, "phone")
			Expect(err).NotTo(HaveOccurred())

			got, err := driver.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Messages).To(HaveLen(2))
			Expect(got.Messages[0].Content).To(Equal("hello"))
			Expect(got.Messages[1].Content).To(Equal("hi"))
		})

		It("deduplicates a re-delivered message by id", func() {
			s, err := driver.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			_, err = driver.AppendMessage(ctx, s.ID, session.Message{ID: "m1", Role: session.RoleUser, Content: "first"}, "phone")
			Expect(err).NotTo(HaveOccurred())
			_, err = driver.AppendMessage(ctx, s.ID, session.Message{ID: "m1", Role: session.RoleUser, Content: "second"}, "phone")
			Expect(err).NotTo(HaveOccurred())

			got, err := driver.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Messages).To(HaveLen(1))
			Expect(got.Messages[0].Content).To(Equal("first"))
		})
	})

	Describe("transcript ordering", func() {
		It("interleaves replayed appends by receipt order, not their timestamps", func() {
			s, err := driver.CreateSession(ctx, "acct_1", session.TierPersistent, "phone")
			Expect(err).NotTo(HaveOccurred())

			_, err = driver.AppendMessage(ctx, s.ID, session.Message{ID: "m-live", Role: session.RoleUser, Content: "seen live"}, "phone")
			Expect(err).NotTo(HaveOccurred())

			// An offline append arrives later carrying an hour-old timestamp.
			stale := session.Message{
				ID:        "m-replayed",
				Role:      session.RoleUser,
				Content:   "queued an hour ago",
				CreatedAt: time.Now().Add(-time.Hour),
			}
			_, err = driver.AppendMessage(ctx, s.ID, stale, "tablet")
			Expect(err).NotTo(HaveOccurred())

			// The already-observed prefix must not shift.
			got, err := driver.GetSession(ctx, s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Messages).To(HaveLen(2))
			Expect(got.Messages[0].ID).To(Equal("m-live"))
			Expect(got.Messages[1].ID).To(Equal("m-replayed"))
		})
	})
})
