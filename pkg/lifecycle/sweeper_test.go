package lifecycle

import (
	"context"
	"errors"
	stdsync "sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motorlogic/garage/pkg/logger"
)

func TestLifecycle(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lifecycle Suite")
}

// stubSweeper records the purge calls the sweeper makes.
type stubSweeper struct {
	mu               stdsync.Mutex
	expiredAt        []time.Time
	inactiveCutoffs  map[string]time.Time
	opCutoffs        []time.Time
	failExpiredPurge error
}

func newStubSweeper() *stubSweeper {
	return &stubSweeper{inactiveCutoffs: make(map[string]time.Time)}
}

func (s *stubSweeper) PurgeExpiredSessions(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failExpiredPurge != nil {
		return 0, s.failExpiredPurge
	}
	s.expiredAt = append(s.expiredAt, now)
	return 2, nil
}

func (s *stubSweeper) PurgeSessionsInactiveSince(_ context.Context, ownerID string, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inactiveCutoffs[ownerID] = cutoff
	return 1, nil
}

func (s *stubSweeper) PurgeOpsBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opCutoffs = append(s.opCutoffs, cutoff)
	return 3, nil
}

func (s *stubSweeper) expiredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiredAt)
}

var _ = Describe("Sweeper", func() {
	var (
		ctx   context.Context
		store *stubSweeper
		now   time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newStubSweeper()
		now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})

	newSweeper := func(cfg Config) *Sweeper {
		cfg.Logger = logger.NewNop()
		s := NewSweeper(store, cfg)
		s.now = func() time.Time { return now }
		return s
	}

	It("purges expired sessions at the current time", func() {
		s := newSweeper(Config{})
		Expect(s.Sweep(ctx)).To(Succeed())
		Expect(store.expiredAt).To(Equal([]time.Time{now}))
	})

	It("collects ops past the configured retention window", func() {
		s := newSweeper(Config{OpRetention: 48 * time.Hour})
		Expect(s.Sweep(ctx)).To(Succeed())
		Expect(store.opCutoffs).To(Equal([]time.Time{now.Add(-48 * time.Hour)}))
	})

	It("defaults the op retention to seven days", func() {
		s := newSweeper(Config{})
		Expect(s.Sweep(ctx)).To(Succeed())
		Expect(store.opCutoffs).To(Equal([]time.Time{now.Add(-7 * 24 * time.Hour)}))
	})

	It("applies per-owner retention preferences", func() {
		s := newSweeper(Config{})
		s.SetOwnerRetention("acct_1", 30*24*time.Hour)
		s.SetOwnerRetention("acct_2", 24*time.Hour)

		Expect(s.Sweep(ctx)).To(Succeed())
		Expect(store.inactiveCutoffs).To(HaveKeyWithValue("acct_1", now.Add(-30*24*time.Hour)))
		Expect(store.inactiveCutoffs).To(HaveKeyWithValue("acct_2", now.Add(-24*time.Hour)))
	})

	It("removes a retention preference set to zero", func() {
		s := newSweeper(Config{})
		s.SetOwnerRetention("acct_1", time.Hour)
		s.SetOwnerRetention("acct_1", 0)

		Expect(s.Sweep(ctx)).To(Succeed())
		Expect(store.inactiveCutoffs).To(BeEmpty())
	})

	It("propagates purge failures", func() {
		store.failExpiredPurge = errors.New("backend down")
		s := newSweeper(Config{})
		Expect(s.Sweep(ctx)).To(MatchError("backend down"))
	})

	It("stops cleanly after starting", func() {
		s := newSweeper(Config{Interval: time.Millisecond})
		s.Start()
		Eventually(store.expiredCount).Should(BeNumerically(">", 0))
		s.Stop()
	})
})
