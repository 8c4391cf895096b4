package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// DefaultStart is the instant fake clocks start at.
var DefaultStart = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

// NewTestRepository returns a repository over a fresh in-memory SQLite
// store and the fake clock driving it.
func NewTestRepository(t *testing.T) (*store.Repository, *Clock) {
	t.Helper()

	clock := NewClock(DefaultStart)
	repo := store.NewRepository(
		store.NewAdapter(NewTestStore(t), logging.Discard()),
		store.WithClock(clock.Now),
		store.WithLogger(logging.Discard()),
	)
	return repo, clock
}
