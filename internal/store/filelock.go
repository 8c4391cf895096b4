package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Constants for file locking.
const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// Locker serializes read-modify-write cycles on the todo collection.
type Locker interface {
	Lock(ctx context.Context) error
	Unlock() error
}

// FileLocker is a cross-process exclusive lock on a sidecar file, so two
// terminals editing the same store cannot interleave their writes.
type FileLocker struct {
	// mu serializes goroutines; flock treats a re-lock from the same
	// process as already held.
	mu    sync.Mutex
	flock *flock.Flock
}

// NewFileLocker returns a lock backed by the file at path. The file is
// created on first use.
func NewFileLocker(path string) *FileLocker {
	return &FileLocker{flock: flock.New(path)}
}

// Lock acquires the lock, polling every lockRetryDelay until ctx is done.
// A ctx without a deadline is bounded by lockTimeout.
func (l *FileLocker) Lock(ctx context.Context) error {
	l.mu.Lock()
	if err := l.lockFile(ctx); err != nil {
		l.mu.Unlock()
		return err
	}
	return nil
}

func (l *FileLocker) lockFile(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lockTimeout)
		defer cancel()
	}

	locked, err := l.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquiring lock %s: %w", l.flock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("acquiring lock %s: not acquired", l.flock.Path())
	}
	return nil
}

// Unlock releases the lock.
func (l *FileLocker) Unlock() error {
	defer l.mu.Unlock()
	return l.flock.Unlock()
}

// mutexLocker is the in-process fallback for stores with no file on disk.
type mutexLocker struct {
	mu sync.Mutex
}

func (l *mutexLocker) Lock(context.Context) error {
	l.mu.Lock()
	return nil
}

func (l *mutexLocker) Unlock() error {
	l.mu.Unlock()
	return nil
}
