package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nhle/todo/internal/model"
)

// Open builds the KV for cfg's backend and a Repository over it that
// locks a sidecar "<path>.tx.lock" file around every mutation. The
// returned KV must be closed by the caller.
func Open(cfg *model.AppConfig, logger *log.Logger) (*Repository, KV, error) {
	path := cfg.DataPath()

	var kv KV
	switch cfg.Storage.Backend {
	case model.BackendFile:
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		kv = fs
	case model.BackendSQLite, "":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		kv = s
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	logger.Debug("opened store", "backend", cfg.Storage.Backend, "path", path)

	repo := NewRepository(
		NewAdapter(kv, logger),
		WithLocker(NewFileLocker(path+".tx.lock")),
		WithLogger(logger),
	)
	return repo, kv, nil
}
