// Package lock provides an advisory, non-blocking per-environment lock so
// two runs for the same project cannot reconcile the same directories at
// once. On Windows the lock is a no-op.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrHeld is returned when another process holds the lock.
var ErrHeld = errors.New("lock is held by another process")

// Lock is an acquired lock file.
type Lock struct {
	f    *os.File
	path string
}

// Path returns the lock file path for identifier inside storeDir.
func Path(storeDir, identifier string) string {
	return filepath.Join(storeDir, "."+identifier+".lock")
}

// Acquire opens path and takes an exclusive lock on it without blocking.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file %s: %w", path, err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}
	return &Lock{f: f, path: path}, nil
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	defer func() { l.f = nil }()

	// Remove before unlocking so a waiter never locks an unlinked inode
	// that a third process then recreates.
	os.Remove(l.path)
	if err := unlockFile(l.f); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}
