package mux

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// acquireRunLock takes an advisory lock in the work directory so two batch
// runs cannot interleave in the same working tree. The returned release
// function is safe to call once.
func acquireRunLock(workDir string) (func(), error) {
	lockPath := filepath.Join(workDir, ".animux.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another animux run holds %s", lockPath)
	}
	return func() { _ = lock.Unlock() }, nil
}
