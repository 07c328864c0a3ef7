//go:build unix

package flock_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/horizon/internal/flock"
)

func openLockFile(t *testing.T) *os.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "horizon.lock")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- temp dir path
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExclusive(t *testing.T) {
	t.Parallel()

	t.Run("acquires and releases a lock", func(t *testing.T) {
		t.Parallel()
		f := openLockFile(t)

		require.NoError(t, flock.Exclusive(f.Fd()))
		require.NoError(t, flock.Unlock(f.Fd()))
	})

	t.Run("second holder is rejected without blocking", func(t *testing.T) {
		t.Parallel()
		f1 := openLockFile(t)
		require.NoError(t, flock.Exclusive(f1.Fd()))
		defer func() { _ = flock.Unlock(f1.Fd()) }()

		f2, err := os.OpenFile(f1.Name(), os.O_RDWR, 0o600) // #nosec G304 -- temp dir path
		require.NoError(t, err)
		defer func() { _ = f2.Close() }()

		require.Error(t, flock.Exclusive(f2.Fd()))
	})

	t.Run("lock can be reacquired after unlock", func(t *testing.T) {
		t.Parallel()
		f := openLockFile(t)

		require.NoError(t, flock.Exclusive(f.Fd()))
		require.NoError(t, flock.Unlock(f.Fd()))
		require.NoError(t, flock.Exclusive(f.Fd()))
		require.NoError(t, flock.Unlock(f.Fd()))
	})
}
