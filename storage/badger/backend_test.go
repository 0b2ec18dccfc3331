package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", BackendOptions{InMemory: true})
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, BackendOptions{})
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_ReadOnlyMissingSnapshot(t *testing.T) {
	missing := t.TempDir() + "/no-such-snapshot"
	_, err := OpenBackend(missing, BackendOptions{ReadOnly: true})
	require.Error(t, err)
}

func TestOpenBackend_ReadOnlyExisting(t *testing.T) {
	tmpDir := t.TempDir()

	// Write something first so the snapshot exists on disk.
	backend, err := OpenBackend(tmpDir, BackendOptions{})
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	ro, err := OpenBackend(tmpDir, BackendOptions{ReadOnly: true})
	require.NoError(t, err)
	defer ro.Close()

	assert.False(t, ro.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", BackendOptions{InMemory: true})
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}
