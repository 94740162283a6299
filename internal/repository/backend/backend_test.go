package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essential-notes/internal/config"
	"essential-notes/internal/model"
)

func TestOpen_Memory(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), &config.ConfigRemote{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer closeFn()

	_, err = repo.Create(context.Background(), model.NewNoteInput("A", ""))
	require.NoError(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	repo, closeFn, err := Open(context.Background(), &config.ConfigRemote{Driver: config.DriverSQLite, Path: path, Table: "notes"})
	require.NoError(t, err)
	defer closeFn()

	notes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestOpen_PostgRESTDoesNotDial(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), &config.ConfigRemote{
		Driver:  config.DriverPostgREST,
		URL:     "http://127.0.0.1:1",
		AnonKey: "key",
	})
	require.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NoError(t, closeFn())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.ConfigRemote{Driver: "mongo"})
	assert.Error(t, err)
}
