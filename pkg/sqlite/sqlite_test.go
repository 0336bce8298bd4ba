package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcbc/crewboard/pkg/db/dbtest"
)

func TestSQLiteStore(t *testing.T) {
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "crewboard.db"))
	require.NoError(t, err)
	defer store.Close()

	dbtest.Run(t, store)
}

func TestOpen_ReappliesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crewboard.db")

	first, err := Open(context.Background(), path)
	require.NoError(t, err)
	first.Close()

	second, err := Open(context.Background(), path)
	require.NoError(t, err)
	second.Close()
}
