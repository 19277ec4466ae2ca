package ledger

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_RoundTrip(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	store, err := NewPostgresStore(ctx, databaseURL)
	require.NoError(t, err)
	defer store.Close()

	rows := sampleRows()
	require.NoError(t, store.Save(ctx, rows))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, loaded)

	require.NoError(t, store.Save(ctx, rows[1:]))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows[1:], loaded)

	require.NoError(t, store.Save(ctx, nil))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_applications.sql", entries[0].Name())
}
