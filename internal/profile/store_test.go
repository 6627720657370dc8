package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencustoms/boe-copilot/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestStore_LoadWithoutSavedProfile(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := &ImporterProfile{
		ImporterName: "Acme Imports Pvt Ltd",
		IECNumber:    "0123456789",
		GSTIN:        "27AAAAA0000A1Z5",
		ADCode:       "123456",
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, loaded)
}

func TestStore_SaveOverwritesPrevious(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &ImporterProfile{ImporterName: "Old Name"}))
	require.NoError(t, store.Save(ctx, &ImporterProfile{ImporterName: "New Name", IECNumber: "987"}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "New Name", loaded.ImporterName)
	assert.Equal(t, "987", loaded.IECNumber)
}

func TestStore_SaveNilRejected(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), nil))
}
