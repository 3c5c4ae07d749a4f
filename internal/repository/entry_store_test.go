package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tagebuch/internal/model"
	"tagebuch/internal/repository"
	"tagebuch/internal/repository/mock"
	"tagebuch/internal/repository/testutil"
)

func TestEntryStore_LoadEmpty(t *testing.T) {
	store := repository.NewEntryStore(repository.NewSlotRepository(testutil.NewTestDB(t)))

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestEntryStore_RoundTrip(t *testing.T) {
	store := repository.NewEntryStore(repository.NewSlotRepository(testutil.NewTestDB(t)))
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	saved := []model.Entry{
		{ID: "a", Title: "Montag", Body: "Ich bin **müde**.", Correction: "Ich bin müde.", CreatedAt: created, UpdatedAt: &updated},
		{ID: "b", Body: "Heute regnet es.", Image: "data:image/png;base64,iVBORw0KGgo=", CreatedAt: created.Add(24 * time.Hour)},
	}

	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, saved[0].ID, loaded[0].ID)
	require.Equal(t, saved[0].Correction, loaded[0].Correction)
	require.True(t, saved[0].CreatedAt.Equal(loaded[0].CreatedAt))
	require.NotNil(t, loaded[0].UpdatedAt)
	require.True(t, updated.Equal(*loaded[0].UpdatedAt))
	require.Equal(t, saved[1].Image, loaded[1].Image)
	require.Nil(t, loaded[1].UpdatedAt)
}

func TestEntryStore_SaveNilWritesEmptyArray(t *testing.T) {
	database := testutil.NewTestDB(t)
	slots := repository.NewSlotRepository(database)
	store := repository.NewEntryStore(slots)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, nil))

	slot, err := slots.Get(ctx, repository.EntriesSlotKey)
	require.NoError(t, err)
	require.Equal(t, "[]", slot.Value)
}

func TestEntryStore_CorruptDataLoadsEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedSlot(t, database, repository.EntriesSlotKey, `[{"id": "a", "title": `)
	store := repository.NewEntryStore(repository.NewSlotRepository(database))

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestEntryStore_MissingFieldsDecodeToZeroValues(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedSlot(t, database, repository.EntriesSlotKey, `[{"id":"old","text":"legacy field"}]`)
	store := repository.NewEntryStore(repository.NewSlotRepository(database))

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "old", entries[0].ID)
	require.Empty(t, entries[0].Body)
	require.True(t, entries[0].CreatedAt.IsZero())
}

func TestEntryStore_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	slots := mock.NewMockSlotRepository(ctrl)
	store := repository.NewEntryStore(slots)
	ctx := context.Background()

	slots.EXPECT().Get(ctx, repository.EntriesSlotKey).Return(nil, errors.New("disk I/O error"))
	_, err := store.Load(ctx)
	require.ErrorContains(t, err, "read entries slot")

	slots.EXPECT().Set(ctx, repository.EntriesSlotKey, "[]").Return(errors.New("database is locked"))
	err = store.Save(ctx, []model.Entry{})
	require.ErrorContains(t, err, "write entries slot")
}
