package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tagebuch/internal/repository"
	"tagebuch/internal/repository/testutil"
)

func TestSlotRepository_GetMissing(t *testing.T) {
	repo := repository.NewSlotRepository(testutil.NewTestDB(t))

	slot, err := repo.Get(context.Background(), "correction.api_key")
	require.NoError(t, err)
	require.Nil(t, slot)
}

func TestSlotRepository_SetGetOverwrite(t *testing.T) {
	repo := repository.NewSlotRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "correction.model", "gpt-4o-mini"))
	require.NoError(t, repo.Set(ctx, "correction.model", "gpt-4.1-mini"))

	slot, err := repo.Get(ctx, "correction.model")
	require.NoError(t, err)
	require.NotNil(t, slot)
	require.Equal(t, "gpt-4.1-mini", slot.Value)
	require.False(t, slot.UpdatedAt.IsZero())
}

func TestSlotRepository_GetByPrefix(t *testing.T) {
	repo := repository.NewSlotRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "correction.provider", "openai"))
	require.NoError(t, repo.Set(ctx, "correction.model", "gpt-4o-mini"))
	require.NoError(t, repo.Set(ctx, "correction_extra", "x"))
	require.NoError(t, repo.Set(ctx, repository.EntriesSlotKey, "[]"))

	slots, err := repo.GetByPrefix(ctx, "correction.")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, "correction.model", slots[0].Key)
	require.Equal(t, "correction.provider", slots[1].Key)
}

func TestSlotRepository_Delete(t *testing.T) {
	repo := repository.NewSlotRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "correction.api_key", "sk-secret"))
	require.NoError(t, repo.Delete(ctx, "correction.api_key"))
	require.NoError(t, repo.Delete(ctx, "correction.api_key"), "deleting twice is harmless")

	slot, err := repo.Get(ctx, "correction.api_key")
	require.NoError(t, err)
	require.Nil(t, slot)
}
