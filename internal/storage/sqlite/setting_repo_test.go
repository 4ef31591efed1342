package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingRepository(openTestDB(t), testLogger())

	require.NoError(t, repo.Put(ctx, "base_currency", "USD"))

	value, err := repo.Get(ctx, "base_currency")
	require.NoError(t, err)
	assert.Equal(t, "USD", value)

	// Put replaces, it does not duplicate
	require.NoError(t, repo.Put(ctx, "base_currency", "EUR"))

	value, err = repo.Get(ctx, "base_currency")
	require.NoError(t, err)
	assert.Equal(t, "EUR", value)

	settings, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, settings, 1)

	value, err = repo.Get(ctx, "missing_key")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}
