package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mobpatch/internal/config"
	"github.com/udisondev/mobpatch/internal/testutil"
)

func TestFactionRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewFactionRepository(pool)
	ctx := context.Background()

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, repo.UpsertAll(ctx, map[int32]string{1: "undead", 3: "illager"}))
	require.NoError(t, repo.Upsert(ctx, 1, "piglin"))
	require.NoError(t, repo.Upsert(ctx, 4, "villager"))

	got, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int32]string{1: "piglin", 3: "illager", 4: "villager"}, got)

	require.NoError(t, repo.Delete(ctx, 3))
	got, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNew_BadDSN(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}
	cfg := config.DatabaseConfig{Host: "127.0.0.1", Port: 1, User: "nobody", DBName: "none", SSLMode: "disable"}
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := testutil.SetupTestDB(t)

	version, err := Migrate(context.Background(), pool)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
}
