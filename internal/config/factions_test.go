package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFactionTable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "factions.yaml", "1: undead\n3: illager\n")

	table, err := LoadFactionTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	name, ok := table.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, "illager", name)

	_, ok = table.Lookup(2)
	assert.False(t, ok)
}

func TestLoadFactionTable_Missing(t *testing.T) {
	table, err := LoadFactionTable(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestLoadFactionTable_BadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "factions.yaml", "1: [undead\n")
	_, err := LoadFactionTable(path)
	assert.Error(t, err)
}

func TestFactionTable_SnapshotIsCopy(t *testing.T) {
	table := NewFactionTable(map[int32]string{1: "undead"})
	snap := table.Snapshot()
	snap[1] = "villager"

	name, _ := table.Lookup(1)
	assert.Equal(t, "undead", name)
}

func TestFactionWatcher_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "factions.yaml", "1: undead\n")

	table, err := LoadFactionTable(path)
	require.NoError(t, err)

	w, err := NewFactionWatcher(path, table)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("1: villager\n2: undead\n"), 0o644))

	select {
	case n := <-w.Reloaded:
		assert.Equal(t, 2, n)
	case <-time.After(5 * time.Second):
		t.Fatal("faction table was not reloaded")
	}

	name, _ := table.Lookup(1)
	assert.Equal(t, "villager", name)

	cancel()
	require.NoError(t, <-done)
}
