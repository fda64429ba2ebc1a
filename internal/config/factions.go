package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// FactionTable maps mob template ids to faction names.
// Safe for concurrent use; Replace swaps the whole table.
type FactionTable struct {
	mu      sync.RWMutex
	entries map[int32]string
}

// NewFactionTable creates a table from entries (copied).
func NewFactionTable(entries map[int32]string) *FactionTable {
	t := &FactionTable{}
	t.Replace(entries)
	return t
}

// Lookup returns the faction name of a template.
func (t *FactionTable) Lookup(templateID int32) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.entries[templateID]
	return name, ok
}

// Replace swaps the table contents.
func (t *FactionTable) Replace(entries map[int32]string) {
	cp := make(map[int32]string, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	t.mu.Lock()
	t.entries = cp
	t.mu.Unlock()
}

// Snapshot returns a copy of the table.
func (t *FactionTable) Snapshot() map[int32]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cp := make(map[int32]string, len(t.entries))
	for k, v := range t.entries {
		cp[k] = v
	}
	return cp
}

// Len returns the number of entries.
func (t *FactionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// LoadFactionEntries reads a `template_id: faction` YAML mapping.
// A missing file yields an empty mapping.
func LoadFactionEntries(path string) (map[int32]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int32]string{}, nil
		}
		return nil, fmt.Errorf("reading faction table %s: %w", path, err)
	}

	entries := make(map[int32]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing faction table %s: %w", path, err)
	}
	return entries, nil
}

// LoadFactionTable reads a faction table file.
func LoadFactionTable(path string) (*FactionTable, error) {
	entries, err := LoadFactionEntries(path)
	if err != nil {
		return nil, err
	}
	return NewFactionTable(entries), nil
}
