package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Snapshots are plain JSON files holding a list of entities, used to export
// a fetched list and to re-create it elsewhere.

// DefaultSnapshotFile is used when no path is given.
const DefaultSnapshotFile = "todos.json"

// LoadSnapshot reads a list from path. A missing file is an empty list.
func LoadSnapshot[T any](path string) ([]T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveSnapshot writes items to path as indented JSON.
func SaveSnapshot[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
