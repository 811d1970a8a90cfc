// Package fixture serves a static inventory snapshot. It backs local
// development and the search pipeline's tests, and is the fallback inventory
// source when no database is configured.
package fixture

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/types"
)

//go:embed spaces.json
var spacesJSON []byte

var _ store.InventoryProvider = (*Inventory)(nil)

// Inventory is an immutable in-memory inventory loaded from the embedded
// snapshot or supplied directly.
type Inventory struct {
	mu     sync.RWMutex
	spaces []types.ParkingSpace
}

// NewInventory loads the embedded snapshot.
func NewInventory() (*Inventory, error) {
	var spaces []types.ParkingSpace
	if err := json.Unmarshal(spacesJSON, &spaces); err != nil {
		return nil, fmt.Errorf("failed to parse embedded inventory: %w", err)
	}
	return &Inventory{spaces: spaces}, nil
}

// NewInventoryFromSpaces wraps an explicit set of records, for tests.
func NewInventoryFromSpaces(spaces []types.ParkingSpace) *Inventory {
	return &Inventory{spaces: spaces}
}

// GetAllSpaces returns a copy of the snapshot so callers cannot mutate it.
func (i *Inventory) GetAllSpaces(_ context.Context) ([]types.ParkingSpace, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]types.ParkingSpace, len(i.spaces))
	copy(out, i.spaces)
	return out, nil
}
