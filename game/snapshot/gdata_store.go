package snapshot

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

const snapshotsObject = "snapshots"

// GdataStore keeps save slots as properties of one gdata object,
// stored in the platform's per-user data directory
type GdataStore struct {
	manager *gdata.Manager
}

// OpenGdataStore opens the gdata manager for appName
func OpenGdataStore(appName string) (*GdataStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return NewGdataStore(manager), nil
}

// NewGdataStore wraps an already opened manager
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	return &GdataStore{manager: manager}
}

// Save stores blob under slot
func (gs *GdataStore) Save(slot string, blob []byte) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if len(blob) == 0 {
		return fmt.Errorf("refusing to save empty snapshot")
	}
	return gs.manager.SaveObjectProp(snapshotsObject, slot, blob)
}

// Load reads the blob for slot
func (gs *GdataStore) Load(slot string) ([]byte, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	if !gs.manager.ObjectPropExists(snapshotsObject, slot) {
		return nil, ErrNoSnapshot
	}
	data, err := gs.manager.LoadObjectProp(snapshotsObject, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}
	return data, nil
}

// Exists checks if slot holds a snapshot
func (gs *GdataStore) Exists(slot string) bool {
	_, err := gs.Load(slot)
	return err == nil
}

// Delete clears slot. An empty property reads back as missing.
func (gs *GdataStore) Delete(slot string) error {
	if !gs.Exists(slot) {
		return ErrNoSnapshot
	}
	if err := gs.manager.SaveObjectProp(snapshotsObject, slot, nil); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
