package snapshot

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/wricardo/harvest-haven/game/engine"
)

// DefaultSlot is used when a caller does not name a save slot
const DefaultSlot = "default"

// ErrInvalidSlot marks slot names outside [a-zA-Z0-9_-]{1,64}
var ErrInvalidSlot = errors.New("invalid save slot")

var slotPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// SlotStore persists snapshot blobs under named slots.
// Load returns ErrNoSnapshot for slots that were never saved.
type SlotStore interface {
	Save(slot string, blob []byte) error
	Load(slot string) ([]byte, error)
	Exists(slot string) bool
	Delete(slot string) error
}

// ValidateSlot rejects slot names that are unsafe as file or property names
func ValidateSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w %q", ErrInvalidSlot, slot)
	}
	return nil
}

// SaveGame encodes player and farm into slot
func SaveGame(store SlotStore, slot string, player *engine.Player, farm *engine.Farm) error {
	blob, err := Encode(player, farm)
	if err != nil {
		return err
	}
	if err := store.Save(slot, blob); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	return nil
}

// LoadGame reads and decodes slot. A missing slot yields ErrNoSnapshot.
func LoadGame(store SlotStore, slot string) (*engine.Player, *engine.Farm, error) {
	blob, err := store.Load(slot)
	if err != nil {
		return nil, nil, err
	}
	return Decode(blob)
}
