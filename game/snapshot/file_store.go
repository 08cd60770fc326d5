package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one <slot>.json file per save slot in a directory
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create saves directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes blob through a temp file and rename so a failed write
// leaves the previous snapshot intact
func (fs *FileStore) Save(slot string, blob []byte) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, fs.path(slot)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Load reads the blob for slot
func (fs *FileStore) Load(slot string) ([]byte, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fs.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// Exists checks if a snapshot file exists for slot
func (fs *FileStore) Exists(slot string) bool {
	if ValidateSlot(slot) != nil {
		return false
	}
	_, err := os.Stat(fs.path(slot))
	return err == nil
}

// Delete removes the snapshot for slot
func (fs *FileStore) Delete(slot string) error {
	if !fs.Exists(slot) {
		return ErrNoSnapshot
	}
	if err := os.Remove(fs.path(slot)); err != nil {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

// List returns every slot with a snapshot file
func (fs *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read saves directory: %w", err)
	}

	var slots []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		slot := strings.TrimSuffix(name, ".json")
		if ValidateSlot(slot) == nil {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func (fs *FileStore) path(slot string) string {
	return filepath.Join(fs.dir, slot+".json")
}
