package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wricardo/harvest-haven/game/engine"
	"github.com/wricardo/harvest-haven/game/service"
	"github.com/wricardo/harvest-haven/game/snapshot"
)

// FilePersistence implements SessionPersistence with one JSON file per session,
// written atomically through a snapshot.FileStore
type FilePersistence struct {
	files         *snapshot.FileStore
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	files, err := snapshot.NewFileStore(sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		files:         files,
		configManager: configManager,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	// Get config ID from display name
	configID, err := fp.getConfigIDFromName(session.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %w", err)
	}

	state := session.Engine.GetState()
	blob, err := snapshot.Encode(state.Player, state.Farm)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     configID, // Store config ID, not display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Day:            state.Day,
		TotalActions:   state.TotalActions,
		Snapshot:       blob,
		History:        state.History,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := fp.files.Save(session.ID, jsonData); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves a session from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	jsonData, err := fp.files.Load(id)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	gameConfig, err := fp.configManager.LoadConfig(data.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
	}

	gameEngine, err := engine.NewEngine(gameConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	player, farm, err := snapshot.Decode(data.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	state := engine.InitGameStateFromConfig(gameConfig)
	state.Player = player
	state.Farm = farm
	if data.Day > 0 {
		state.Day = data.Day
	}
	state.TotalActions = data.TotalActions
	if data.History != nil {
		state.History = data.History
	}
	if n := len(state.History); n > 0 {
		state.LastEvent = state.History[n-1].Event
	}
	state.Message = fmt.Sprintf("Welcome back! Day %d.", state.Day)

	if err := gameEngine.SetState(state); err != nil {
		return nil, fmt.Errorf("failed to set game state: %w", err)
	}

	session := &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		Config:         gameConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}

	return session, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if err := fp.files.Delete(id); err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	ids, err := fp.files.List()
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}
	return ids, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	return fp.files.Exists(id)
}

// getConfigIDFromName returns the config ID (filename without extension) from display name
func (fp *FilePersistence) getConfigIDFromName(displayName string) (string, error) {
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	// If not found, assume the displayName is already the config ID
	return displayName, nil
}
