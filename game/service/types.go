package service

import (
	"time"

	"github.com/wricardo/harvest-haven/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResponse contains the result of one field or shop action
type ActionResponse struct {
	engine.ActionResult
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// DayResult contains what happened when the day ended
type DayResult struct {
	Report    engine.DayReport  `json:"report"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events"`
}

// SaveResult reports a checkpoint write
type SaveResult struct {
	Slot    string `json:"slot"`
	Saved   bool   `json:"saved"`
	Message string `json:"message"`
}

// LoadResult reports a checkpoint restore. Loaded is false when the slot was empty.
type LoadResult struct {
	Slot      string            `json:"slot"`
	Loaded    bool              `json:"loaded"`
	Message   string            `json:"message"`
	GameState *engine.GameState `json:"game_state"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "plant", "water", "fertilize", "harvest", "buy", "rain", "drought", "pests", "crop_died", "harvest_ready", "reset", "load"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures day history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated day history
type HistoryResponse struct {
	Days        []engine.DayReport `json:"days"`
	TotalDays   int                `json:"total_days"`
	Page        int                `json:"page"`
	PageSize    int                `json:"page_size"`
	TotalPages  int                `json:"total_pages"`
	HasNext     bool               `json:"has_next"`
	HasPrevious bool               `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	FarmSize      int    `json:"farm_size"`
	StartingCoins int    `json:"starting_coins"`
}
