package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/harvest-haven/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Field actions; out-of-bounds coordinates return engine.ErrOutOfBounds
	Plant(ctx context.Context, sessionID string, x, y int, crop string) (*ActionResponse, error)
	Water(ctx context.Context, sessionID string, x, y int) (*ActionResponse, error)
	Fertilize(ctx context.Context, sessionID string, x, y int) (*ActionResponse, error)
	Harvest(ctx context.Context, sessionID string, x, y int) (*ActionResponse, error)

	// Economy and turns
	Buy(ctx context.Context, sessionID, item string) (*ActionResponse, error)
	EndDay(ctx context.Context, sessionID string) (*DayResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetDayHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Checkpoints
	SaveGame(ctx context.Context, sessionID, slot string) (*SaveResult, error)
	LoadGame(ctx context.Context, sessionID, slot string) (*LoadResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
