package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/harvest-haven/game/engine"
	"github.com/wricardo/harvest-haven/game/snapshot"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	saves    snapshot.SlotStore
	mu       sync.Mutex
}

// NewGameService creates a new game service instance. saves may be nil,
// in which case SaveGame and LoadGame report that checkpoints are disabled.
func NewGameService(sessions SessionManager, configs ConfigManager, saves snapshot.SlotStore) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		saves:    saves,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      enrich(sess.Engine.GetState()),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: config '%s' not found. Available configs: %v", ErrInvalidRequest, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: config '%s' not found. Use /api/configs to list available configurations", ErrInvalidRequest, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// Plant plants a seed at (x, y)
func (s *gameServiceImpl) Plant(ctx context.Context, sessionID string, x, y int, crop string) (*ActionResponse, error) {
	return s.fieldAction(sessionID, func(e *engine.GameEngine) (engine.ActionResult, error) {
		return e.Plant(x, y, engine.CropKind(normalizeName(crop)))
	})
}

// Water waters the plot at (x, y)
func (s *gameServiceImpl) Water(ctx context.Context, sessionID string, x, y int) (*ActionResponse, error) {
	return s.fieldAction(sessionID, func(e *engine.GameEngine) (engine.ActionResult, error) {
		return e.Water(x, y)
	})
}

// Fertilize fertilizes the plot at (x, y)
func (s *gameServiceImpl) Fertilize(ctx context.Context, sessionID string, x, y int) (*ActionResponse, error) {
	return s.fieldAction(sessionID, func(e *engine.GameEngine) (engine.ActionResult, error) {
		return e.Fertilize(x, y)
	})
}

// Harvest harvests the plot at (x, y)
func (s *gameServiceImpl) Harvest(ctx context.Context, sessionID string, x, y int) (*ActionResponse, error) {
	return s.fieldAction(sessionID, func(e *engine.GameEngine) (engine.ActionResult, error) {
		return e.Harvest(x, y)
	})
}

// Buy purchases one shop item
func (s *gameServiceImpl) Buy(ctx context.Context, sessionID, item string) (*ActionResponse, error) {
	return s.fieldAction(sessionID, func(e *engine.GameEngine) (engine.ActionResult, error) {
		return e.Buy(normalizeName(item)), nil
	})
}

func (s *gameServiceImpl) fieldAction(sessionID string, act func(*engine.GameEngine) (engine.ActionResult, error)) (*ActionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result, err := act(sess.Engine)
	if err != nil {
		return nil, err
	}

	response := &ActionResponse{
		ActionResult: result,
		GameState:    enrich(sess.Engine.GetState()),
	}
	if result.Success {
		response.Events = []GameEvent{{
			Type:      result.Action,
			Message:   result.Message,
			Timestamp: time.Now(),
			Position:  result.Position,
		}}
		s.autosave(sessionID, result.Action)
	}
	return response, nil
}

// EndDay advances the session by one day
func (s *gameServiceImpl) EndDay(ctx context.Context, sessionID string) (*DayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	before := sess.Engine.GetState().Farm.Clone()
	report := sess.Engine.EndDay()
	state := enrich(sess.Engine.GetState())

	result := &DayResult{
		Report:    report,
		GameState: state,
		Events:    dayEvents(report, before, state.Farm),
	}

	s.autosave(sessionID, "end of day")
	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := enrich(sess.Engine.Reset())
	s.autosave(sessionID, "reset")
	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return enrich(sess.Engine.GetState()), nil
}

// GetDayHistory returns paginated day reports
func (s *gameServiceImpl) GetDayHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	days := []engine.DayReport{}
	if start < total {
		if opts.Order == "desc" {
			for i := total - 1 - start; i >= total-end; i-- {
				days = append(days, history[i])
			}
		} else {
			days = append(days, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Days:        days,
		TotalDays:   total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// SaveGame checkpoints the session's player and farm into a save slot
func (s *gameServiceImpl) SaveGame(ctx context.Context, sessionID, slot string) (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if s.saves == nil {
		return &SaveResult{Slot: slot, Message: "Saving is disabled on this server."}, nil
	}

	slot, key, err := slotKey(sess.ID, slot)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	if err := snapshot.SaveGame(s.saves, key, state.Player, state.Farm); err != nil {
		return nil, err
	}
	state.Message = "Game saved!"
	return &SaveResult{Slot: slot, Saved: true, Message: state.Message}, nil
}

// LoadGame restores a checkpoint. An empty slot is not an error.
func (s *gameServiceImpl) LoadGame(ctx context.Context, sessionID, slot string) (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if s.saves == nil {
		return &LoadResult{Slot: slot, Message: "Saving is disabled on this server.", GameState: enrich(sess.Engine.GetState())}, nil
	}

	slot, key, err := slotKey(sess.ID, slot)
	if err != nil {
		return nil, err
	}

	player, farm, err := snapshot.LoadGame(s.saves, key)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return &LoadResult{
			Slot:      slot,
			Message:   "No save file found.",
			GameState: enrich(sess.Engine.GetState()),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}

	if err := sess.Engine.Restore(player, farm); err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()
	state.Message = "Game loaded!"

	s.autosave(sessionID, "load")
	return &LoadResult{Slot: slot, Loaded: true, Message: state.Message, GameState: enrich(state)}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) autosave(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after %s: %v\n", sessionID, after, err)
	}
}

// slotKey scopes a player-facing slot name to one session
func slotKey(sessionID, slot string) (string, string, error) {
	if slot == "" {
		slot = snapshot.DefaultSlot
	}
	key := sessionID + "-" + slot
	if err := snapshot.ValidateSlot(key); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return slot, key, nil
}

// normalizeName accepts "wheat" or "WHEAT" for "Wheat"
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// enrich copies the live state and fills in the decision aids agents read.
// Callers hold s.mu; the copy stays valid after the lock is released.
func enrich(live *engine.GameState) *engine.GameState {
	if live == nil {
		return nil
	}
	state := live.Clone()
	if state.Farm == nil {
		return state
	}
	state.FarmView = strings.Split(strings.TrimSuffix(engine.RenderFarm(state.Farm), "\n"), "\n")
	state.CropRisk = riskCode(engine.AnalyzeCropRisk(state))
	state.PlantablePlots = engine.FindEmpty(state.Farm)
	state.HarvestValue = engine.HarvestValue(state.Farm)
	return state
}

func dayEvents(report engine.DayReport, before, after *engine.Farm) []GameEvent {
	now := time.Now()
	eventType := string(report.Event)
	if report.Event == engine.EventNone {
		eventType = "calm"
	}
	events := []GameEvent{{Type: eventType, Message: report.Message, Timestamp: now}}

	for x := range after.Grid {
		for y := range after.Grid[x] {
			prev, cur := before.Grid[x][y], after.Grid[x][y]
			pos := &engine.Position{X: x, Y: y}
			switch {
			case prev.Stage != engine.Dead && cur.Stage == engine.Dead:
				events = append(events, GameEvent{
					Type:      "crop_died",
					Message:   fmt.Sprintf("%s at (%d,%d) died", cur.Kind, x, y),
					Timestamp: now,
					Position:  pos,
				})
			case prev.Stage != engine.Harvestable && cur.Stage == engine.Harvestable:
				events = append(events, GameEvent{
					Type:      "harvest_ready",
					Message:   fmt.Sprintf("%s at (%d,%d) is ready to harvest", cur.Kind, x, y),
					Timestamp: now,
					Position:  pos,
				})
			}
		}
	}
	return events
}

func riskCode(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "critical"):
		return "CRITICAL"
	case strings.Contains(t, "danger"):
		return "DANGER"
	case strings.Contains(t, "ready"):
		return "READY"
	case strings.Contains(t, "caution"):
		return "CAUTION"
	case strings.Contains(t, "safe"):
		return "SAFE"
	default:
		return "UNKNOWN"
	}
}
