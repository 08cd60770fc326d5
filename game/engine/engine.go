package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Engine provides the main interface for farm operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	Restore(player *Player, farm *Farm) error
	GetDay() int

	// Field actions
	Plant(x, y int, kind CropKind) (ActionResult, error)
	Water(x, y int) (ActionResult, error)
	Fertilize(x, y int) (ActionResult, error)
	Harvest(x, y int) (ActionResult, error)

	// Economy
	Buy(item string) ActionResult

	// Turn
	EndDay() DayReport

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetHistory() []DayReport
	GetLastReport() *DayReport
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    RandomSource
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithRandom injects the random source used for day events
func WithRandom(rng RandomSource) Option {
	return func(e *GameEngine) {
		e.rng = rng
	}
}

// NewEngine creates a new game engine with the provided configuration.
// Without WithRandom the engine seeds from config.Seed, or the clock when that is zero.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		engine.rng = rand.New(rand.NewSource(seed))
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the built-in ruleset
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	engine, err := NewEngine(DefaultConfig(), opts...)
	if err != nil {
		panic(fmt.Sprintf("default config invalid: %v", err))
	}
	return engine
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Clone returns a deep copy of the state, safe to read after the engine moves on
func (s *GameState) Clone() *GameState {
	clone := *s
	if s.Player != nil {
		clone.Player = s.Player.Clone()
	}
	if s.Farm != nil {
		clone.Farm = s.Farm.Clone()
	}
	if s.History != nil {
		clone.History = make([]DayReport, len(s.History))
		for i, report := range s.History {
			if report.Killed != nil {
				report.Killed = append([]Position(nil), report.Killed...)
			}
			clone.History[i] = report
		}
	}
	clone.FarmView = append([]string(nil), s.FarmView...)
	clone.PlantablePlots = append([]Position(nil), s.PlantablePlots...)
	return &clone
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Player == nil || state.Farm == nil {
		return fmt.Errorf("state must have a player and a farm")
	}
	e.state = state
	return nil
}

// Reset starts a fresh farm from the current ruleset
func (e *GameEngine) Reset() *GameState {
	e.state = InitGameStateFromConfig(e.config)
	return e.state
}

// Restore swaps in a decoded player and farm. The day counter and history stay.
func (e *GameEngine) Restore(player *Player, farm *Farm) error {
	if player == nil || farm == nil {
		return fmt.Errorf("restore needs both a player and a farm")
	}
	e.state.Player = player
	e.state.Farm = farm
	e.state.Message = fmt.Sprintf("Farm restored on day %d.", e.state.Day)
	return nil
}

// GetDay returns the current day number, starting at 1
func (e *GameEngine) GetDay() int {
	return e.state.Day
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}
	e.config = config
	e.state = InitGameStateFromConfig(config)
	return nil
}

// GetHistory returns every day report so far
func (e *GameEngine) GetHistory() []DayReport {
	return e.state.History
}

// GetLastReport returns the most recent day report, or nil before the first day ends
func (e *GameEngine) GetLastReport() *DayReport {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// Plant puts a seed of kind into an Empty or Dead plot
func (e *GameEngine) Plant(x, y int, kind CropKind) (ActionResult, error) {
	result := e.newResult("plant", x, y, string(kind))
	cell, err := e.state.Farm.Cell(x, y)
	if err != nil {
		return result, err
	}
	player := e.state.Player

	switch {
	case player.Energy <= 0:
		return e.reject(result, CodeInsufficientResource, "You're too tired to plant. End the day to rest."), nil
	case !IsCropKind(string(kind)):
		return e.reject(result, CodeInvalidTarget, fmt.Sprintf("%s is not a crop.", kind)), nil
	case cell.Stage != Empty && cell.Stage != Dead:
		return e.reject(result, CodeInvalidTarget, fmt.Sprintf("Plot (%d,%d) is already %s.", x, y, cell.Stage)), nil
	case !player.CanPlant(kind):
		return e.reject(result, CodeInsufficientResource, fmt.Sprintf("No %s seeds left.", kind)), nil
	}

	player.UseSeed(kind)
	_ = e.state.Farm.Plant(x, y, kind)
	return e.accept(result, fmt.Sprintf("Planted %s at (%d,%d).", kind, x, y)), nil
}

// Water waters a Planted or Growing plot
func (e *GameEngine) Water(x, y int) (ActionResult, error) {
	result := e.newResult("water", x, y, ItemWater)
	cell, err := e.state.Farm.Cell(x, y)
	if err != nil {
		return result, err
	}
	player := e.state.Player

	switch {
	case player.Energy <= 0:
		return e.reject(result, CodeInsufficientResource, "You're too tired to water. End the day to rest."), nil
	case !cell.Stage.Tending():
		return e.reject(result, CodeInvalidTarget, fmt.Sprintf("Nothing to water at (%d,%d).", x, y)), nil
	case player.Count(ItemWater) <= 0:
		return e.reject(result, CodeInsufficientResource, "Out of water."), nil
	}

	player.UseWater()
	_ = e.state.Farm.Water(x, y)
	return e.accept(result, fmt.Sprintf("Watered %s at (%d,%d).", cell.Kind, x, y)), nil
}

// Fertilize fertilizes a Planted or Growing plot
func (e *GameEngine) Fertilize(x, y int) (ActionResult, error) {
	result := e.newResult("fertilize", x, y, ItemFertilizer)
	cell, err := e.state.Farm.Cell(x, y)
	if err != nil {
		return result, err
	}
	player := e.state.Player

	switch {
	case player.Energy <= 0:
		return e.reject(result, CodeInsufficientResource, "You're too tired to fertilize. End the day to rest."), nil
	case !cell.Stage.Tending():
		return e.reject(result, CodeInvalidTarget, fmt.Sprintf("Nothing to fertilize at (%d,%d).", x, y)), nil
	case player.Count(ItemFertilizer) <= 0:
		return e.reject(result, CodeInsufficientResource, "Out of fertilizer."), nil
	}

	player.UseFertilizer()
	_ = e.state.Farm.Fertilize(x, y)
	return e.accept(result, fmt.Sprintf("Fertilized %s at (%d,%d).", cell.Kind, x, y)), nil
}

// Harvest collects a Harvestable plot and sells it
func (e *GameEngine) Harvest(x, y int) (ActionResult, error) {
	result := e.newResult("harvest", x, y, "")
	cell, err := e.state.Farm.Cell(x, y)
	if err != nil {
		return result, err
	}
	player := e.state.Player

	switch {
	case player.Energy <= 0:
		return e.reject(result, CodeInsufficientResource, "You're too tired to harvest. End the day to rest."), nil
	case cell.Stage != Harvestable:
		return e.reject(result, CodeInvalidTarget, fmt.Sprintf("Nothing to harvest at (%d,%d).", x, y)), nil
	}

	kind, _, _ := e.state.Farm.Harvest(x, y)
	player.AddHarvest(kind)
	result.Item = string(kind)
	spec := cropSpecs[kind]
	return e.accept(result, fmt.Sprintf("Harvested %s for %d coins.", kind, spec.SellPrice)), nil
}

// Buy purchases one shop item. Shopping costs no energy.
func (e *GameEngine) Buy(item string) ActionResult {
	result := Buy(e.state.Player, item)
	if result.Success {
		e.state.TotalActions++
	}
	e.state.Message = result.Message
	return result
}

// EndDay rolls the day's event, applies it, rests the player and starts the next day
func (e *GameEngine) EndDay() DayReport {
	event := RollEvent(e.rng)
	outcome := ApplyEvent(event, e.state.Farm, e.rng)
	e.state.Player.Rest()

	report := DayReport{
		ID:           uuid.NewString(),
		Day:          e.state.Day,
		Event:        outcome.Event,
		Rained:       outcome.Rained,
		PestAttempts: outcome.PestAttempts,
		Killed:       outcome.Killed,
		Message:      outcome.Describe(),
	}

	e.state.Day++
	e.state.LastEvent = event
	e.state.History = append(e.state.History, report)
	e.state.Message = fmt.Sprintf("%s Day %d begins.", report.Message, e.state.Day)
	return report
}

func (e *GameEngine) newResult(action string, x, y int, item string) ActionResult {
	return ActionResult{Action: action, Position: &Position{X: x, Y: y}, Item: item}
}

func (e *GameEngine) reject(result ActionResult, code, message string) ActionResult {
	result.Success = false
	result.Code = code
	result.Message = message
	e.state.Message = message
	return result
}

// accept charges the action's energy and records it
func (e *GameEngine) accept(result ActionResult, message string) ActionResult {
	e.state.Player.SpendEnergy()
	e.state.TotalActions++
	result.Success = true
	result.Code = CodeOK
	result.Message = message
	e.state.Message = message
	return result
}
