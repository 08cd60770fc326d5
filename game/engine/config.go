package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidateGameConfig checks a ruleset before any farm is built from it
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.FarmSize < MinFarmSize || config.FarmSize > MaxFarmSize {
		return fmt.Errorf("config validation: farm_size must be between %d and %d, got %d", MinFarmSize, MaxFarmSize, config.FarmSize)
	}

	if config.StartingCoins < 0 {
		return fmt.Errorf("config validation: starting_coins must not be negative, got %d", config.StartingCoins)
	}

	for item, count := range config.StartingInventory {
		if !IsItem(item) {
			return fmt.Errorf("config validation: unknown inventory item '%s'", item)
		}
		if count < 0 {
			return fmt.Errorf("config validation: starting_inventory['%s'] must not be negative, got %d", item, count)
		}
	}

	return nil
}

// DefaultConfig returns the built-in 5x5 ruleset
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:              "classic",
		Description:       "The original 5x5 homestead",
		FarmSize:          DefaultFarmSize,
		StartingCoins:     StartingCoins,
		StartingInventory: DefaultInventory(),
	}
}

// LoadGameConfig reads and validates a YAML ruleset file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseGameConfig(data)
}

// ParseGameConfig decodes and validates a YAML ruleset document
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var config GameConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// InitGameStateFromConfig creates a day-one game state from a ruleset.
// A nil config means the built-in default.
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultConfig()
	}

	player := NewPlayer()
	player.Coins = config.StartingCoins
	if config.StartingInventory != nil {
		player.Inventory = make(map[string]int, len(config.StartingInventory))
		for item, count := range config.StartingInventory {
			player.Inventory[item] = count
		}
	}

	return &GameState{
		Day:        1,
		Player:     player,
		Farm:       NewFarm(config.FarmSize),
		Message:    fmt.Sprintf("Welcome to %s! Day 1 begins.", config.Name),
		History:    []DayReport{},
		ConfigName: config.Name,
	}
}
