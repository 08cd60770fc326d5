package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:              "Test Config",
		Description:       "Test configuration",
		FarmSize:          4,
		StartingCoins:     30,
		StartingInventory: map[string]int{"Wheat": 5, "Water": 4},
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	if err := ValidateGameConfig(createValidConfig()); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Expected default config to be valid, got error: %v", err)
	}
}

func TestValidateGameConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"farm too small", func(c *GameConfig) { c.FarmSize = 0 }, "farm_size"},
		{"farm too large", func(c *GameConfig) { c.FarmSize = MaxFarmSize + 1 }, "farm_size"},
		{"negative coins", func(c *GameConfig) { c.StartingCoins = -1 }, "starting_coins"},
		{"unknown item", func(c *GameConfig) { c.StartingInventory["Pumpkin"] = 1 }, "unknown inventory item"},
		{"negative count", func(c *GameConfig) { c.StartingInventory["Water"] = -2 }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	valid := `name: small
description: A tiny plot
farm_size: 2
starting_coins: 5
starting_inventory:
  Wheat: 1
  Water: 2
seed: 9
`
	path := filepath.Join(dir, "small.yaml")
	if err := os.WriteFile(path, []byte(valid), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.FarmSize != 2 || config.StartingCoins != 5 || config.Seed != 9 {
		t.Errorf("Unexpected config: %+v", config)
	}
	if config.StartingInventory["Water"] != 2 {
		t.Errorf("Expected 2 water, got %d", config.StartingInventory["Water"])
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGameConfig(filepath.Join(dir, "missing.yaml")); !os.IsNotExist(err) {
			t.Errorf("Expected not-exist error, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := ParseGameConfig([]byte("name: [unclosed")); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("invalid ruleset", func(t *testing.T) {
		if _, err := ParseGameConfig([]byte("name: x\ndescription: y\nfarm_size: 40\n")); err == nil {
			t.Error("Expected validation error")
		}
	})
}

func TestInitGameStateFromConfig(t *testing.T) {
	state := InitGameStateFromConfig(createValidConfig())

	if state.Day != 1 {
		t.Errorf("Expected day 1, got %d", state.Day)
	}
	if state.Farm.Size != 4 || len(state.Farm.Grid) != 4 {
		t.Errorf("Expected 4x4 farm, got size %d", state.Farm.Size)
	}
	if state.Player.Coins != 30 {
		t.Errorf("Expected 30 coins, got %d", state.Player.Coins)
	}
	if state.Player.Energy != MaxEnergy {
		t.Errorf("Expected full energy, got %d", state.Player.Energy)
	}
	if state.Player.Count("Tomato") != 0 || state.Player.Count("Wheat") != 5 {
		t.Errorf("Unexpected inventory: %v", state.Player.Inventory)
	}

	defaults := InitGameStateFromConfig(nil)
	if defaults.ConfigName != "classic" || defaults.Player.Count(ItemWater) != 10 {
		t.Errorf("Unexpected default state: %+v", defaults.Player)
	}
}
