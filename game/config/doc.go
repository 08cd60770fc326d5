// Package config provides ruleset management for Harvest Haven.
//
// The config package handles:
//   - Loading rulesets from YAML files
//   - Ruleset validation
//   - Default ruleset management
//   - Ruleset discovery and listing
//
// Ruleset Format:
//
// Rulesets are stored as .yaml (or .yml) files in the configs directory:
//
//	name: classic
//	description: The original 5x5 homestead
//	farm_size: 5
//	starting_coins: 20
//	starting_inventory: {Wheat: 3, Tomato: 1, Carrot: 1, Water: 10, Fertilizer: 2}
//
// The classic ruleset is always available. When no classic file exists the
// manager serves the engine's built-in ruleset under that name.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("easy")
//	configs, err := manager.ListConfigs()
package config
