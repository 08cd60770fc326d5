// Package validate checks ruleset YAML files before a server loads them.
// It checks:
//   - YAML structure, with unknown keys rejected
//   - Required fields (name, description)
//   - Farm size range and a non-negative coin purse
//   - Starting inventory items and counts
//   - Playability: at least one crop can be grown from the starting stock
//     plus what the starting coins can buy
package validate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/harvest-haven/game/engine"
	"gopkg.in/yaml.v3"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// ValidateConfig loads and validates a single ruleset file
func ValidateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		result.fail("Invalid YAML: %v", err)
		return result
	}

	if config.Name == "" {
		result.fail("name is required")
	}
	if config.Description == "" {
		result.fail("description is required")
	}

	if config.FarmSize < engine.MinFarmSize || config.FarmSize > engine.MaxFarmSize {
		result.fail("farm_size must be between %d and %d, got %d", engine.MinFarmSize, engine.MaxFarmSize, config.FarmSize)
	}

	if config.StartingCoins < 0 {
		result.fail("starting_coins must not be negative, got %d", config.StartingCoins)
	}

	items := make([]string, 0, len(config.StartingInventory))
	for item := range config.StartingInventory {
		items = append(items, item)
	}
	sort.Strings(items)
	for _, item := range items {
		count := config.StartingInventory[item]
		if !engine.IsItem(item) {
			result.fail("Unknown inventory item '%s'", item)
		}
		if count < 0 {
			result.fail("starting_inventory['%s'] must not be negative, got %d", item, count)
		}
	}

	// Playability only makes sense once the stock itself is sound
	if result.Valid {
		playable := validatePlayability(&config)
		if !playable.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, playable.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.info("Name: %s", config.Name)
		result.info("Farm: %dx%d", config.FarmSize, config.FarmSize)
		result.info("Coins: %d", config.StartingCoins)
		result.info("Inventory: %s", formatInventory(config.StartingInventory))
	}

	return result
}

// cropCost is what it takes to bring one crop from seed to harvest
// given the starting stock
func cropCost(spec engine.CropSpec, inventory map[string]int) int {
	cost := 0

	if inventory[string(spec.Kind)] <= 0 {
		seed, _ := engine.LookupShopItem(string(spec.Kind))
		cost += seed.Price
	}

	if short := spec.WaterNeeded - inventory[engine.ItemWater]; short > 0 {
		water, _ := engine.LookupShopItem(engine.ItemWater)
		lots := (short + water.Quantity - 1) / water.Quantity
		cost += lots * water.Price
	}

	if short := spec.FertilizerNeeded - inventory[engine.ItemFertilizer]; short > 0 {
		fertilizer, _ := engine.LookupShopItem(engine.ItemFertilizer)
		lots := (short + fertilizer.Quantity - 1) / fertilizer.Quantity
		cost += lots * fertilizer.Price
	}

	return cost
}

// validatePlayability ensures at least one crop can be grown without rain.
// A ruleset with no seeds, no water and no coins would leave the player stuck.
func validatePlayability(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	inventory := config.StartingInventory
	if inventory == nil {
		inventory = engine.DefaultInventory()
	}

	growable := []string{}
	for _, kind := range engine.CropKinds() {
		spec, _ := engine.Spec(kind)
		if cropCost(spec, inventory) <= config.StartingCoins {
			growable = append(growable, string(kind))
		}
	}

	if len(growable) == 0 {
		result.fail("Playability failure: no crop can be grown from the starting stock and %d coins", config.StartingCoins)
		return result
	}

	result.info("Playability: can grow %s", strings.Join(growable, ", "))
	return result
}

func formatInventory(inventory map[string]int) string {
	if inventory == nil {
		return "default"
	}
	if len(inventory) == 0 {
		return "empty"
	}
	names := make([]string, 0, len(inventory))
	for name := range inventory {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, inventory[name])
	}
	return strings.Join(parts, " ")
}

// ValidateDir validates every *.yaml and *.yml file in dir, sorted by name
func ValidateDir(dir string) ([]ValidationResult, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("error finding config files: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, ValidateConfig(file))
	}
	return results, nil
}

// PrintReport writes a concise report and reports whether every file was valid
func PrintReport(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if len(results) == 0 {
		fmt.Fprintln(w, "⚠️ No configuration files found")
		return false
	}
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}
