// Package engine provides the core simulation for the Harvest Haven farm.
//
// The engine package implements the game mechanics including:
//   - The per-plot crop lifecycle (Empty, Planted, Growing, Harvestable, Dead)
//   - The square farm grid and its day-advance
//   - Player energy, coins, inventory and harvest tally
//   - Random day-end events (calm, rain, drought, pests)
//   - The seed and supply shop
//
// Core Types:
//
// The Engine interface defines the driver-facing contract, implemented by
// GameEngine. GameState holds one player, one farm and the day counter,
// while GameConfig is a ruleset loaded from YAML.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameEngine.Plant(0, 0, engine.Wheat)
//	if err != nil {
//		log.Fatal(err) // only out-of-bounds coordinates
//	}
//	gameEngine.Water(0, 0)
//	report := gameEngine.EndDay()
//
// Game Rules:
//
// Every field action costs one point of energy; ending the day restores it.
// A crop becomes harvestable once it has grown for its grow time with
// enough water and fertilizer, and dies if left more than two days past
// that. Business-rule failures come back as ActionResult values with
// Success=false and never change the farm.
package engine
