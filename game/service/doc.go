// Package service provides the business logic layer for Harvest Haven.
//
// The service package implements:
//   - Multi-session farm management
//   - Configuration management and loading
//   - Field actions, shopping and day advancement
//   - Save-slot checkpoints
//   - Day history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages ruleset loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session owns its own engine, so one
// player and one farm, and every call on it runs under the service mutex.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	saves, _ := snapshot.NewFileStore("saves")
//	gameService := service.NewGameService(sessionMgr, configMgr, saves)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := gameService.Plant(ctx, sessionInfo.ID, 0, 0, "Wheat")
//	day, err := gameService.EndDay(ctx, sessionInfo.ID)
//
// Errors:
//
// Business-rule failures (no seeds, occupied plot, too tired) come back as
// ActionResponse values with Success=false. Errors are reserved for unknown
// sessions (ErrSessionNotFound), out-of-bounds coordinates
// (engine.ErrOutOfBounds), bad requests (ErrInvalidRequest) and corrupt
// saves (snapshot.ErrCorruptSnapshot).
package service
