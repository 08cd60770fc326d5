// Package session provides session management for Harvest Haven.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional file persistence of every session
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine, so two farms never share state.
//
// Session Identifiers:
//
// Generated IDs are 4 lowercase hex characters drawn from crypto/rand.
// Caller-chosen IDs are accepted too and stored lowercase; lookups are
// case-insensitive.
//
// Persistence:
//
// FilePersistence writes one JSON file per session holding the ruleset ID,
// timestamps, the day counter, the day history and the player and farm in
// the save-slot snapshot format. A manager built with persistence saves on
// create and falls back to disk when a session is not in memory.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	manager := session.NewManagerWithPersistence(persistence)
//
//	sess, err := manager.Create("", config)
//	sess, err = manager.Get(sess.ID)
package session
