// Package api provides HTTP REST API handlers for Harvest Haven.
//
// The api package implements:
//   - Session management endpoints
//   - Field actions (plant, water, fertilize, harvest)
//   - Shop purchases and day advancement
//   - Checkpoint save/load by slot
//   - Ruleset listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (sort, order, limit)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Farm:
//   - GET /api/sessions/{id}/state - Current game state
//   - GET /api/sessions/{id}/history - Day reports with pagination
//   - POST /api/sessions/{id}/plant - {"x": 0, "y": 1, "crop": "Wheat"}
//   - POST /api/sessions/{id}/water - {"x": 0, "y": 1}
//   - POST /api/sessions/{id}/fertilize - {"x": 0, "y": 1}
//   - POST /api/sessions/{id}/harvest - {"x": 0, "y": 1}
//   - POST /api/sessions/{id}/buy - {"item": "Water"}
//   - POST /api/sessions/{id}/end-day
//   - POST /api/sessions/{id}/reset
//   - POST /api/sessions/{id}/save - {"slot": "spring"}, slot optional
//   - POST /api/sessions/{id}/load - {"slot": "spring"}, slot optional
//
// Configuration:
//   - GET /api/configs - List rulesets
//   - GET /api/configs/{name} - Get one ruleset
//   - POST /api/configs - Save a ruleset
//
// Action responses carry the engine result alongside the new state:
//
//	{
//	  "action": "plant", "position": {"x": 0, "y": 1},
//	  "success": false, "code": "insufficient_resource",
//	  "message": "No Wheat seeds left.",
//	  "game_state": {...}
//	}
//
// A rejected action is still a 200. Transport level problems map to status
// codes: unknown sessions and rulesets are 404, malformed requests and
// out-of-bounds coordinates are 400, corrupt snapshots are 422.
//
// Errors are returned as JSON:
//
//	{"error": "error message"}
package api
