// Package mcp exposes Harvest Haven to AI agents over the Model Context Protocol.
//
// The Client registers its tools on a mark3labs/mcp-go server and proxies
// every call to the REST API, so agents and HTTP players share sessions.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - farm_state: energy, coins, inventory and the rendered farm
//   - describe_plot: one plot's crop, stage and remaining needs
//   - plant, water, fertilize, harvest: field actions at (x, y)
//   - buy: shop purchases
//   - end_day, reset_game
//   - save_game, load_game: checkpoints by slot
//   - day_history: paginated day reports
//   - list_configs, game_instructions
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST bodies passed to GetMCPServer().HandleMessage on /mcp
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
