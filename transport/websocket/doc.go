// Package websocket provides live farm updates over WebSocket.
//
// The package uses a hub-and-spoke model where a central Hub tracks every
// connection by session ID. Each client gets a read pump that keeps the
// connection alive and a write pump that delivers queued messages.
//
// Message Protocol:
//
// Clients only listen. Every message is one JSON frame:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// state_update carries the full game state after every mutation; day_end
// carries the day report in data.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"), currentState)
//	})
package websocket
