// Package websocket provides WebSocket transport for the Power Grid Game.
//
// The websocket package implements:
//   - Real-time state push to connected table viewers
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting after each applied action
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded and carry the full game snapshot:
//
//	{"session_id": "abc1", "event": "state_update", "game_state": {...}}
//
// Actions themselves travel over the REST API; the WebSocket channel is
// read-only from the client's point of view and exists so every viewer of a
// table sees auctions, purchases, and builds as they happen.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1) when
// establishing the connection. State updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a successful action
//	hub.BroadcastToSession(sessionID, eng.Snapshot())
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
