// Package service provides the business logic layer for the Power Grid Game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Action decoding, dispatch, and validation
//   - Session lifecycle management
//   - Action history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "germany")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Apply actions
//	outcome, err := gameService.ApplyAction(ctx, sessionInfo.ID,
//		"start_auction", json.RawMessage(`{"card_id":"4"}`))
//
// Rule violations (bidding too low, building an unreachable city) come back
// inside the ActionOutcome with Success false; errors are reserved for
// unknown sessions and requests that cannot be decoded at all.
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different
// configurations. Sessions track creation time, last access time, and a
// sequential action history for analytics and debugging.
package service
