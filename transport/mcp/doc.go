// Package mcp provides Model Context Protocol server implementation for the Power Grid Game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - A thin proxy over the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state (players, market, plants, auction)
//   - apply_action: Apply one game action by verb plus parameters
//   - action_history: Retrieve action history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available game configurations
//   - game_instructions: Comprehensive rules reference
//   - market_overview: Resource ladder and plant market detail
//
// Architecture:
//
// The client holds no game state of its own. Every tool call becomes a REST
// request to the API server, so the MCP surface and the HTTP surface can
// never disagree about what a session looks like.
//
// Session Management:
//
// All game tools take a session_id parameter. AI agents can manage multiple
// concurrent game sessions independently.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Play full games end to end (auctions, purchases, builds, payouts)
//   - Develop and test bidding and buildout strategies
//   - Analyze game states and make decisions
//   - Manage multiple game sessions
//   - Learn from action history
package mcp
