// Package api implements the REST interface for the game server.
//
// All routes live under /api and speak JSON:
//
//	POST   /api/sessions                  create a session (optional config_id)
//	GET    /api/sessions                  list sessions (sort, order, limit)
//	GET    /api/sessions/overview         per-session progress summary
//	GET    /api/sessions/{id}             session info with current state
//	DELETE /api/sessions/{id}             remove a session
//	GET    /api/sessions/{id}/state       current game snapshot
//	POST   /api/sessions/{id}/actions     apply an action {verb, params}
//	GET    /api/sessions/{id}/history     paginated action log
//	GET    /api/configs                   list available configurations
//	POST   /api/configs                   save a configuration
//	GET    /api/configs/{name}            load one configuration
//	GET    /api/health                    liveness probe
//
// Rule violations are not HTTP errors: applying an illegal action returns
// 200 with the engine's rejection inside the outcome body. HTTP error codes
// are reserved for unknown sessions, unknown verbs and malformed requests.
//
// The /ws endpoint upgrades to a WebSocket and streams state snapshots to
// every client watching a session; the server broadcasts after each applied
// action.
package api
