package service

import (
	"encoding/json"
	"time"

	"github.com/fanyewuji/power-grid-game/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string           `json:"id"`
	ConfigName     string           `json:"config_name"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	GameState      *engine.Snapshot `json:"game_state"`
}

// ActionOutcome is the service-level result of one applied action: the
// engine's verdict plus the state the clients should render next.
type ActionOutcome struct {
	SessionID string           `json:"session_id"`
	Verb      string           `json:"verb"`
	Result    *engine.Result   `json:"result"`
	GameState *engine.Snapshot `json:"game_state"`
}

// ActionRecord is one entry in a session's action log.
type ActionRecord struct {
	Seq       int             `json:"seq"`
	Verb      string          `json:"verb"`
	Params    json.RawMessage `json:"params,omitempty"`
	Success   bool            `json:"success"`
	Code      string          `json:"code,omitempty"`
	Message   string          `json:"message,omitempty"`
	Phase     engine.Phase    `json:"phase"`
	Round     int             `json:"round"`
	PlayerID  string          `json:"player_id"` // acting player at the time
	Timestamp time.Time       `json:"timestamp"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions     []ActionRecord `json:"actions"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Players     int    `json:"players"`
	Cities      int    `json:"cities"`
	PlantCards  int    `json:"plant_cards"`
}
