package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fanyewuji/power-grid-game/game/engine"
	"github.com/fanyewuji/power-grid-game/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"germany": engine.DefaultGameConfig(),
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	if config, exists := m.configs[name]; exists {
		return config, nil
	}
	return nil, errors.New("configuration not found")
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, config := range m.configs {
		infos = append(infos, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Players:     len(config.Players),
			Cities:      len(config.Cities),
			PlantCards:  len(config.Cards),
		})
	}
	return infos, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["germany"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService() service.GameService {
	return service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
}

func TestCreateSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("with named config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "germany")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.ID == "" {
			t.Error("expected a generated session ID")
		}
		if info.ConfigName != "germany" {
			t.Errorf("expected config name germany, got %q", info.ConfigName)
		}
		if info.GameState == nil {
			t.Fatal("expected an initial game state")
		}
		if info.GameState.Phase != engine.PhaseAuction {
			t.Errorf("expected the Auction phase, got %s", info.GameState.Phase)
		}
		if len(info.GameState.Players) != 4 {
			t.Errorf("expected 4 players, got %d", len(info.GameState.Players))
		}
	})

	t.Run("with default config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.GameState == nil {
			t.Error("expected an initial game state")
		}
	})

	t.Run("unknown config lists alternatives", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "mars")
		if err == nil {
			t.Fatal("expected an error for an unknown config")
		}
		if want := "Available configs"; !strings.Contains(err.Error(), want) {
			t.Errorf("expected the error to mention %q, got %v", want, err)
		}
	})
}

func TestGetAndListSessions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, "germany")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	got, err := svc.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected session %s, got %s", created.ID, got.ID)
	}

	if _, err := svc.GetSession(ctx, "nope"); err == nil {
		t.Error("expected an error for an unknown session")
	}

	svc.CreateSession(ctx, "germany")
	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestDeleteSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "germany")
	if err := svc.DeleteSession(ctx, created.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := svc.GetSession(ctx, created.ID); err == nil {
		t.Error("expected the session to be gone")
	}
}

func TestApplyAction(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.CreateSession(ctx, "germany")

	t.Run("legal action succeeds", func(t *testing.T) {
		cardID := created.GameState.PlantMarket[0]
		params, _ := json.Marshal(map[string]string{"card_id": cardID})

		outcome, err := svc.ApplyAction(ctx, created.ID, "start_auction", params)
		if err != nil {
			t.Fatalf("Failed to apply action: %v", err)
		}
		if !outcome.Result.Success {
			t.Fatalf("expected a successful auction start: %s", outcome.Result.Message)
		}
		if outcome.GameState.Auction == nil {
			t.Error("expected an auction in the returned state")
		}
	})

	t.Run("rule violation is not an error", func(t *testing.T) {
		outcome, err := svc.ApplyAction(ctx, created.ID, "player_pass", nil)
		if err != nil {
			t.Fatalf("expected the violation inside the outcome, got error %v", err)
		}
		if outcome.Result.Success {
			t.Error("expected passing mid-auction to fail")
		}
		if outcome.Result.Code == "" {
			t.Error("expected a rule code on the failed result")
		}
	})

	t.Run("unknown verb is an error", func(t *testing.T) {
		if _, err := svc.ApplyAction(ctx, created.ID, "do_a_flip", nil); err == nil {
			t.Error("expected an error for an unknown verb")
		}
	})

	t.Run("unknown session is an error", func(t *testing.T) {
		if _, err := svc.ApplyAction(ctx, "nope", "player_pass", nil); err == nil {
			t.Error("expected an error for an unknown session")
		}
	})
}

func TestGetGameState(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.CreateSession(ctx, "germany")

	state, err := svc.GetGameState(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get game state: %v", err)
	}
	if state.Round != 1 {
		t.Errorf("expected round 1, got %d", state.Round)
	}
	if len(state.PlantMarket) == 0 {
		t.Error("expected an opening plant market")
	}
}

func TestGetActionHistory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, _ := svc.CreateSession(ctx, "germany")

	// Record a mix of legal and rejected actions.
	cardID := created.GameState.PlantMarket[0]
	params, _ := json.Marshal(map[string]string{"card_id": cardID})
	svc.ApplyAction(ctx, created.ID, "start_auction", params)
	svc.ApplyAction(ctx, created.ID, "player_pass", nil)
	svc.ApplyAction(ctx, created.ID, "player_pass", nil)

	t.Run("defaults to newest first", func(t *testing.T) {
		resp, err := svc.GetActionHistory(ctx, created.ID, service.HistoryOptions{})
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if resp.Total != 3 {
			t.Fatalf("expected 3 records, got %d", resp.Total)
		}
		if resp.Actions[0].Seq != 3 {
			t.Errorf("expected the latest record first, got seq %d", resp.Actions[0].Seq)
		}
		if resp.Actions[0].Verb != "player_pass" {
			t.Errorf("unexpected latest verb %q", resp.Actions[0].Verb)
		}
		if !resp.Actions[2].Success {
			t.Error("expected the auction start to be recorded as successful")
		}
	})

	t.Run("ascending order", func(t *testing.T) {
		resp, err := svc.GetActionHistory(ctx, created.ID, service.HistoryOptions{Order: "asc"})
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if resp.Actions[0].Verb != "start_auction" {
			t.Errorf("expected the auction start first, got %q", resp.Actions[0].Verb)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := svc.GetActionHistory(ctx, created.ID, service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"})
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if len(resp.Actions) != 1 {
			t.Fatalf("expected 1 record on page 2, got %d", len(resp.Actions))
		}
		if resp.TotalPages != 2 || !resp.HasPrevious || resp.HasNext {
			t.Errorf("unexpected pagination metadata: %+v", resp)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		fresh, _ := svc.CreateSession(ctx, "germany")
		resp, err := svc.GetActionHistory(ctx, fresh.ID, service.HistoryOptions{})
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if resp.Total != 0 || len(resp.Actions) != 0 {
			t.Errorf("expected an empty history, got %+v", resp)
		}
	})
}

func TestConfigOperations(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	configs, err := svc.ListConfigs(ctx)
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 1 || configs[0].ConfigID != "germany" {
		t.Errorf("unexpected config list: %+v", configs)
	}

	config, err := svc.LoadConfig(ctx, "germany")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	custom := *config
	custom.Name = "germany-custom"
	if err := svc.SaveConfig(ctx, "custom", &custom); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if _, err := svc.LoadConfig(ctx, "custom"); err != nil {
		t.Errorf("expected the saved config to load: %v", err)
	}
}
