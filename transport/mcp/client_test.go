package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/fanyewuji/power-grid-game/game/engine"
	"github.com/fanyewuji/power-grid-game/game/service"
)

func testSnapshot(t *testing.T) *engine.Snapshot {
	t.Helper()
	eng, err := engine.NewEngine(engine.DefaultGameConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng.Snapshot()
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "test-session",
		"phase": "Auction",
		"round": float64(1),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/nope", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "session not found") {
		t.Errorf("Expected the server's error message, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	snapshot := testSnapshot(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "ab12",
			ConfigName: "germany",
			GameState:  snapshot,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "ab12") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Phase: Auction") {
		t.Errorf("Expected the game state in the result, got: %s", resultStr.Text)
	}
}

func TestClient_applyAction(t *testing.T) {
	snapshot := testSnapshot(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/actions" {
			t.Errorf("Expected POST /api/sessions/ab12/actions, got %s %s", r.Method, r.URL.Path)
		}

		var req struct {
			Verb   string          `json:"verb"`
			Params json.RawMessage `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Verb != "start_auction" {
			t.Errorf("Expected verb start_auction, got %q", req.Verb)
		}

		resp := service.ActionOutcome{
			SessionID: "ab12",
			Verb:      req.Verb,
			Result:    &engine.Result{Success: true, Message: "auction started"},
			GameState: snapshot,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "apply_action",
			Arguments: map[string]interface{}{
				"session_id": "ab12",
				"verb":       "start_auction",
				"params":     map[string]interface{}{"card_id": "4"},
				"intent":     "open cheap to bait a bidding war",
			},
		},
	}

	result, err := client.handleApplyAction(ctx, request)
	if err != nil {
		t.Fatalf("applyAction failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(resultStr.Text, "start_auction succeeded") {
		t.Errorf("Expected a success line, got: %s", resultStr.Text)
	}
}

func TestFormatGameState(t *testing.T) {
	state := testSnapshot(t)

	result := formatGameState(state)

	expectedFields := []string{
		"Phase: Auction",
		"Round: 1",
		"Step: 1",
		"Plant market:",
		"Resources:",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}

	// Every seat shows up by name
	for _, p := range state.Players {
		if !strings.Contains(result, p.Name) {
			t.Errorf("Expected player %s in formatted output", p.Name)
		}
	}

	if formatGameState(nil) != "No game state available" {
		t.Error("Expected a placeholder for a nil state")
	}
}

func TestFormatActionOutcome(t *testing.T) {
	state := testSnapshot(t)

	t.Run("rejection shows the code", func(t *testing.T) {
		outcome := &service.ActionOutcome{
			Verb:      "submit_bid",
			Result:    &engine.Result{Success: false, Code: "bid_too_low", Message: "bid 5 is below the current bid"},
			GameState: state,
		}
		text := formatActionOutcome(outcome)
		if !strings.Contains(text, "submit_bid rejected [bid_too_low]") {
			t.Errorf("Expected the rejection line, got: %s", text)
		}
	})

	t.Run("auction win shows winner and price", func(t *testing.T) {
		outcome := &service.ActionOutcome{
			Verb:      "pass_bid",
			Result:    &engine.Result{Success: true, Winner: "p1", Price: 23},
			GameState: state,
		}
		text := formatActionOutcome(outcome)
		if !strings.Contains(text, "Auction won by p1 at 23") {
			t.Errorf("Expected the auction summary, got: %s", text)
		}
	})

	t.Run("selection request names the follow-up", func(t *testing.T) {
		outcome := &service.ActionOutcome{
			Verb: "add_res_to_purchase",
			Result: &engine.Result{
				Success: false,
				Code:    "selection_required",
				NeedsInput: &engine.SelectionRequest{
					Kind:    "choose_plant",
					Options: []string{"4", "8"},
					Resume:  "add_res_to_purchase",
				},
			},
			GameState: state,
		}
		text := formatActionOutcome(outcome)
		if !strings.Contains(text, "choose_plant") || !strings.Contains(text, "4, 8") {
			t.Errorf("Expected the selection prompt, got: %s", text)
		}
	})
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Actions: []service.ActionRecord{
			{Seq: 2, Verb: "player_pass", Success: false, Code: "illegal_pass", Phase: engine.PhaseAuction, Round: 1},
			{Seq: 1, Verb: "start_auction", Success: true, Phase: engine.PhaseAuction, Round: 1},
		},
		Total:      2,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}

	result := formatHistory(history)

	if !strings.Contains(result, "Total: 2") {
		t.Errorf("Expected the total, got: %s", result)
	}
	if !strings.Contains(result, "start_auction ✓") {
		t.Errorf("Expected the successful record, got: %s", result)
	}
	if !strings.Contains(result, "player_pass ✗") || !strings.Contains(result, "code=illegal_pass") {
		t.Errorf("Expected the failed record with its code, got: %s", result)
	}
}
