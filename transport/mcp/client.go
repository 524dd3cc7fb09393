package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/fanyewuji/power-grid-game/game/engine"
	"github.com/fanyewuji/power-grid-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Power Grid Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Power Grid Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Outbid rivals for power plants, buy fuel from a shared market, build a network
of cities, and earn the biggest payout by powering the most cities.

AVAILABLE TOOLS:
- game_state: Get current game state (players, market, plants, auction)
- apply_action: Apply one game action - requires intent explanation
- action_history: View past actions
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules
- market_overview: Detailed view of the resource ladders and plant market

NOTE: The 'intent' parameter on apply_action serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// actionVerbs lists every verb the engine accepts, for the tool schema.
var actionVerbs = []string{
	"start_auction",
	"submit_bid",
	"pass_bid",
	"player_pass",
	"discard_plant",
	"add_res_to_purchase",
	"put_back_res_to_purchase",
	"purchase_resources",
	"can_build_house",
	"build_house",
	"add_res_to_power",
	"remove_res_from_power",
	"generate_power",
	"move_resource",
	"get_possible_plants_for_leftover",
	"add_leftover_on_hold",
	"put_back_to_leftover",
	"confirm_leftover_allocation",
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "apply_action",
		Description: "Apply one game action for the current player (auction bids, resource purchases, city builds, power generation)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"verb": map[string]interface{}{
					"type":        "string",
					"enum":        actionVerbs,
					"description": "Action verb to apply",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Verb-specific parameters, e.g. {\"card_id\":\"13\"} for start_auction or {\"city\":\"Hamburg\",\"cost\":10} for build_house",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this action (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "verb"},
		},
	}, c.handleApplyAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "market_overview",
		Description: "Detailed view of the resource ladders (price per token, availability, reserve) and the plant market. Useful before committing to purchases.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMarketOverview)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		phase := ""
		if s.GameState != nil {
			phase = fmt.Sprintf(", Phase: %s, Round: %d", s.GameState.Phase, s.GameState.Round)
		}
		result += fmt.Sprintf("- %s (Config: %s%s, Created: %s)\n",
			s.ID, s.ConfigName, phase, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleApplyAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	verb, _ := args["verb"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"verb": verb,
	}
	if params, ok := args["params"].(map[string]interface{}); ok {
		body["params"] = params
	}

	var outcome service.ActionOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/actions", sessionID), body, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatActionOutcome(&outcome)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Players: %d, Cities: %d, Plant cards: %d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.Players, config.Cities, config.PlantCards)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Power Grid Game - Complete Instructions

GAME OBJECTIVE:
Build the most profitable power network. Each round cycles through four
phases: Auction, Resources, Houses (city building), and Bureaucracy
(power generation and payout).

PHASE 1 - AUCTION:
• Any player may put a market plant up for auction with start_auction
• The opening bid is one below the card's face value; the starter must
  then submit_bid at or above face value
• Players bid in turn order with submit_bid or drop out with pass_bid
• The starter cannot pass before placing the first bid
• Last bidder standing pays the current bid and takes the plant
• A player holding 3 plants who wins a 4th must discard_plant;
  fuel on the discarded plant migrates to another plant that can hold
  it, or becomes leftover that must be reallocated or abandoned
• player_pass skips the rest of your auction turn (not allowed in round 1)

PHASE 2 - RESOURCES (reverse turn order):
• add_res_to_purchase stages the cheapest token of a type; the cost
  you send must match the current ladder price or the call is rejected
• You can only buy fuel a plant of yours can burn and store
• put_back_res_to_purchase unstages the latest token
• purchase_resources pays the bill and moves staged fuel onto your plants
• player_pass is blocked while you have an unpaid bill

PHASE 3 - HOUSES:
• can_build_house quotes a city: base cost (10 first house, 15 second,
  20 third) plus the cheapest connection path from your network
• build_house commits the build at the quoted cost
• Cities connected by zero-cost links count as one settlement

PHASE 4 - BUREAUCRACY:
• add_res_to_power commits fuel from a plant's storage
• A plant must be committed exactly its resource requirement or left idle
• generate_power validates every plant, counts powered cities (capped by
  cities you own), pays out from the payout table, and returns spent
  fuel to the reserve
• move_resource shuffles fuel between compatible plants at any time

RESOURCE MARKET:
• Four fuels: coal, oil, trash, uranium
• Each fuel has a price ladder; purchases always take the cheapest token
• The market refills at the end of each round from a finite reserve;
  refill rates depend on game step and player count

STRATEGY NOTES:
• Track rivals' money before bidding wars
• Buying fuel in reverse turn order means last place shops first
• Plant capacity is twice its resource requirement; hybrids burn coal or oil
• Renewable plants need no fuel and always power their full city count

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has unique 4-character ID
- Sessions maintain independent state and configuration
- Use session-specific tools for multi-game management

Use game_state after every action: it shows the plant market, ladders,
every player's plants and fuel, and whose turn it is.`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleMarketOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Market Overview — Step %d, Round %d\n\n", state.Step, state.Round))

	b.WriteString("Plant Market:\n")
	b.WriteString("  " + strings.Join(state.PlantMarket, ", "))
	b.WriteString(fmt.Sprintf("\n  (%d cards left in the deck)\n\n", state.DeckRemaining))

	b.WriteString("Resource Ladders (cheapest first):\n")
	types := make([]string, 0, len(state.Ladders))
	for t := range state.Ladders {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, name := range types {
		t := engine.ResourceType(name)
		ladder := state.Ladders[t]
		available := 0
		cheapest := -1
		for _, slot := range ladder {
			if slot.Available {
				available++
				if cheapest < 0 || slot.Price < cheapest {
					cheapest = slot.Price
				}
			}
		}
		if cheapest < 0 {
			b.WriteString(fmt.Sprintf("  %-8s sold out (reserve: %d)\n", name, state.Reserve[t]))
			continue
		}
		b.WriteString(fmt.Sprintf("  %-8s %d available, next costs %d (reserve: %d)\n",
			name, available, cheapest, state.Reserve[t]))
	}

	if state.Auction != nil {
		b.WriteString(fmt.Sprintf("\nAuction in progress: plant %s at %d (active bidder: %s)\n",
			state.Auction.CardID, state.Auction.CurrentBid, state.Auction.ActiveBidderName))
	}

	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.Snapshot) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Phase: %s | Round: %d | Step: %d\n",
		state.Phase, state.Round, state.Step))

	// Players in turn order, marking the active seat
	result.WriteString("\nPlayers:\n")
	for _, p := range state.Players {
		marker := " "
		if p.ID == state.CurrentPlayer {
			marker = ">"
		}
		done := ""
		if p.PhaseCompleted {
			done = " [done]"
		}
		plants := make([]string, 0, len(p.Plants))
		for _, plant := range p.Plants {
			plants = append(plants, plant.CardID)
		}
		result.WriteString(fmt.Sprintf("%s %s: %d money, %d cities, plants [%s]%s\n",
			marker, p.Name, p.Money, len(p.Cities), strings.Join(plants, ","), done))
		if p.MoneyToPay > 0 {
			result.WriteString(fmt.Sprintf("    pending resource bill: %d\n", p.MoneyToPay))
		}
		if p.Leftover.Total() > 0 {
			result.WriteString(fmt.Sprintf("    leftover fuel to reallocate: %s\n", formatResourceSet(p.Leftover)))
		}
	}

	// Market summary
	result.WriteString(fmt.Sprintf("\nPlant market: %s\n", strings.Join(state.PlantMarket, ", ")))
	result.WriteString("Resources: ")
	types := make([]string, 0, len(state.Ladders))
	for t := range state.Ladders {
		types = append(types, string(t))
	}
	sort.Strings(types)
	parts := make([]string, 0, len(types))
	for _, name := range types {
		ladder := state.Ladders[engine.ResourceType(name)]
		cheapest := -1
		for _, slot := range ladder {
			if slot.Available && (cheapest < 0 || slot.Price < cheapest) {
				cheapest = slot.Price
			}
		}
		if cheapest < 0 {
			parts = append(parts, fmt.Sprintf("%s sold out", name))
		} else {
			parts = append(parts, fmt.Sprintf("%s from %d", name, cheapest))
		}
	}
	result.WriteString(strings.Join(parts, " | "))
	result.WriteString("\n")

	// Auction status
	if state.Auction != nil {
		result.WriteString(fmt.Sprintf("\nAuction: plant %s at %d, active bidder %s",
			state.Auction.CardID, state.Auction.CurrentBid, state.Auction.ActiveBidderName))
		if len(state.Auction.Passed) > 0 {
			result.WriteString(fmt.Sprintf(" (%d passed)", len(state.Auction.Passed)))
		}
		result.WriteString("\n")
	}

	if state.PendingDiscard != "" {
		result.WriteString(fmt.Sprintf("\nWaiting on a plant discard from player %s\n", state.PendingDiscard))
	}

	return result.String()
}

func formatResourceSet(set engine.ResourceSet) string {
	parts := make([]string, 0, len(set))
	names := make([]string, 0, len(set))
	for t := range set {
		names = append(names, string(t))
	}
	sort.Strings(names)
	for _, name := range names {
		if n := set[engine.ResourceType(name)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", name, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func formatActionOutcome(outcome *service.ActionOutcome) string {
	var b strings.Builder

	r := outcome.Result
	if r.Success {
		b.WriteString(fmt.Sprintf("✓ %s succeeded\n", outcome.Verb))
	} else {
		b.WriteString(fmt.Sprintf("✗ %s rejected", outcome.Verb))
		if r.Code != "" {
			b.WriteString(fmt.Sprintf(" [%s]", r.Code))
		}
		b.WriteString("\n")
	}
	if r.Message != "" {
		b.WriteString(r.Message + "\n")
	}

	if r.Winner != "" {
		b.WriteString(fmt.Sprintf("Auction won by %s at %d\n", r.Winner, r.Price))
	}
	if r.Cost > 0 {
		b.WriteString(fmt.Sprintf("Cost: %d\n", r.Cost))
	}
	if r.Payout > 0 {
		b.WriteString(fmt.Sprintf("Payout: %d\n", r.Payout))
	}
	if len(r.Plants) > 0 {
		b.WriteString(fmt.Sprintf("Eligible plants: %s\n", strings.Join(r.Plants, ", ")))
	}
	if r.NeedsInput != nil {
		b.WriteString(fmt.Sprintf("Input needed (%s): pick one of [%s] and resume with %s\n",
			r.NeedsInput.Kind, strings.Join(r.NeedsInput.Options, ", "), r.NeedsInput.Resume))
	}

	b.WriteString("\n" + formatGameState(outcome.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Action History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.Total)

	for _, record := range history.Actions {
		status := "✓"
		if !record.Success {
			status = "✗"
		}
		line := fmt.Sprintf("%d. %s %s [%s r%d]", record.Seq, record.Verb, status, record.Phase, record.Round)
		if record.Code != "" {
			line += fmt.Sprintf(" code=%s", record.Code)
		}
		result += line + "\n"
	}

	return result
}
