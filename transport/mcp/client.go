package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/harvest-haven/game/engine"
	"github.com/wricardo/harvest-haven/game/service"
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
		"Harvest Haven",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Harvest Haven - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Grow crops on a square farm, harvest them for coins and keep the farm alive
through random weather and pests.

AVAILABLE TOOLS:
- create_session: Create new farm session
- list_sessions: List all active sessions
- get_session: Get session details
- farm_state: Get current farm, energy, coins and inventory
- describe_plot: Get detailed info about one plot
- plant / water / fertilize / harvest: Field actions at (x, y), 1 energy each
- buy: Purchase seeds, water or fertilizer (no energy)
- end_day: Advance the day, roll the weather and restore energy
- reset_game: Start the farm over
- save_game / load_game: Checkpoint the player and farm in a slot
- day_history: Past day reports
- list_configs: List available rulesets
- game_instructions: Full rules and strategy

NOTE: The 'intent' parameter on field actions serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

func sessionProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intentProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Brief explanation of the intent behind this action (serves as a rubber duck to help explain your reasoning)",
	}
}

// plotSchema describes a tool that targets one plot
func plotSchema(extra map[string]interface{}, required ...string) mcp.ToolInputSchema {
	props := map[string]interface{}{
		"session_id": sessionProp(),
		"x": map[string]interface{}{
			"type":        "integer",
			"description": "Row of the plot (0-based)",
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"description": "Column of the plot (0-based)",
		},
		"intent": intentProp(),
	}
	for k, v := range extra {
		props[k] = v
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   append([]string{"session_id", "x", "y"}, required...),
	}
}

func sessionSchema(extra map[string]interface{}) mcp.ToolInputSchema {
	props := map[string]interface{}{
		"session_id": sessionProp(),
	}
	for k, v := range extra {
		props[k] = v
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   []string{"session_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new farm session with optional ruleset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Ruleset to use, e.g. classic or easy (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active farm sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionSchema(nil),
	}, c.handleGetSession)

	// Farm
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "farm_state",
		Description: "Get the current farm, energy, coins and inventory",
		InputSchema: sessionSchema(nil),
	}, c.handleFarmState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_plot",
		Description: "Get detailed information about one plot: crop, stage, days grown and what it still needs",
		InputSchema: plotSchema(nil),
	}, c.handleDescribePlot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plant",
		Description: "Plant a seed on an Empty or Dead plot. Costs 1 energy and 1 seed.",
		InputSchema: plotSchema(map[string]interface{}{
			"crop": map[string]interface{}{
				"type":        "string",
				"enum":        []string{string(engine.Wheat), string(engine.Tomato), string(engine.Carrot)},
				"description": "Crop to plant",
			},
		}, "crop"),
	}, c.handlePlant)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "water",
		Description: "Water a growing crop. Costs 1 energy and 1 Water.",
		InputSchema: plotSchema(nil),
	}, c.plotHandler("water"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fertilize",
		Description: "Fertilize a growing crop. Costs 1 energy and 1 Fertilizer.",
		InputSchema: plotSchema(nil),
	}, c.plotHandler("fertilize"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "harvest",
		Description: "Harvest a Harvestable crop for coins. Costs 1 energy.",
		InputSchema: plotSchema(nil),
	}, c.plotHandler("harvest"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "buy",
		Description: "Buy one shop lot of an item. Costs coins, not energy.",
		InputSchema: sessionSchema(map[string]interface{}{
			"item": map[string]interface{}{
				"type":        "string",
				"enum":        shopItemNames(),
				"description": "Item to buy",
			},
		}),
	}, c.handleBuy)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_day",
		Description: "End the day: roll weather, grow crops and restore energy",
		InputSchema: sessionSchema(nil),
	}, c.handleEndDay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the farm to its starting state",
		InputSchema: sessionSchema(nil),
	}, c.handleReset)

	// Checkpoints
	slotProp := map[string]interface{}{
		"slot": map[string]interface{}{
			"type":        "string",
			"description": "Save slot name (optional, defaults to 'default')",
		},
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "save_game",
		Description: "Checkpoint the player and farm into a save slot",
		InputSchema: sessionSchema(slotProp),
	}, c.handleSaveGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "load_game",
		Description: "Restore the player and farm from a save slot. The day counter is kept.",
		InputSchema: sessionSchema(slotProp),
	}, c.handleLoadGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "day_history",
		Description: "Get past day reports for a session",
		InputSchema: sessionSchema(map[string]interface{}{
			"page": map[string]interface{}{
				"type":        "integer",
				"description": "Page number",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Items per page",
			},
		}),
	}, c.handleDayHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available rulesets",
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
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
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

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func sessionPath(sessionID, suffix string) string {
	return fmt.Sprintf("/api/sessions/%s%s", url.PathEscape(sessionID), suffix)
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
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
		day := 0
		if s.GameState != nil {
			day = s.GameState.Day
		}
		result += fmt.Sprintf("- %s (Config: %s, Day: %d, Created: %s)\n",
			s.ID, s.ConfigName, day, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", sessionPath(sessionID, ""), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleFarmState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", sessionPath(sessionID, "/state"), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handlePlant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	crop, _ := args["crop"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	body := map[string]interface{}{"x": x, "y": y, "crop": crop}

	var result service.ActionResponse
	if err := c.apiCall("POST", sessionPath(sessionID, "/plant"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

// plotHandler proxies water, fertilize and harvest, which share a body shape
func (c *Client) plotHandler(action string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		sessionID, _ := args["session_id"].(string)

		x, okX := intArg(args, "x")
		y, okY := intArg(args, "y")
		if !okX || !okY {
			return mcp.NewToolResultError("x and y are required"), nil
		}

		var result service.ActionResponse
		err := c.apiCall("POST", sessionPath(sessionID, "/"+action), map[string]int{"x": x, "y": y}, &result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatActionResult(&result)), nil
	}
}

func (c *Client) handleBuy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	item, _ := args["item"].(string)

	var result service.ActionResponse
	if err := c.apiCall("POST", sessionPath(sessionID, "/buy"), map[string]string{"item": item}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleEndDay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.DayResult
	if err := c.apiCall("POST", sessionPath(sessionID, "/end-day"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatDayResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", sessionPath(sessionID, "/reset"), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSaveGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	slot, _ := args["slot"].(string)

	var result service.SaveResult
	if err := c.apiCall("POST", sessionPath(sessionID, "/save"), map[string]string{"slot": slot}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status := "✓ Saved"
	if !result.Saved {
		status = "✗ Not saved"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s to slot '%s'\n%s", status, result.Slot, result.Message)), nil
}

func (c *Client) handleLoadGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	slot, _ := args["slot"].(string)

	var result service.LoadResult
	if err := c.apiCall("POST", sessionPath(sessionID, "/load"), map[string]string{"slot": slot}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Loaded {
		return mcp.NewToolResultText(fmt.Sprintf("Nothing to load from slot '%s'\n%s", result.Slot, result.Message)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✓ Loaded slot '%s'\n\n%s", result.Slot, formatGameState(result.GameState))), nil
}

func (c *Client) handleDayHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall("GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Rulesets:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Farm: %dx%d, Coins: %d\n\n",
			config.Name, config.ConfigID, config.Description, config.FarmSize, config.FarmSize, config.StartingCoins)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribePlot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	var state engine.GameState
	err := c.apiCall("GET", sessionPath(sessionID, "/state"), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if state.Farm == nil {
		return mcp.NewToolResultError("farm unavailable"), nil
	}

	cell, err := state.Farm.Cell(x, y)
	if err != nil {
		size := state.Farm.Size
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Farm size is %dx%d (0-%d for both x and y)",
			x, y, size, size, size-1)), nil
	}

	return mcp.NewToolResultText(describePlot(x, y, cell)), nil
}

func describePlot(x, y int, cell engine.Crop) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plot at (%d, %d):\n━━━━━━━━━━━━━━━━━━━━━━━━\n", x, y)
	fmt.Fprintf(&b, "Glyph: %s\nStage: %s\n", engine.Glyph(cell), cell.Stage)

	switch cell.Stage {
	case engine.Empty:
		b.WriteString("Nothing planted. You can plant here.\n")
		return b.String()
	case engine.Dead:
		fmt.Fprintf(&b, "Crop: %s (dead)\nYou can plant over it.\n", cell.Kind)
		return b.String()
	}

	spec, _ := engine.Spec(cell.Kind)
	fmt.Fprintf(&b, "Crop: %s\nDays grown: %d/%d\nWatered: %d/%d\nFertilized: %d/%d\n",
		cell.Kind, cell.DaysGrown, spec.GrowTime,
		cell.Watered, spec.WaterNeeded,
		cell.Fertilized, spec.FertilizerNeeded)

	if cell.Stage == engine.Harvestable {
		fmt.Fprintf(&b, "✅ Ready to harvest for %d coins.\n", spec.SellPrice)
	}
	if d := engine.DaysUntilDeath(cell); d >= 0 && d <= 1 {
		b.WriteString("⚠️ WARNING: this crop dies at the next day end unless harvested.\n")
	}
	return b.String()
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var crops strings.Builder
	for _, kind := range engine.CropKinds() {
		spec, _ := engine.Spec(kind)
		fmt.Fprintf(&crops, "• %s: grows in %d days, needs %d water and %d fertilizer, sells for %d\n",
			kind, spec.GrowTime, spec.WaterNeeded, spec.FertilizerNeeded, spec.SellPrice)
	}

	var shop strings.Builder
	for _, item := range engine.PriceList() {
		fmt.Fprintf(&shop, "• %s: %d coins for %d\n", item.Item, item.Price, item.Quantity)
	}

	instructions := fmt.Sprintf(`🌾 Harvest Haven - Complete Instructions

GAME OBJECTIVE:
Plant, tend and harvest crops to earn coins. There is no win or lose state;
play as many days as you like.

GAME MECHANICS:
• Energy: You have %d energy per day. Plant, water, fertilize and harvest cost 1 each.
• Buying from the shop costs coins only.
• End the day to restore energy. Crops grow only when all their water and
  fertilizer needs are met.
• A crop that sits more than %d days past its grow time dies.

CROPS:
%s
SHOP:
%s
FARM LEGEND:
• ⬜ - Empty plot
• 🌱 - Planted seed
• 🌾 🍅 🥕 - Growing crop
• 🥖 - Harvestable wheat (tomato and carrot keep their glyph; check the stage)
• 💀 - Dead crop (plant over it)

DAILY EVENTS:
• Rain: waters every growing crop for free
• Drought: no effect on crops
• Pests: may kill a few growing crops

STRATEGY:
- Water and fertilize crops on the day you plant them
- Harvest as soon as a crop is ready; ready crops still age
- Keep a few coins for water; rain is not guaranteed
- Save before risky days; load keeps the day counter

COORDINATES:
- x selects the row, y the column, both 0-based
- Out-of-bounds coordinates are rejected as errors

Remember: check farm_state after every end_day to see what the weather did.

Good luck, farmer! 🚜`, engine.MaxEnergy, engine.GraceDays, crops.String(), shop.String())

	return mcp.NewToolResultText(instructions), nil
}

func shopItemNames() []string {
	list := engine.PriceList()
	names := make([]string, len(list))
	for i, item := range list {
		names[i] = item.Item
	}
	return names
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil || state.Player == nil {
		return "No game state available"
	}

	var result strings.Builder
	player := state.Player

	// Header (include cumulative total actions)
	result.WriteString(fmt.Sprintf("Day: %d | Energy: %d/%d | Coins: %d | Actions: %d\n",
		state.Day, player.Energy, engine.MaxEnergy, player.Coins, state.TotalActions))
	result.WriteString("Inventory: " + formatCounts(player.Inventory) + "\n")

	harvested := make(map[string]int, len(player.Harvested))
	for kind, n := range player.Harvested {
		harvested[string(kind)] = n
	}
	if len(harvested) > 0 {
		result.WriteString("Harvested: " + formatCounts(harvested) + "\n")
	}

	if state.CropRisk != "" {
		result.WriteString(fmt.Sprintf("Crop risk: %s\n", state.CropRisk))
	}
	if state.HarvestValue > 0 {
		result.WriteString(fmt.Sprintf("Pending harvest: %d coins\n", state.HarvestValue))
	}
	if len(state.PlantablePlots) > 0 {
		result.WriteString(fmt.Sprintf("Plantable plots (%d): %s\n", len(state.PlantablePlots), formatPositions(state.PlantablePlots, 6)))
	}
	result.WriteString("\n")

	// Prefer server-provided farm_view; otherwise render
	if len(state.FarmView) > 0 {
		for _, line := range state.FarmView {
			result.WriteString(line + "\n")
		}
	} else if state.Farm != nil {
		result.WriteString(engine.RenderFarm(state.Farm))
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

// formatPositions lists up to limit plots as "(x,y)"
func formatPositions(positions []engine.Position, limit int) string {
	parts := make([]string, 0, limit+1)
	for i, pos := range positions {
		if i == limit {
			parts = append(parts, fmt.Sprintf("+%d more", len(positions)-limit))
			break
		}
		parts = append(parts, fmt.Sprintf("(%d,%d)", pos.X, pos.Y))
	}
	return strings.Join(parts, " ")
}

// formatCounts renders a stable "Name: n" list
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "(empty)"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %d", name, counts[name])
	}
	return strings.Join(parts, ", ")
}

func formatActionResult(result *service.ActionResponse) string {
	var b strings.Builder

	verb := result.Action
	if verb == "" {
		verb = "Action"
	}
	if result.Success {
		b.WriteString(fmt.Sprintf("✓ %s successful\n", verb))
	} else {
		b.WriteString(fmt.Sprintf("✗ %s failed (%s)\n", verb, result.Code))
	}

	if result.Position != nil {
		b.WriteString(fmt.Sprintf("Plot: (%d,%d)\n", result.Position.X, result.Position.Y))
	}
	if result.Item != "" {
		b.WriteString(fmt.Sprintf("Item: %s\n", result.Item))
	}
	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatDayResult(result *service.DayResult) string {
	var b strings.Builder
	report := result.Report

	b.WriteString(fmt.Sprintf("Day %d ended • Event: %s\n", report.Day, report.Event))
	if report.Message != "" {
		b.WriteString(report.Message + "\n")
	}
	if len(report.Killed) > 0 {
		killed := make([]string, len(report.Killed))
		for i, p := range report.Killed {
			killed[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		b.WriteString("Pests killed: " + strings.Join(killed, " ") + "\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Day History (Page %d/%d) • Total days: %d\n\n",
		history.Page, history.TotalPages, history.TotalDays)

	if len(history.Days) == 0 {
		return result + "(no days ended yet)"
	}

	for _, day := range history.Days {
		rain := ""
		if day.Rained {
			rain = " 🌧"
		}
		result += fmt.Sprintf("Day %d: %s%s - %s\n", day.Day, day.Event, rain, day.Message)
	}

	return result
}
