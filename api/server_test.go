package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/harvest-haven/game/config"
	"github.com/wricardo/harvest-haven/game/engine"
	"github.com/wricardo/harvest-haven/game/service"
	"github.com/wricardo/harvest-haven/game/session"
	"github.com/wricardo/harvest-haven/game/snapshot"
	"github.com/wricardo/harvest-haven/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Field actions
	PlantFunc     func(ctx context.Context, sessionID string, x, y int, crop string) (*service.ActionResponse, error)
	WaterFunc     func(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error)
	FertilizeFunc func(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error)
	HarvestFunc   func(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error)

	// Economy and turns
	BuyFunc    func(ctx context.Context, sessionID, item string) (*service.ActionResponse, error)
	EndDayFunc func(ctx context.Context, sessionID string) (*service.DayResult, error)
	ResetFunc  func(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameStateFunc  func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetDayHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Checkpoints
	SaveGameFunc func(ctx context.Context, sessionID, slot string) (*service.SaveResult, error)
	LoadGameFunc func(ctx context.Context, sessionID, slot string) (*service.LoadResult, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.GameConfig) error
}

func mockState() *engine.GameState {
	return engine.InitGameStateFromConfig(engine.DefaultConfig())
}

func okAction(action string, x, y int) *service.ActionResponse {
	return &service.ActionResponse{
		ActionResult: engine.ActionResult{
			Success:  true,
			Code:     engine.CodeOK,
			Action:   action,
			Position: &engine.Position{X: x, Y: y},
		},
		GameState: mockState(),
	}
}

// Session Management
func (m *MockGameService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{
		ID:         "test-session",
		ConfigName: configName,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "test-config",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// Field actions
func (m *MockGameService) Plant(ctx context.Context, sessionID string, x, y int, crop string) (*service.ActionResponse, error) {
	if m.PlantFunc != nil {
		return m.PlantFunc(ctx, sessionID, x, y, crop)
	}
	return okAction("plant", x, y), nil
}

func (m *MockGameService) Water(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error) {
	if m.WaterFunc != nil {
		return m.WaterFunc(ctx, sessionID, x, y)
	}
	return okAction("water", x, y), nil
}

func (m *MockGameService) Fertilize(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error) {
	if m.FertilizeFunc != nil {
		return m.FertilizeFunc(ctx, sessionID, x, y)
	}
	return okAction("fertilize", x, y), nil
}

func (m *MockGameService) Harvest(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error) {
	if m.HarvestFunc != nil {
		return m.HarvestFunc(ctx, sessionID, x, y)
	}
	return okAction("harvest", x, y), nil
}

// Economy and turns
func (m *MockGameService) Buy(ctx context.Context, sessionID, item string) (*service.ActionResponse, error) {
	if m.BuyFunc != nil {
		return m.BuyFunc(ctx, sessionID, item)
	}
	return &service.ActionResponse{
		ActionResult: engine.ActionResult{Success: true, Code: engine.CodeOK, Action: "buy", Item: item},
		GameState:    mockState(),
	}, nil
}

func (m *MockGameService) EndDay(ctx context.Context, sessionID string) (*service.DayResult, error) {
	if m.EndDayFunc != nil {
		return m.EndDayFunc(ctx, sessionID)
	}
	state := mockState()
	state.Day = 2
	return &service.DayResult{
		Report:    engine.DayReport{Day: 1, Event: engine.EventNone},
		GameState: state,
	}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return mockState(), nil
}

// Game State
func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return mockState(), nil
}

func (m *MockGameService) GetDayHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetDayHistoryFunc != nil {
		return m.GetDayHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Days:       []engine.DayReport{},
		TotalDays:  0,
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

// Checkpoints
func (m *MockGameService) SaveGame(ctx context.Context, sessionID, slot string) (*service.SaveResult, error) {
	if m.SaveGameFunc != nil {
		return m.SaveGameFunc(ctx, sessionID, slot)
	}
	return &service.SaveResult{Slot: slot, Saved: true, Message: "Game saved!"}, nil
}

func (m *MockGameService) LoadGame(ctx context.Context, sessionID, slot string) (*service.LoadResult, error) {
	if m.LoadGameFunc != nil {
		return m.LoadGameFunc(ctx, sessionID, slot)
	}
	return &service.LoadResult{Slot: slot, Loaded: true, Message: "Game loaded!", GameState: mockState()}, nil
}

// Configuration
func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return &engine.GameConfig{
		Name:        configName,
		Description: "Test config",
		FarmSize:    5,
	}, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(mockService *MockGameService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default config",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					if configName != "" {
						t.Errorf("Expected empty config name, got %s", configName)
					}
					return &service.SessionInfo{
						ID:             "a1b2",
						ConfigName:     "classic",
						CreatedAt:      time.Now(),
						LastAccessedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "a1b2" {
					t.Errorf("Expected session ID a1b2, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create session with config_id",
			requestBody: map[string]string{"config_id": "easy", "config_name": "ignored"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					if configName != "easy" {
						t.Errorf("Expected config name 'easy', got %s", configName)
					}
					return &service.SessionInfo{ID: "c3d4", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != "easy" {
					t.Errorf("Expected config name 'easy', got %s", resp.ConfigName)
				}
			},
		},
		{
			name:        "Create session with legacy config_name",
			requestBody: map[string]string{"config_name": "big_farm"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					if configName != "big_farm" {
						t.Errorf("Expected config name 'big_farm', got %s", configName)
					}
					return &service.SessionInfo{ID: "e5f6", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Unknown config is a bad request",
			requestBody: map[string]string{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: config 'nope' not found", service.ErrInvalidRequest)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions", tt.requestBody)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "List multiple sessions newest first",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{ID: "old1", ConfigName: "easy", LastAccessedAt: older},
						{ID: "new1", ConfigName: "classic", LastAccessedAt: newer},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 2 {
					t.Errorf("Expected count 2, got %v", resp["count"])
				}
				sessions := resp["sessions"].([]interface{})
				if first := sessions[0].(map[string]interface{}); first["id"] != "new1" {
					t.Errorf("Expected new1 first, got %v", first["id"])
				}
			},
		},
		{
			name:  "Limit and ascending order",
			query: "?order=asc&limit=1",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{ID: "new1", LastAccessedAt: newer},
						{ID: "old1", LastAccessedAt: older},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 1 || resp["total"].(float64) != 2 {
					t.Errorf("Expected count 1 of 2, got %v of %v", resp["count"], resp["total"])
				}
				sessions := resp["sessions"].([]interface{})
				if first := sessions[0].(map[string]interface{}); first["id"] != "old1" {
					t.Errorf("Expected old1 first, got %v", first["id"])
				}
			},
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return nil, fmt.Errorf("database error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions"+tt.query, nil)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	notFound := func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
		return nil, fmt.Errorf("session %s: %w", sessionID, service.ErrSessionNotFound)
	}

	t.Run("get existing", func(t *testing.T) {
		server := setupTestServer(&MockGameService{})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp service.SessionInfo
		parseResponse(t, w, &resp)
		if resp.ID != "ab12" {
			t.Errorf("Expected ab12, got %s", resp.ID)
		}
	})

	t.Run("get unknown is 404", func(t *testing.T) {
		server := setupTestServer(&MockGameService{GetSessionFunc: notFound})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/sessions/zzzz", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		var deleted string
		server := setupTestServer(&MockGameService{
			DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
				deleted = sessionID
				return nil
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("DELETE", "/api/sessions/ab12", nil))

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if deleted != "ab12" {
			t.Errorf("Expected ab12 deleted, got %q", deleted)
		}
	})

	t.Run("delete unknown is 404", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
				return fmt.Errorf("failed to delete session %s: %w", sessionID, service.ErrSessionNotFound)
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("DELETE", "/api/sessions/zzzz", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// Field Action Tests

func TestPlant(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Valid plant",
			requestBody: map[string]interface{}{"x": 1, "y": 2, "crop": "Wheat"},
			setupMock: func(m *MockGameService) {
				m.PlantFunc = func(ctx context.Context, sessionID string, x, y int, crop string) (*service.ActionResponse, error) {
					if x != 1 || y != 2 || crop != "Wheat" {
						t.Errorf("Unexpected plant args (%d,%d) %s", x, y, crop)
					}
					return okAction("plant", x, y), nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.ActionResponse
				parseResponse(t, w, &resp)
				if !resp.Success || resp.Code != engine.CodeOK {
					t.Errorf("Expected success, got %+v", resp.ActionResult)
				}
				if resp.GameState == nil {
					t.Error("Expected game state in response")
				}
			},
		},
		{
			name:        "Zero coordinates are valid",
			requestBody: map[string]interface{}{"x": 0, "y": 0, "crop": "Carrot"},
			setupMock: func(m *MockGameService) {
				m.PlantFunc = func(ctx context.Context, sessionID string, x, y int, crop string) (*service.ActionResponse, error) {
					return okAction("plant", x, y), nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Business failure is still 200",
			requestBody: map[string]interface{}{"x": 0, "y": 0, "crop": "Tomato"},
			setupMock: func(m *MockGameService) {
				m.PlantFunc = func(ctx context.Context, sessionID string, x, y int, crop string) (*service.ActionResponse, error) {
					return &service.ActionResponse{
						ActionResult: engine.ActionResult{
							Success: false,
							Code:    engine.CodeInsufficientResource,
							Action:  "plant",
							Message: "No Tomato seeds left.",
						},
						GameState: mockState(),
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.ActionResponse
				parseResponse(t, w, &resp)
				if resp.Success {
					t.Error("Expected success to be false")
				}
				if resp.Code != engine.CodeInsufficientResource {
					t.Errorf("Expected insufficient_resource, got %s", resp.Code)
				}
			},
		},
		{
			name:        "Out of bounds is 400",
			requestBody: map[string]interface{}{"x": 9, "y": 9, "crop": "Wheat"},
			setupMock: func(m *MockGameService) {
				m.PlantFunc = func(ctx context.Context, sessionID string, x, y int, crop string) (*service.ActionResponse, error) {
					return nil, &engine.OutOfBoundsError{X: x, Y: y, Size: 5}
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing coordinates",
			requestBody:    map[string]interface{}{"crop": "Wheat"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing crop",
			requestBody:    map[string]interface{}{"x": 1, "y": 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed body",
			requestBody:    "not an object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Session not found",
			requestBody: map[string]interface{}{"x": 1, "y": 1, "crop": "Wheat"},
			setupMock: func(m *MockGameService) {
				m.PlantFunc = func(ctx context.Context, sessionID string, x, y int, crop string) (*service.ActionResponse, error) {
					return nil, fmt.Errorf("session %s: %w", sessionID, service.ErrSessionNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/ab12/plant", tt.requestBody)
			req = mux.SetURLVars(req, map[string]string{"id": "ab12"})

			server.handlePlant(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestPlotActionsRoute(t *testing.T) {
	calls := map[string][2]int{}
	record := func(name string) func(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error) {
		return func(ctx context.Context, sessionID string, x, y int) (*service.ActionResponse, error) {
			calls[name] = [2]int{x, y}
			return okAction(name, x, y), nil
		}
	}
	mockService := &MockGameService{
		WaterFunc:     record("water"),
		FertilizeFunc: record("fertilize"),
		HarvestFunc:   record("harvest"),
	}
	server := setupTestServer(mockService)

	for i, action := range []string{"water", "fertilize", "harvest"} {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/"+action, map[string]int{"x": i, "y": i + 1}))

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", action, w.Code)
		}
		if calls[action] != [2]int{i, i + 1} {
			t.Errorf("%s: expected (%d,%d), got %v", action, i, i+1, calls[action])
		}
	}

	t.Run("missing y", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/water", map[string]int{"x": 1}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestBuy(t *testing.T) {
	t.Run("valid purchase", func(t *testing.T) {
		var bought string
		server := setupTestServer(&MockGameService{
			BuyFunc: func(ctx context.Context, sessionID, item string) (*service.ActionResponse, error) {
				bought = item
				return &service.ActionResponse{
					ActionResult: engine.ActionResult{Success: true, Code: engine.CodeOK, Action: "buy", Item: item},
					GameState:    mockState(),
				}, nil
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/buy", map[string]string{"item": "Water"}))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if bought != "Water" {
			t.Errorf("Expected Water, got %q", bought)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		server := setupTestServer(&MockGameService{})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/buy", map[string]string{}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestEndDay(t *testing.T) {
	t.Run("ends the day", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			EndDayFunc: func(ctx context.Context, sessionID string) (*service.DayResult, error) {
				state := mockState()
				state.Day = 3
				return &service.DayResult{
					Report:    engine.DayReport{Day: 2, Event: engine.EventRain, Rained: true},
					GameState: state,
					Events:    []service.GameEvent{{Type: "rain"}},
				}, nil
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/end-day", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp service.DayResult
		parseResponse(t, w, &resp)
		if resp.Report.Day != 2 || !resp.Report.Rained {
			t.Errorf("Unexpected report: %+v", resp.Report)
		}
		if resp.GameState.Day != 3 {
			t.Errorf("Expected day 3, got %d", resp.GameState.Day)
		}
	})

	t.Run("session not found", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			EndDayFunc: func(ctx context.Context, sessionID string) (*service.DayResult, error) {
				return nil, service.ErrSessionNotFound
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/zzzz/end-day", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestReset(t *testing.T) {
	server := setupTestServer(&MockGameService{})
	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/reset", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	parseResponse(t, w, &resp)
	if resp["message"] != "Game reset successfully" {
		t.Errorf("Unexpected message %v", resp["message"])
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Run("save with default slot", func(t *testing.T) {
		var gotSlot = "unset"
		server := setupTestServer(&MockGameService{
			SaveGameFunc: func(ctx context.Context, sessionID, slot string) (*service.SaveResult, error) {
				gotSlot = slot
				return &service.SaveResult{Slot: "default", Saved: true}, nil
			},
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/sessions/ab12/save", nil)
		server.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		if gotSlot != "" {
			t.Errorf("Expected empty slot passed through, got %q", gotSlot)
		}
	})

	t.Run("load empty slot is informational", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			LoadGameFunc: func(ctx context.Context, sessionID, slot string) (*service.LoadResult, error) {
				return &service.LoadResult{Slot: slot, Loaded: false, Message: "No save file found."}, nil
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/load", map[string]string{"slot": "spring"}))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var resp service.LoadResult
		parseResponse(t, w, &resp)
		if resp.Loaded || resp.Slot != "spring" {
			t.Errorf("Unexpected load result: %+v", resp)
		}
	})

	t.Run("corrupt snapshot is 422", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			LoadGameFunc: func(ctx context.Context, sessionID, slot string) (*service.LoadResult, error) {
				return nil, fmt.Errorf("failed to load slot %s: %w", slot, &snapshot.DecodeError{Reason: "truncated"})
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/load", nil))

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d", w.Code)
		}
	})

	t.Run("bad slot is 400", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			SaveGameFunc: func(ctx context.Context, sessionID, slot string) (*service.SaveResult, error) {
				return nil, fmt.Errorf("%w: bad slot", service.ErrInvalidRequest)
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/save", map[string]string{"slot": "../x"}))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestGetHistory(t *testing.T) {
	var gotOpts service.HistoryOptions
	server := setupTestServer(&MockGameService{
		GetDayHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			gotOpts = opts
			return &service.HistoryResponse{
				Days:      []engine.DayReport{{Day: 1, Event: engine.EventPests}},
				TotalDays: 1,
				Page:      opts.Page,
				PageSize:  opts.Limit,
			}, nil
		},
	})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/history?page=2&limit=5&order=asc", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotOpts.Page != 2 || gotOpts.Limit != 5 || gotOpts.Order != "asc" {
		t.Errorf("Unexpected options: %+v", gotOpts)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/history?page=-1&order=sideways", nil))
	if gotOpts.Page != 1 || gotOpts.Limit != 20 || gotOpts.Order != "desc" {
		t.Errorf("Expected defaults, got %+v", gotOpts)
	}
}

// Configuration Tests

func TestConfigs(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
				return []*service.ConfigInfo{{ConfigID: "classic", FarmSize: 5}}, nil
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/configs", nil))

		var resp []service.ConfigInfo
		parseResponse(t, w, &resp)
		if len(resp) != 1 || resp[0].ConfigID != "classic" {
			t.Errorf("Unexpected configs: %+v", resp)
		}
	})

	t.Run("get strips extension", func(t *testing.T) {
		var asked string
		server := setupTestServer(&MockGameService{
			LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
				asked = configName
				return engine.DefaultConfig(), nil
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/configs/classic.yaml", nil))

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if asked != "classic" {
			t.Errorf("Expected classic, got %q", asked)
		}
	})

	t.Run("get unknown is 404", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			LoadConfigFunc: func(ctx context.Context, configName string) (*engine.GameConfig, error) {
				return nil, config.ErrConfigNotFound
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/configs/nope", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("create", func(t *testing.T) {
		var saved *engine.GameConfig
		server := setupTestServer(&MockGameService{
			SaveConfigFunc: func(ctx context.Context, configName string, cfg *engine.GameConfig) error {
				saved = cfg
				return nil
			},
		})
		body := map[string]interface{}{
			"name":           "spring",
			"description":    "Spring planting",
			"farm_size":      4,
			"starting_coins": 10,
		}
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", body))

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", w.Code)
		}
		if saved == nil || saved.FarmSize != 4 {
			t.Errorf("Unexpected saved config: %+v", saved)
		}
	})

	t.Run("create invalid is 400", func(t *testing.T) {
		server := setupTestServer(&MockGameService{
			SaveConfigFunc: func(ctx context.Context, configName string, cfg *engine.GameConfig) error {
				return fmt.Errorf("%w: farm_size out of range", config.ErrInvalidConfig)
			},
		})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", map[string]interface{}{"name": "x", "farm_size": 99}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("create without name", func(t *testing.T) {
		server := setupTestServer(&MockGameService{})
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", map[string]interface{}{"farm_size": 3}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestHealth(t *testing.T) {
	server := setupTestServer(&MockGameService{})
	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Expected healthy, got %q", resp["status"])
	}
}

func TestWebSocket(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:           "Missing session parameter",
			queryParams:    "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid session",
			queryParams: "?session=invalid",
			setupMock: func(m *MockGameService) {
				m.GetGameStateFunc = func(ctx context.Context, sessionID string) (*engine.GameState, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Valid session",
			queryParams:    "?session=ab12",
			expectedStatus: http.StatusSwitchingProtocols,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/ws"+tt.queryParams, nil)

			if tt.expectedStatus == http.StatusSwitchingProtocols {
				req.Header.Set("Upgrade", "websocket")
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
				req.Header.Set("Sec-WebSocket-Version", "13")
			}

			server.handleWebSocket(w, req)

			// httptest.ResponseRecorder does not implement http.Hijacker, so an
			// attempted upgrade ends in a 500
			if tt.expectedStatus == http.StatusSwitchingProtocols && w.Code == http.StatusInternalServerError {
				return
			}

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

// End-to-end through the real service, session manager and stores

func newLiveServer(t *testing.T) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	configDir := filepath.Join(dir, "configs")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	configManager, err := config.NewManager(configDir)
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	saves, err := snapshot.NewFileStore(filepath.Join(dir, "saves"))
	if err != nil {
		t.Fatalf("Failed to create save store: %v", err)
	}

	gameService := service.NewGameService(session.NewManager(), configManager, saves)
	return NewServer(gameService, nil), filepath.Join(dir, "saves")
}

func TestLiveFarmFlow(t *testing.T) {
	server, savesDir := newLiveServer(t)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest(method, path, body))
		return w
	}

	w := do("POST", "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var info service.SessionInfo
	parseResponse(t, w, &info)
	base := "/api/sessions/" + info.ID

	w = do("POST", base+"/plant", map[string]interface{}{"x": 0, "y": 0, "crop": "wheat"})
	var planted service.ActionResponse
	parseResponse(t, w, &planted)
	if w.Code != http.StatusOK || !planted.Success {
		t.Fatalf("Plant failed: %d %s", w.Code, w.Body.String())
	}
	if planted.GameState.Player.Energy != engine.MaxEnergy-1 {
		t.Errorf("Expected energy %d, got %d", engine.MaxEnergy-1, planted.GameState.Player.Energy)
	}

	w = do("POST", base+"/plant", map[string]interface{}{"x": 0, "y": 0, "crop": "Wheat"})
	var again service.ActionResponse
	parseResponse(t, w, &again)
	if w.Code != http.StatusOK || again.Success || again.Code != engine.CodeInvalidTarget {
		t.Errorf("Expected invalid_target on occupied plot, got %d %+v", w.Code, again.ActionResult)
	}

	if w = do("POST", base+"/water", map[string]int{"x": 5, "y": 0}); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out of bounds, got %d", w.Code)
	}

	w = do("POST", base+"/load", nil)
	var empty service.LoadResult
	parseResponse(t, w, &empty)
	if w.Code != http.StatusOK || empty.Loaded {
		t.Errorf("Expected nothing to load, got %d %+v", w.Code, empty)
	}

	if w = do("POST", base+"/save", map[string]string{"slot": "spring"}); w.Code != http.StatusOK {
		t.Fatalf("Save failed: %d %s", w.Code, w.Body.String())
	}

	if w = do("POST", base+"/end-day", nil); w.Code != http.StatusOK {
		t.Fatalf("End day failed: %d", w.Code)
	}

	w = do("POST", base+"/load", map[string]string{"slot": "spring"})
	var loaded service.LoadResult
	parseResponse(t, w, &loaded)
	if !loaded.Loaded {
		t.Fatalf("Expected snapshot to load: %s", w.Body.String())
	}
	if loaded.GameState.Day != 2 {
		t.Errorf("Load keeps the day counter, expected 2, got %d", loaded.GameState.Day)
	}
	if loaded.GameState.Farm.Grid[0][0].DaysGrown != 0 {
		t.Errorf("Expected the pre-day crop, got %+v", loaded.GameState.Farm.Grid[0][0])
	}

	// Corrupt the slot on disk
	slotFile := filepath.Join(savesDir, info.ID+"-spring.json")
	if err := os.WriteFile(slotFile, []byte(`{"player":{}}`), 0644); err != nil {
		t.Fatalf("Failed to corrupt slot: %v", err)
	}
	if w = do("POST", base+"/load", map[string]string{"slot": "spring"}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for corrupt snapshot, got %d", w.Code)
	}

	if w = do("GET", "/api/sessions/nope/state", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}

	w = do("GET", base+"/history", nil)
	var history service.HistoryResponse
	parseResponse(t, w, &history)
	if history.TotalDays != 1 {
		t.Errorf("Expected 1 day of history, got %d", history.TotalDays)
	}
}
