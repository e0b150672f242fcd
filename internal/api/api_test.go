package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snaphunt/snaphunt/internal/api"
	"github.com/snaphunt/snaphunt/internal/api/response"
	"github.com/snaphunt/snaphunt/internal/factory"
	"github.com/snaphunt/snaphunt/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		AuthService:     app.AuthService,
		RoomController:  app.RoomController,
		RoundController: app.RoundController,
		ScoringService:  app.ScoringService,
		HubManager:      app.HubManager,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// uploadPhoto posts a multipart photo upload
func (ts *testServer) uploadPhoto(path string, data []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("photo", "photo.jpg")
	_, _ = part.Write(data)
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Player.IsGuest)

	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", meResp.DisplayName)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateAndJoinRoom(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Alice")
	token2 := createGuestPlayer(t, ts, "Bob")

	// Alice creates a room
	ts.app.MockRandom.QueueString("ROOM12345678", "ABC123")
	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]int{"rounds_count": 5}, token1)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	assert.Equal(t, "waiting", roomResp.Status)
	assert.Equal(t, "ABC123", roomResp.JoinCode)
	assert.Equal(t, 5, roomResp.Settings.RoundsCount)
	assert.Len(t, roomResp.Members, 1)
	assert.True(t, roomResp.Members[0].IsHost)
	assert.Equal(t, "gamemaster", roomResp.Members[0].Role)

	// Bob joins with the code
	joinBody := map[string]string{"join_code": "ABC123"}
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+roomResp.ID+"/join", joinBody, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joinResp response.Room
	err = json.Unmarshal(rr.Body.Bytes(), &joinResp)
	require.NoError(t, err)
	assert.Len(t, joinResp.Members, 2)
	assert.Equal(t, "hunter", joinResp.Members[1].Role)
}

func TestJoinRoomWrongCode(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Alice")
	token2 := createGuestPlayer(t, ts, "Bob")

	roomID := createRoom(t, ts, token1)

	joinBody := map[string]string{"join_code": "WRONG1"}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", joinBody, token2)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoomHostActions(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Alice")
	token2 := createGuestPlayer(t, ts, "Bob")

	roomID := createRoom(t, ts, token1)
	joinRoom(t, ts, roomID, token2)

	// Bob tries to update settings (not host)
	body := map[string]int{"rounds_count": 7}
	rr := ts.request(http.MethodPut, "/api/v1/rooms/"+roomID+"/settings", body, token2)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Alice updates settings
	rr = ts.request(http.MethodPut, "/api/v1/rooms/"+roomID+"/settings", body, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	var settingsResp response.RoomSettings
	err := json.Unmarshal(rr.Body.Bytes(), &settingsResp)
	require.NoError(t, err)
	assert.Equal(t, 7, settingsResp.RoundsCount)
}

func TestRenamePlayer(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuestPlayer(t, ts, "Alice")
	token2 := createGuestPlayer(t, ts, "Bob")

	roomID := createRoom(t, ts, token1)
	joinRoom(t, ts, roomID, token2)

	bobID := playerID(t, ts, token2)

	// Bob renames himself
	body := map[string]string{"display_name": "Bobby"}
	rr := ts.request(http.MethodPut, "/api/v1/rooms/"+roomID+"/players/"+bobID, body, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var memberResp response.RoomMember
	err := json.Unmarshal(rr.Body.Bytes(), &memberResp)
	require.NoError(t, err)
	assert.Equal(t, "Bobby", memberResp.DisplayName)

	// Alice cannot rename Bob
	rr = ts.request(http.MethodPut, "/api/v1/rooms/"+roomID+"/players/"+bobID, body, token1)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestFullRoundFlow(t *testing.T) {
	ts := newTestServer(t)

	hostToken := createGuestPlayer(t, ts, "Alice")
	hunter1Token := createGuestPlayer(t, ts, "Bob")
	hunter2Token := createGuestPlayer(t, ts, "Carol")

	roomID := createRoom(t, ts, hostToken)
	joinRoom(t, ts, roomID, hunter1Token)
	joinRoom(t, ts, roomID, hunter2Token)

	// Start the round
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/rounds/start", nil, hostToken)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var startResp response.StartRoundResponse
	err := json.Unmarshal(rr.Body.Bytes(), &startResp)
	require.NoError(t, err)
	assert.Equal(t, 1, startResp.Number)
	assert.Equal(t, "gamemaster_turn", startResp.Status)

	// Hunters cannot submit before the reference photo
	rr = ts.uploadPhoto("/api/v1/rooms/"+roomID+"/rounds/1/photo", []byte("early"), hunter1Token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Gamemaster uploads the reference photo
	rr = ts.uploadPhoto("/api/v1/rooms/"+roomID+"/rounds/1/photo", []byte("reference"), hostToken)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var refResp response.RoundState
	err = json.Unmarshal(rr.Body.Bytes(), &refResp)
	require.NoError(t, err)
	assert.Equal(t, "hunter_turn", refResp.Status)
	assert.Equal(t, []string{"red door"}, refResp.Hints)
	assert.Equal(t, 3, refResp.HintsTotal)
	assert.Equal(t, 60, refResp.RemainingSeconds)

	// Bob submits a hunt attempt
	ts.app.MockClock.Advance(10 * time.Second)
	rr = ts.uploadPhoto("/api/v1/rooms/"+roomID+"/rounds/1/photo", []byte("attempt"), hunter1Token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var subResp response.Submission
	err = json.Unmarshal(rr.Body.Bytes(), &subResp)
	require.NoError(t, err)
	assert.Equal(t, 75, subResp.Similarity)
	assert.Equal(t, 50, subResp.RemainingSeconds)
	assert.Equal(t, 125, subResp.TotalScore)

	// Duplicate submission is rejected
	rr = ts.uploadPhoto("/api/v1/rooms/"+roomID+"/rounds/1/photo", []byte("again"), hunter1Token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Reading the round reveals hints that have come due
	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+roomID+"/rounds/1", nil, hunter2Token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stateResp response.RoundState
	err = json.Unmarshal(rr.Body.Bytes(), &stateResp)
	require.NoError(t, err)
	assert.Equal(t, 2, stateResp.HintsRevealed)
	assert.Len(t, stateResp.Submissions, 1)

	// End the round
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/rounds/1/end", nil, hostToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resultsResp response.RoundResults
	err = json.Unmarshal(rr.Body.Bytes(), &resultsResp)
	require.NoError(t, err)
	require.Len(t, resultsResp.Ranked, 1)
	assert.Equal(t, 1, resultsResp.Ranked[0].Rank)
	assert.Equal(t, 125, resultsResp.Ranked[0].TotalScore)
	require.Len(t, resultsResp.DidNotSubmit, 1)
	assert.Equal(t, "Carol", resultsResp.DidNotSubmit[0].DisplayName)

	// Leaderboard reflects cumulative scores
	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+roomID+"/leaderboard", nil, hunter1Token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var lbResp response.Leaderboard
	err = json.Unmarshal(rr.Body.Bytes(), &lbResp)
	require.NoError(t, err)
	assert.Equal(t, "waiting", lbResp.RoomStatus)
	require.Len(t, lbResp.Players, 2)
	assert.Equal(t, "Bob", lbResp.Players[0].DisplayName)
	assert.Equal(t, 125, lbResp.Players[0].Score)
}

func TestCancelRound(t *testing.T) {
	ts := newTestServer(t)

	hostToken := createGuestPlayer(t, ts, "Alice")
	hunter1Token := createGuestPlayer(t, ts, "Bob")
	hunter2Token := createGuestPlayer(t, ts, "Carol")

	roomID := createRoom(t, ts, hostToken)
	joinRoom(t, ts, roomID, hunter1Token)
	joinRoom(t, ts, roomID, hunter2Token)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/rounds/start", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	// A hunter cannot cancel
	rr = ts.request(http.MethodDelete, "/api/v1/rooms/"+roomID+"/rounds/1", nil, hunter1Token)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// The host cancels
	rr = ts.request(http.MethodDelete, "/api/v1/rooms/"+roomID+"/rounds/1", nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+roomID+"/rounds/1", nil, hostToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stateResp response.RoundState
	err := json.Unmarshal(rr.Body.Bytes(), &stateResp)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stateResp.Status)
}

func TestStartRoundRequiresEnoughPlayers(t *testing.T) {
	ts := newTestServer(t)

	hostToken := createGuestPlayer(t, ts, "Alice")
	hunterToken := createGuestPlayer(t, ts, "Bob")

	roomID := createRoom(t, ts, hostToken)
	joinRoom(t, ts, roomID, hunterToken)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/rounds/start", nil, hostToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLeaveRoomHostSuccession(t *testing.T) {
	ts := newTestServer(t)

	hostToken := createGuestPlayer(t, ts, "Alice")
	hunterToken := createGuestPlayer(t, ts, "Bob")

	roomID := createRoom(t, ts, hostToken)
	joinRoom(t, ts, roomID, hunterToken)

	// Host leaves; Bob takes over
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/leave", nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+roomID, nil, hunterToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)
	require.Len(t, roomResp.Members, 1)
	assert.True(t, roomResp.Members[0].IsHost)
	assert.Equal(t, "gamemaster", roomResp.Members[0].Role)
}

func TestDeleteRoom(t *testing.T) {
	ts := newTestServer(t)

	hostToken := createGuestPlayer(t, ts, "Alice")
	hunterToken := createGuestPlayer(t, ts, "Bob")

	roomID := createRoom(t, ts, hostToken)
	joinRoom(t, ts, roomID, hunterToken)

	// Non-host cannot delete
	rr := ts.request(http.MethodDelete, "/api/v1/rooms/"+roomID, nil, hunterToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Host deletes
	rr = ts.request(http.MethodDelete, "/api/v1/rooms/"+roomID, nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+roomID, nil, hostToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Helper functions

func createGuestPlayer(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	body := map[string]string{"display_name": displayName}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

var roomCounter int

func createRoom(t *testing.T, ts *testServer, token string) string {
	t.Helper()

	roomCounter++
	ts.app.MockRandom.QueueString(
		"ROOM"+string(rune('A'+roomCounter%26))+"1234567",
		"CODE12",
	)

	rr := ts.request(http.MethodPost, "/api/v1/rooms", nil, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.ID
}

func joinRoom(t *testing.T, ts *testServer, roomID, token string) {
	t.Helper()

	body := map[string]string{"join_code": "CODE12"}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", body, token)
	require.Equal(t, http.StatusOK, rr.Code)
}

func playerID(t *testing.T, ts *testServer, token string) string {
	t.Helper()

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp.ID
}
