package ban

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"banwatch/internal/database"
	"banwatch/internal/middleware"
	jwtsvc "banwatch/internal/pkg/jwt"
	"banwatch/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	BanID   int64           `json:"ban_id"`
	Bans    json.RawMessage `json:"bans"`
	Total   int             `json:"total"`
}

func setupRouter(t *testing.T) (*gin.Engine, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	staffRepo := repository.NewStaffRepository(db)
	banRepo := repository.NewBanRepository(db)
	service := NewService(banRepo, staffRepo)
	handler := NewHandler(service)

	j := jwtsvc.New("test-secret", time.Hour)

	router := gin.New()
	protected := router.Group("/")
	protected.Use(middleware.Auth(j))
	handler.RegisterRoutes(protected)

	return router, j
}

func adminToken(t *testing.T, j *jwtsvc.Service) string {
	t.Helper()
	token, err := j.GenerateToken("zion", true, "file", 0)
	require.NoError(t, err)
	return token
}

func performRequest(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestBansRequireAuth(t *testing.T) {
	router, _ := setupRouter(t)

	resp := performRequest(router, http.MethodGet, "/api/bans", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.False(t, decode(t, resp).Success)
}

func TestAddBanAndList(t *testing.T) {
	router, j := setupRouter(t)
	token := adminToken(t, j)

	resp := performRequest(router, http.MethodPost, "/api/bans", gin.H{
		"player_id":        "42",
		"reason":           "cheating",
		"ban_type":         "temporary",
		"expires_in_hours": 1,
	}, token)
	require.Equal(t, http.StatusOK, resp.Code)
	created := decode(t, resp)
	require.True(t, created.Success)
	require.NotZero(t, created.BanID)

	resp = performRequest(router, http.MethodGet, "/api/bans", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	listed := decode(t, resp)
	require.True(t, listed.Success)
	require.Equal(t, 1, listed.Total)
	require.Contains(t, string(listed.Bans), `"time_remaining"`)
}

func TestAddBanDuplicateConflict(t *testing.T) {
	router, j := setupRouter(t)
	token := adminToken(t, j)

	body := gin.H{"player_id": "42", "reason": "cheating"}
	resp := performRequest(router, http.MethodPost, "/api/bans", body, token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, http.MethodPost, "/api/bans", body, token)
	require.Equal(t, http.StatusConflict, resp.Code)
	require.False(t, decode(t, resp).Success)
}

func TestAddBanValidation(t *testing.T) {
	router, j := setupRouter(t)
	token := adminToken(t, j)

	resp := performRequest(router, http.MethodPost, "/api/bans", gin.H{"reason": "no player"}, token)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(router, http.MethodPost, "/api/bans", gin.H{
		"player_id":        "1",
		"ban_type":         "temporary",
		"expires_in_hours": "soon",
	}, token)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRemoveBan(t *testing.T) {
	router, j := setupRouter(t)
	token := adminToken(t, j)

	resp := performRequest(router, http.MethodPost, "/api/bans", gin.H{"player_id": "42", "reason": "x"}, token)
	require.Equal(t, http.StatusOK, resp.Code)
	banID := decode(t, resp).BanID

	resp = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/bans/%d", banID), nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, http.MethodDelete, "/api/bans/99999", nil, token)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = performRequest(router, http.MethodDelete, "/api/bans/not-a-number", nil, token)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCheckBan(t *testing.T) {
	router, j := setupRouter(t)
	token := adminToken(t, j)

	resp := performRequest(router, http.MethodGet, "/api/bans/check/42", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	var clear struct {
		Success  bool `json:"success"`
		IsBanned bool `json:"is_banned"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&clear))
	require.True(t, clear.Success)
	require.False(t, clear.IsBanned)

	resp = performRequest(router, http.MethodPost, "/api/bans", gin.H{"player_id": "42", "reason": "x"}, token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, http.MethodGet, "/api/bans/check/42", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	var banned struct {
		Success  bool            `json:"success"`
		IsBanned bool            `json:"is_banned"`
		BanInfo  json.RawMessage `json:"ban_info"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&banned))
	require.True(t, banned.IsBanned)
	require.NotEmpty(t, banned.BanInfo)
}
