package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stillpoint/internal/config"
	"stillpoint/internal/models"
	"stillpoint/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Conf = &config.Config{
		Server: config.ServerConfig{
			Port:          "0",
			SessionSecret: "test-secret",
		},
	}
	return Setup(zap.NewNop(), &models.Survey{}, services.NewScoreCache(zap.NewNop()))
}

func TestCSRFTokenIssued(t *testing.T) {
	engine := testEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestUnsafeMethodWithoutCSRFRejected(t *testing.T) {
	engine := testEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnsafeMethodWithCSRFAccepted(t *testing.T) {
	engine := testEngine(t)

	// First request establishes the session and yields the token.
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/csrf", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("X-CSRF-Token", body.Token)
	for _, cookie := range w.Result().Cookies() {
		req.AddCookie(cookie)
	}

	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req)
	require.Equal(t, http.StatusNoContent, w2.Code)
}

func TestAPIRequiresAuthentication(t *testing.T) {
	engine := testEngine(t)

	for _, path := range []string{
		"/api/sessions",
		"/api/notes",
		"/api/onboarding/questionnaire",
		"/api/analytics/happiness",
		"/api/charts/attention",
		"/api/profile",
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
		require.True(t, strings.Contains(w.Body.String(), "Unauthorized"))
	}
}

func TestLoginRateLimited(t *testing.T) {
	engine := testEngine(t)

	// Fetch a CSRF token once; the limiter sits behind CSRF validation.
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/csrf", nil))
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	cookies := w.Result().Cookies()

	var last int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-CSRF-Token", body.Token)
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		last = rec.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
