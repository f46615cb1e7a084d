package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/pkg/jwt"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
		ServiceName: "middleware-test",
	})
}

func newSessionRouter(tm *jwt.TokenManager) (*gin.Engine, *models.ProSession) {
	router := gin.New()
	captured := &models.ProSession{}

	router.Use(ProSessionMiddleware(tm, "", false))
	router.GET("/me", func(c *gin.Context) {
		session, err := GetProSession(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		*captured = *session
		c.Status(http.StatusOK)
	})

	return router, captured
}

func TestProSessionMiddleware_ValidCookie(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret-at-least-32-characters!!", "tavvy-pros-api", 72)
	token, err := tm.GenerateToken("user-1", "owner@abplumbing.com", "Alex")
	require.NoError(t, err)

	router, captured := newSessionRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: ProSessionCookieName, Value: token})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", captured.UserID)
	assert.Equal(t, "owner@abplumbing.com", captured.Email)
}

func TestProSessionMiddleware_MissingCookie(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret-at-least-32-characters!!", "tavvy-pros-api", 72)
	router, _ := newSessionRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProSessionMiddleware_InvalidTokenClearsCookie(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret-at-least-32-characters!!", "tavvy-pros-api", 72)
	router, _ := newSessionRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: ProSessionCookieName, Value: "not-a-jwt"})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The invalid cookie is cleared in the response
	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == ProSessionCookieName && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "invalid session cookie should be cleared")
}

func TestProSessionMiddleware_WrongSecret(t *testing.T) {
	signer := jwt.NewTokenManager("attacker-controlled-secret-value!!!!", "tavvy-pros-api", 72)
	token, err := signer.GenerateToken("user-1", "owner@abplumbing.com", "")
	require.NoError(t, err)

	tm := jwt.NewTokenManager("test-secret-at-least-32-characters!!", "tavvy-pros-api", 72)
	router, _ := newSessionRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: ProSessionCookieName, Value: token})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetSessionCookie(c, "token-value", 3600, ".tavvy.com", true)

	header := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, ProSessionCookieName+"="))
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Lax")
}
