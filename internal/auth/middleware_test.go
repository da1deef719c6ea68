package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateRouter(t *testing.T, extract CredentialExtractor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	router := gin.New()
	router.Use(Gate(codec, extract))
	router.GET("/open", func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{
			"authenticated": ok,
			"userId":        p.UserID,
			"authorities":   p.Authorities(),
		})
	})
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID})
	})

	return router
}

func issueTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	token, err := codec.Issue(SessionClaims{
		UserID:   7,
		Email:    "test@example.com",
		GlobalID: "kakao:2501234567",
		Role:     "USER",
	}, ttl)
	require.NoError(t, err)

	return token
}

func TestGate_NoCredentialIsAnonymous(t *testing.T) {
	router := gateRouter(t, BearerHeaderExtractor())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "request must be forwarded")

	var body struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Authenticated)
}

func TestGate_ExpiredToken(t *testing.T) {
	router := gateRouter(t, BearerHeaderExtractor())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, -time.Minute))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"token expired"}`, w.Body.String())
}

func TestGate_InvalidToken(t *testing.T) {
	router := gateRouter(t, BearerHeaderExtractor())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
}

func TestGate_ValidToken(t *testing.T) {
	router := gateRouter(t, BearerHeaderExtractor())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Authenticated bool     `json:"authenticated"`
		UserID        int64    `json:"userId"`
		Authorities   []string `json:"authorities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, int64(7), body.UserID)
	assert.Equal(t, []string{"USER"}, body.Authorities)
}

func TestGate_MalformedHeaderIsAnonymous(t *testing.T) {
	router := gateRouter(t, BearerHeaderExtractor())

	for _, header := range []string{"Basic dXNlcjpwdw==", "Bearer", "Bearer "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "header %q should pass through anonymous", header)
	}
}

func TestGate_CookieTransport(t *testing.T) {
	router := gateRouter(t, CookieExtractor("Authorization"))

	// cookie carries the raw token, no Bearer prefix
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: "Authorization", Value: issueTestToken(t, time.Hour)})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Authenticated bool  `json:"authenticated"`
		UserID        int64 `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, int64(7), body.UserID)

	// a bearer header is ignored when the cookie transport is active
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Authenticated)
}

func TestRequireAuth(t *testing.T) {
	router := gateRouter(t, BearerHeaderExtractor())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, time.Hour))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
