package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain"
	jwtsvc "foodgram/internal/pkg/jwt"
)

func testRouter(j *jwtsvc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/private", RequireAuth(j), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id")})
	})
	r.GET("/open", OptionalAuth(j), func(c *gin.Context) {
		v := Viewer(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": v.Authenticated, "admin": v.Admin})
	})
	r.GET("/admin", RequireAuth(j), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(j)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/private", "garbage").Code)

	token, err := j.GenerateToken(7, string(domain.RoleUser))
	require.NoError(t, err)
	w := doRequest(r, "/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	j := jwtsvc.New("test_secret_key_32_characters_min", -time.Hour)
	token, err := j.GenerateToken(7, string(domain.RoleUser))
	require.NoError(t, err)

	r := testRouter(j)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/private", token).Code)
}

func TestOptionalAuthAndViewer(t *testing.T) {
	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(j)

	w := doRequest(r, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	token, err := j.GenerateToken(7, string(domain.RoleAdmin))
	require.NoError(t, err)
	w = doRequest(r, "/open", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"admin":true`)

	// a bad token on an optional route falls back to anonymous
	w = doRequest(r, "/open", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestAdminOnly(t *testing.T) {
	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(j)

	userToken, err := j.GenerateToken(7, string(domain.RoleUser))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", userToken).Code)

	adminToken, err := j.GenerateToken(1, string(domain.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, "/admin", adminToken).Code)
}
