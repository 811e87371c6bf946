package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school_reports_backend/internal/client"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-test-secret-test-secret"

func token(t *testing.T, role model.UserRole, ttl time.Duration) string {
	t.Helper()
	tok, err := util.GenerateJWT(&model.User{ID: 3, Email: "a@colegio.cl", Role: role}, secret, ttl)
	require.NoError(t, err)
	return tok
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", AuthMiddleware(secret))
	api.GET("/me", func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       user.UserID,
			"token":    util.GetTokenFromContext(c) != "",
			"upstream": client.TokenFrom(c.Request.Context()) == util.GetTokenFromContext(c),
		})
	})
	api.GET("/admin", RoleMiddleware(model.Inspector), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func do(r *gin.Engine, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	w := do(r, "/api/me", token(t, model.Teacher, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"token":true,"upstream":true}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", "not-a-jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", token(t, model.Teacher, -time.Minute)).Code)

	// query token for downloads
	assert.Equal(t, http.StatusOK, do(r, "/api/me?token="+token(t, model.Teacher, time.Hour), "").Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusForbidden, do(r, "/api/admin", token(t, model.Teacher, time.Hour)).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/api/admin", token(t, model.Inspector, time.Hour)).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/api/admin", token(t, model.Admin, time.Hour)).Code)
}
