package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", RequireAuth(testSecret), func(c *gin.Context) {
		p := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": p.Role})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token sets the principal", func(t *testing.T) {
		r := newAuthedRouter()
		token, err := IssueToken(testSecret, 42, "dev@example.com", RoleClient, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
		assert.Contains(t, w.Body.String(), `"role":"client"`)
	})

	t.Run("missing header is a 401", func(t *testing.T) {
		r := newAuthedRouter()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is a 401", func(t *testing.T) {
		r := newAuthedRouter()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
