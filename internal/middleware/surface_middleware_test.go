package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leavedesk/internal/middleware"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func surfaceContext(t *testing.T, role string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	if role != "" {
		c.Set("role", role)
	}
	return c, w
}

func TestRequireSurface(t *testing.T) {
	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	t.Run("matching role passes through", func(t *testing.T) {
		c, w := surfaceContext(t, "admin")

		middleware.RequireSurface(enforcer, rbac.SurfaceAdmin)(c)

		assert.False(t, c.IsAborted())
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong surface redirects to the role's home", func(t *testing.T) {
		c, w := surfaceContext(t, "user")

		middleware.RequireSurface(enforcer, rbac.SurfaceAdmin)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/api/v1/my/leaves", w.Header().Get("Location"))

		var env struct {
			Ok    bool `json:"ok"`
			Error struct {
				Code    string `json:"code"`
				Details struct {
					RedirectTo string `json:"redirect_to"`
				} `json:"details"`
			} `json:"error"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, "WRONG_SURFACE", env.Error.Code)
		assert.Equal(t, "/api/v1/my/leaves", env.Error.Details.RedirectTo)
	})

	t.Run("negative missing auth context", func(t *testing.T) {
		c, w := surfaceContext(t, "")

		middleware.RequireSurface(enforcer, rbac.SurfaceAdmin)(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
