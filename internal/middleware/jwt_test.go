package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asmamiga/tourism-website-sub001/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, mws...)
	return e
}

func TestJWTAuth(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))

	t.Run("valid token passes and sets identity", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 42, "OWNER", 15)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"user_id":42`)
		assert.Contains(t, rec.Body.String(), `"role":"OWNER"`)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", 42, "OWNER", 15)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret), RequireRole("OWNER", "ADMIN"))

	serve := func(role string) *httptest.ResponseRecorder {
		tok, _ := utils.NewAccessToken(testSecret, 42, role, 15)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve("OWNER").Code)
	assert.Equal(t, http.StatusOK, serve("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, serve("CUSTOMER").Code)
	assert.Equal(t, http.StatusForbidden, serve("").Code)
}
