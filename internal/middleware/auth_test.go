package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/services"
)

func newProtectedRouter(tokens *services.TokenService, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		*reached = true
		identity, ok := GetIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, identity)
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret", 0)
	reached := false
	r := newProtectedRouter(tokens, &reached)

	token, err := tokens.Issue("alice", 3, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.JSONEq(t, `{"username":"alice","id":3}`, w.Body.String())
}

func TestRequireAuth_Rejects(t *testing.T) {
	tokens := services.NewTokenService("test-secret", 0)
	other := services.NewTokenService("other-secret", 0)
	forged, err := other.Issue("alice", 3, 0)
	require.NoError(t, err)

	headers := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"empty token":    "Bearer ",
		"garbage token":  "Bearer not-a-jwt",
		"foreign secret": "Bearer " + forged,
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			reached := false
			r := newProtectedRouter(tokens, &reached)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			assert.False(t, reached)
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = bearerToken("Bearer")
	assert.False(t, ok)
}

func TestGetIdentity_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetIdentity(c)
	assert.False(t, ok)
}
