package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/services"
)

// TokenVerifier resolves a bearer token into the caller's identity
type TokenVerifier interface {
	Verify(token string) (services.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token before any
// handler runs, and stores the verified identity in the context.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

// GetIdentity retrieves the verified caller from context
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return services.Identity{}, false
	}

	identity, ok := value.(services.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
