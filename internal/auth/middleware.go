package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Context resolves the Authorization header into a principal and
// stores it on the request context. It never aborts: anonymous
// requests pass through and each operation decides what to do with
// them.
func Context(signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			token := strings.TrimSpace(authz[len("bearer "):])
			if p := Resolve(token, signingKey, issuer); p != nil {
				c.Set(principalKey, p)
			}
		}
		c.Next()
	}
}

// PrincipalFrom returns the resolved principal, or nil for anonymous.
func PrincipalFrom(c *gin.Context) *Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}
