// Package identity guards run routes with bearer run tokens.
package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-depths/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextRunClaims is the key used to store run token claims in the Gin context.
	ContextRunClaims = "runClaims"

	// RunIDParam is the route parameter a token's run id claim must match.
	RunIDParam = "ID"
)

// Authoriz rejects requests without a valid run token. On routes carrying an
// :ID parameter the token must have been issued for that run.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		if param := c.Param(RunIDParam); param != "" && !sameRun(claims, param) {
			c.Status(http.StatusForbidden) // Token belongs to another run.
			c.Abort()
			return
		}

		// Attach run claims to the request context for further use.
		c.Set(ContextRunClaims, claims)
		c.Next()
	}
}

// sameRun reports whether the run id claim and the route id name the same
// run. Both are parsed so textual variants of one uuid match.
func sameRun(claims map[string]interface{}, param string) bool {
	raw, _ := claims[i.ClaimRunID].(string)
	claimed, err := uuid.Parse(raw)
	if err != nil {
		return false
	}
	requested, err := uuid.Parse(param)
	if err != nil {
		return false
	}
	return claimed == requested
}
