package middleware

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextClaims is the key used to store token claims in the Gin context.
	ContextClaims = "claims"

	// ContextRoundID is the key used to store the round ID in the Gin context.
	ContextRoundID = "roundID"
)

// Authorize rejects requests without a valid round token and exposes the
// round ID carried by the token to the handlers.
func Authorize(ts i.Tokenizer, roundClaim string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		raw, ok := claims[roundClaim].(string)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		roundID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextRoundID, roundID)
		c.Next()
	}
}
