package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects for a token and refreshes the stored credentials
// if it is present and well formed, but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(creds *Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString := parts[1]
				if tokenString != creds.Token() {
					if err := creds.Set(tokenString); err == nil {
						c.Set("tokenRefreshed", true)
					}
				}
			}
		}
		c.Next()
	}
}
