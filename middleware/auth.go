package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/our-area/api-go/auth"
	"github.com/our-area/api-go/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and stores the asserted
// user identity in the request context.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}

		userID, err := issuer.Validate(bearerToken[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), &utils.UserClaims{UserID: userID})

		c.Next()
	}
}

// OptionalAuthMiddleware extracts the identity when a valid bearer token
// is present but lets anonymous requests through. Used by public reads
// that personalize their output for logged-in viewers.
func OptionalAuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if userID, err := issuer.Validate(parts[1]); err == nil {
					c.Set(string(utils.UserContextKey), &utils.UserClaims{UserID: userID})
				}
			}
		}
		c.Next()
	}
}
