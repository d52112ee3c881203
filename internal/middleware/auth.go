package middleware

import (
	"net/http"

	"goaltracker/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenHeader is the custom header the frontend sends the token in.
const TokenHeader = "x-auth-token"

const userIDKey = "userId"

func Auth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied."})
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid."})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}
