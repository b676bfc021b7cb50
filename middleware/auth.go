package middleware

import (
	"net/http"
	"strings"

	"campushub/auth"
	"campushub/models"
	"campushub/store"

	"github.com/gin-gonic/gin"
)

// currentUserKey is where RequireAuth stashes the resolved user.
const currentUserKey = "currentUser"

// RequireAuth verifies the bearer token, loads the user it refers to and puts
// the record into the request context. Everything that can go wrong here is a
// 401: missing/garbled header, bad signature, expired token, empty subject,
// or a subject that no longer exists.
func RequireAuth(secret string, s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c)
			return
		}

		userID, err := auth.ParseAccessToken(secret, parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := s.UserByID(c.Request.Context(), userID)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
	c.Abort()
}

// CurrentUser returns the user RequireAuth resolved for this request.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
