package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

// TokenVerifier is the slice of the firebase auth client the middleware
// needs; *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthConfig struct {
	// SessionOptional lets anonymous requests through (no token in context).
	SessionOptional bool
	// ProfileOptional lets authenticated callers without a local user
	// profile through (e.g. the profile-creation route itself).
	ProfileOptional bool
}

// Auth resolves the caller's identity from the Authorization bearer token
// and loads the local user profile into the request context.
func Auth(userDB db.UserDatabase, verifier TokenVerifier, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if config.SessionOptional {
				return
			}
			abortUnauthorized(c, "no authorization header")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") || len(header) < 8 {
			abortUnauthorized(c, "incorrectly formatted authorization header")
			return
		}
		token, err := verifier.VerifyIDToken(c, header[7:])
		if err != nil {
			if config.SessionOptional {
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.ProfileOptional {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

// MustGetUser returns the local user; only call it behind Auth without
// ProfileOptional.
func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}

// GetUserIdMaybe returns the caller's id, or "" for anonymous requests.
func GetUserIdMaybe(c *gin.Context) string {
	token, ok := c.Get(TOKEN_KEY)
	if !ok {
		return ""
	}
	return token.(*auth.Token).UID
}
