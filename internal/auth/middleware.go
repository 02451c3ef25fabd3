package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// userClaimsKey is the gin context key the middleware stores claims under.
const userClaimsKey = "user_claims"

// Middleware returns a gin middleware that verifies Firebase Bearer tokens
// and stores the resulting claims on the request context.
func Middleware(firebaseAuth *FirebaseAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := firebaseAuth.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		SetUserClaims(c, claims)
		c.Next()
	}
}

// LocalDevMiddleware injects a fixed dev user so the API is usable without
// Firebase credentials. The X-Debug-Impersonate-User header overrides the
// user ID for multi-user testing.
// ONLY use this in development - never in production!
func LocalDevMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &UserClaims{
			UID:         "local-dev-user",
			Email:       "dev@localhost",
			DisplayName: "Local Dev User",
			Verified:    true,
		}
		if impersonate := c.GetHeader("X-Debug-Impersonate-User"); impersonate != "" {
			claims = &UserClaims{
				UID:   impersonate,
				Email: impersonate + "@debug.local",
			}
		}
		SetUserClaims(c, claims)
		c.Next()
	}
}

// SetUserClaims stores user claims on the gin context.
func SetUserClaims(c *gin.Context, claims *UserClaims) {
	c.Set(userClaimsKey, claims)
}

// GetUserClaims extracts user claims from the gin context.
func GetUserClaims(c *gin.Context) (*UserClaims, bool) {
	v, ok := c.Get(userClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*UserClaims)
	return claims, ok
}

// GetUserID is a convenience function to get the user ID from the context.
func GetUserID(c *gin.Context) (string, bool) {
	if claims, ok := GetUserClaims(c); ok {
		return claims.UID, true
	}
	return "", false
}
