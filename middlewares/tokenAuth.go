package middlewares

import (
	"SMCHealth/utils"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenAuthMiddleware validates the PASETO token and stores its claims in the
// request context. The token is read from the Authorization header, falling
// back to the accessToken query parameter.
func TokenAuthMiddleware(tokens *utils.TokenManager, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			token = c.Query("accessToken")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			return
		}

		claims, err := tokens.ValidateToken(token, roles...)
		if err == utils.ErrInsufficientPermissions {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient privileges"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), claimsKey, claims)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleAuthMiddleware restricts access to users with the specified role.
func RoleAuthMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context"})
			return
		}

		if claims.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient privileges"})
			return
		}

		c.Next()
	}
}

// HospitalScopeMiddleware rejects staff tokens that carry no hospital id.
func HospitalScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c.Request.Context())
		if !ok || claims.HospitalID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is not bound to a hospital"})
			return
		}
		c.Next()
	}
}

func ClaimsFromContext(ctx context.Context) (*utils.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*utils.TokenClaims)
	return claims, ok && claims != nil
}

// HospitalIDFromContext returns the hospital the caller acts for.
func HospitalIDFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.HospitalID
	}
	return ""
}

// UserIDFromContext returns the caller's user id.
func UserIDFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return ""
}
