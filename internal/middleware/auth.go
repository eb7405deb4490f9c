package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Larry-007-del/attendance-system-master/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is the shape of the access tokens minted by the upstream
// auth service. The engine performs no credential checking of its own; the
// subject is accepted as the already-authenticated identity.
type IdentityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const (
	RoleInstructor = "instructor"
	RoleAttendee   = "attendee"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Bearer token is required",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &IdentityClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or expired access token",
			})
			return
		}
		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Missing identity in token",
			})
			return
		}

		c.Set("identity", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// InstructorOnly ensures the requester holds the instructor role.
func InstructorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}
		role, ok := roleVal.(string)
		if !ok || role != RoleInstructor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "You don't have permission to access this resource",
			})
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated caller identity from the context.
func Identity(c *gin.Context) string {
	value, _ := c.Get("identity")
	identity, _ := value.(string)
	return identity
}
