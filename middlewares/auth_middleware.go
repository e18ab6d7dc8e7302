package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"cgm-backend/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware resolves the bearer token into an owner ID on the context.
// In demo mode every request passes through ownerless. With required=false
// (the ingest route) an absent token is fine but a bad one is still a 401.
func AuthMiddleware(cfg *config.AppConfig, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.DemoMode {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if !required {
				c.Next()
				return
			}
			abortUnauthorized(c, "Authorization header required")
			return
		}

		if cfg.JWTSecret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "store",
				"message": "server misconfigured: JWT_SECRET not set",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid claims")
			return
		}

		id, ok := claims["ownerId"].(float64)
		if !ok || id <= 0 {
			abortUnauthorized(c, "ownerId claim missing")
			return
		}

		c.Set("ownerID", uint(id))
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "auth",
		"message": msg,
	})
}
