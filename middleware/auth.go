package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/productsuite/productsuite-api/config"
	"github.com/productsuite/productsuite-api/utils"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token on incoming requests and stores
// its claims in the Gin context. A missing token answers 401; a token that
// is present but invalid or expired answers 403. The two outcomes are
// distinct on purpose.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		claims, err := utils.ParseToken(config.GetConfig().JWTSecret, raw)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects callers whose role claim is not "admin". It must run
// after RequireAuth. The check is role-only: the incidencia supervisor flag
// does not pass this gate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err != nil || claims.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Acceso denegado: no eres administrador"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims extracts the validated token claims from the Gin context
func GetClaims(c *gin.Context) (*utils.Claims, error) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}
	claims, ok := v.(*utils.Claims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}
	return claims, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
