package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/saludmexfood/saluds-mx-food/config"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLoginHandler validates the shared admin password and issues a short-lived JWT.
func AdminLoginHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminPassword == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin auth is not configured"})
			return
		}

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Password != cfg.AdminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token := generateAdminJWT(cfg.JWTSecret)
		if token == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

func generateAdminJWT(secret string) string {
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		log.Printf("❌ Failed to sign JWT: %v", err)
		return ""
	}
	return signed
}
