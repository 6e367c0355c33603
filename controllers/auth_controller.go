package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productsuite/productsuite-api/config"
	"github.com/productsuite/productsuite-api/middleware"
	"github.com/productsuite/productsuite-api/models"
	"github.com/productsuite/productsuite-api/utils"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login - exchanges credentials for a session
// token. A missing user and a wrong password answer with the exact same
// message so usernames cannot be enumerated.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
		return
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
		return
	}

	token, err := utils.NewToken(config.GetConfig().JWTSecret, user.ID, user.Username, user.Role)
	if err != nil {
		log.Printf("login: failed to sign token for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno en el servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Profile(),
	})
}

// GetProfile handles GET /api/auth/profile - re-fetches the public profile
// of the caller identified by their token
func GetProfile(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		// A valid token for a missing user is a storage inconsistency,
		// answered like any other lookup failure.
		log.Printf("profile: lookup failed for user %d: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el perfil"})
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}
