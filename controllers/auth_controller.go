package controllers

import (
	"net/http"

	"cgm-backend/config"
	"cgm-backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
	Cfg  *config.AppConfig
}

func NewAuthController(auth *services.AuthService, cfg *config.AppConfig) *AuthController {
	return &AuthController{Auth: auth, Cfg: cfg}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "validation", "message": err.Error()})
		return
	}

	if err := ac.Auth.Register(input.Email, input.Password, input.FullName); err != nil {
		respondError(c, ac.Cfg.Environment, err)
		return
	}

	respondCreated(c, "registration successful", nil)
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "validation", "message": err.Error()})
		return
	}

	token, err := ac.Auth.Login(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "auth", "message": "Invalid email or password"})
		return
	}

	respondOK(c, "login successful", gin.H{"token": token})
}
