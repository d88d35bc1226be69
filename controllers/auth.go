package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"document-approval-api/config"
	"document-approval-api/middleware"
	"document-approval-api/services"
	"document-approval-api/utils"
)

type AuthController struct {
	users  services.UserStore
	tokens *services.TokenService
	cfg    *config.Config
}

func NewAuthController(users services.UserStore, tokens *services.TokenService, cfg *config.Config) *AuthController {
	return &AuthController{users: users, tokens: tokens, cfg: cfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and sets the identity cookie. The token is also
// returned in the body for API clients that prefer the Authorization header.
func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := ctl.users.FindActiveByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !services.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := ctl.tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}

	ctl.setAuthCookie(c, token, int(ctl.cfg.JWTExpiry.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Logout clears the identity cookie. The token itself stays valid until
// expiry; there is no server-side session to revoke.
func (ctl *AuthController) Logout(c *gin.Context) {
	ctl.setAuthCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the caller's current profile.
func (ctl *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword verifies the current password and stores a new hash.
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	user := middleware.CurrentUser(c)
	if !services.CheckPassword(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, err := services.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	user.Password = hash
	if err := ctl.users.Update(user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (ctl *AuthController) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", ctl.cfg.CookieSecure, true)
}
