package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"document-approval-api/models"
	"document-approval-api/services"
	"document-approval-api/utils"
)

// UserController handles admin-only user management. Users are never hard
// deleted; deactivation flips is_active and locks the account out.
type UserController struct {
	users services.UserStore
}

func NewUserController(users services.UserStore) *UserController {
	return &UserController{users: users}
}

type CreateUserRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Role       string  `json:"role" binding:"required"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

func (ctl *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := ctl.users.FindActiveByEmail(email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Email:      email,
		Password:   hash,
		Name:       strings.TrimSpace(req.Name),
		Role:       req.Role,
		Department: req.Department,
		Position:   req.Position,
		IsActive:   true,
	}
	if err := ctl.users.Create(user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (ctl *UserController) List(c *gin.Context) {
	users, err := ctl.users.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	IsActive   *bool   `json:"is_active"`
}

func (ctl *UserController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	if req.Position != nil {
		user.Position = req.Position
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := ctl.users.Update(user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Deactivate soft-deletes a user account.
func (ctl *UserController) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := ctl.users.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	user.IsActive = false
	if err := ctl.users.Update(user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}
