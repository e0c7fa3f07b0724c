package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/middleware"
	"storefront-backend/services"
)

type UserController struct {
	userService services.UserService
}

func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Register creates a new user account
// POST /api/users/register
func (uc *UserController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	auth, svcErr := uc.userService.Register(c.Request.Context(), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, auth)
}

// Login authenticates a user and returns a signed token
// POST /api/users/login
func (uc *UserController) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	auth, svcErr := uc.userService.Login(c.Request.Context(), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, auth)
}

// GetProfile returns the authenticated user's profile
// GET /api/users/profile
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, svcErr := uc.userService.GetProfile(c.Request.Context(), userID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
// PUT /api/users/profile
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, svcErr := uc.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUsers lists all user accounts (admin only)
// GET /api/users
func (uc *UserController) GetUsers(c *gin.Context) {
	users, svcErr := uc.userService.ListUsers(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser removes a user account (admin only)
// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	if svcErr := uc.userService.DeleteUser(c.Request.Context(), c.Param("id")); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed"})
}
