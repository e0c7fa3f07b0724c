package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/pkg/logger"
	"storefront-backend/services"
)

// respondError writes a ServiceError as the structured error payload.
func respondError(c *gin.Context, err *services.ServiceError) {
	if err.StatusCode >= http.StatusInternalServerError {
		logger.Error(c, "Request failed", nil, zap.String("code", err.Code))
	}
	c.JSON(err.StatusCode, gin.H{"error": err.Message, "code": err.Code})
}

// currentUser resolves the authenticated actor's full account record.
func currentUser(c *gin.Context, userService services.UserService) (*models.User, *services.ServiceError) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return nil, &services.ServiceError{StatusCode: http.StatusUnauthorized, Code: services.CodeUnauthorized, Message: "Unauthorized"}
	}
	return userService.GetProfile(c.Request.Context(), userID)
}

func parsePaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
