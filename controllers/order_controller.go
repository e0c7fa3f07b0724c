package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/services"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles order creation requests
// POST /api/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.CreateOrder(c.Request.Context(), userID, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetMyOrders returns paginated orders for the authenticated user
// GET /api/orders/myorders
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, limit := parsePaginationParams(c)

	result, svcErr := oc.orderService.GetUserOrders(c.Request.Context(), userID, page, limit)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAllOrders returns paginated orders for all users (admin only)
// GET /api/orders
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	result, svcErr := oc.orderService.GetAllOrders(c.Request.Context(), page, limit)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOrderByID returns a specific order
// GET /api/orders/:id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, svcErr := oc.orderService.GetOrder(c.Request.Context(), userID, middleware.GetRole(c), c.Param("id"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, order)
}

// PayOrder records the payment provider result on an order
// PUT /api/orders/:id/pay
func (oc *OrderController) PayOrder(c *gin.Context) {
	var req models.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.MarkPaid(c.Request.Context(), c.Param("id"), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeliverOrder marks an order as delivered (admin only)
// PUT /api/orders/:id/deliver
func (oc *OrderController) DeliverOrder(c *gin.Context) {
	order, svcErr := oc.orderService.MarkDelivered(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through the state machine (admin only)
// PUT /api/orders/:id/status
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder cancels a pending or processing order
// PUT /api/orders/:id/cancel
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, svcErr := oc.orderService.CancelOrder(c.Request.Context(), c.Param("id"), userID, middleware.GetRole(c))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, order)
}
