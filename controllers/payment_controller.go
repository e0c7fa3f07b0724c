package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/models"
	"storefront-backend/services"
)

type PaymentController struct {
	paymentService services.PaymentService
	userService    services.UserService
}

func NewPaymentController(paymentService services.PaymentService, userService services.UserService) *PaymentController {
	return &PaymentController{paymentService: paymentService, userService: userService}
}

// CreateUpiPayment creates a UPI payment request for an order
// POST /api/payments/create-upi-payment
func (pc *PaymentController) CreateUpiPayment(c *gin.Context) {
	user, svcErr := currentUser(c, pc.userService)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := pc.paymentService.CreatePayment(c.Request.Context(), user, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyUpiPayment verifies a pending UPI payment
// POST /api/payments/verify-upi-payment
func (pc *PaymentController) VerifyUpiPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	txn, svcErr := pc.paymentService.VerifyPayment(c.Request.Context(), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"transactionId":    txn.TransactionID,
		"upiTransactionId": txn.UpiTransactionID,
		"status":           txn.Status,
		"message":          "Payment verified successfully",
	})
}

// GetPaymentStatus returns the status of a UPI transaction
// GET /api/payments/status/:transactionId
func (pc *PaymentController) GetPaymentStatus(c *gin.Context) {
	status, svcErr := pc.paymentService.GetStatus(c.Request.Context(), c.Param("transactionId"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetPaymentMethods lists the supported payment methods
// GET /api/payments/payment-methods
func (pc *PaymentController) GetPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"paymentMethods": pc.paymentService.PaymentMethods()})
}

// ProcessRefund refunds a UPI transaction (admin only)
// POST /api/payments/refund
func (pc *PaymentController) ProcessRefund(c *gin.Context) {
	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := pc.paymentService.Refund(c.Request.Context(), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}
