package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-backend/models"
	"storefront-backend/repository"
)

// MerchantConfig identifies the payee in generated UPI payment requests.
type MerchantConfig struct {
	UpiID string
	Name  string
	Code  string
}

type CreatePaymentResponse struct {
	Success        bool                       `json:"success"`
	PaymentRequest *models.PaymentTransaction `json:"paymentRequest"`
	UpiDeepLink    string                     `json:"upiDeepLink"`
	QRCode         string                     `json:"qrCode"`
	Message        string                     `json:"message"`
}

type PaymentStatusResponse struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Timestamp     string  `json:"timestamp"`
}

type RefundResponse struct {
	Success  bool    `json:"success"`
	RefundID string  `json:"refundId"`
	Amount   float64 `json:"amount"`
	Message  string  `json:"message"`
}

// PaymentService handles the simulated UPI payment flow: create a payment
// request, verify it, query its status and process refunds.
type PaymentService interface {
	CreatePayment(ctx context.Context, user *models.User, req *models.CreatePaymentRequest) (*CreatePaymentResponse, *ServiceError)
	VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.PaymentTransaction, *ServiceError)
	GetStatus(ctx context.Context, transactionID string) (*PaymentStatusResponse, *ServiceError)
	PaymentMethods() []models.PaymentMethod
	Refund(ctx context.Context, req *models.RefundRequest) (*RefundResponse, *ServiceError)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	provider    UpiProvider
	merchant    MerchantConfig
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, provider UpiProvider, merchant MerchantConfig, logger *zap.Logger) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		provider:    provider,
		merchant:    merchant,
		logger:      logger,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, user *models.User, req *models.CreatePaymentRequest) (*CreatePaymentResponse, *ServiceError) {
	if req.Amount <= 0 {
		return nil, newValidationError("Invalid amount")
	}
	if req.OrderID == "" {
		return nil, newValidationError("Order ID is required")
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = user.Name
	}
	customerPhone := req.CustomerPhone
	if customerPhone == "" {
		customerPhone = user.Phone
	}

	txn := &models.PaymentTransaction{
		TransactionID: newTransactionID(),
		OrderID:       req.OrderID,
		UserID:        user.ID.Hex(),
		Amount:        int64(math.Round(req.Amount * 100)),
		Currency:      currency,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		CustomerEmail: user.Email,
		UpiID:         s.merchant.UpiID,
		MerchantName:  s.merchant.Name,
		MerchantCode:  s.merchant.Code,
		Status:        models.PaymentStatusPending,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.paymentRepo.Save(ctx, txn); err != nil {
		s.logger.Error("Failed to store payment transaction", zap.String("order_id", req.OrderID), zap.Error(err))
		return nil, newInternalError("UPI payment creation failed")
	}

	s.logger.Info("UPI payment request created",
		zap.String("transaction_id", txn.TransactionID),
		zap.String("order_id", txn.OrderID),
		zap.Int64("amount_paise", txn.Amount))

	return &CreatePaymentResponse{
		Success:        true,
		PaymentRequest: txn,
		UpiDeepLink:    upiDeepLink(txn),
		QRCode:         upiQRCode(txn),
		Message:        "UPI payment request created successfully",
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.PaymentTransaction, *ServiceError) {
	if req.TransactionID == "" {
		return nil, newValidationError("Transaction ID is required")
	}

	txn, svcErr := s.findTransaction(ctx, req.TransactionID)
	if svcErr != nil {
		return nil, svcErr
	}

	ok, err := s.provider.Verify(ctx, req.TransactionID, req.UpiTransactionID)
	if err != nil {
		s.logger.Error("UPI verification failed", zap.String("transaction_id", req.TransactionID), zap.Error(err))
		return nil, newInternalError("Payment verification failed")
	}
	if !ok {
		txn.Status = models.PaymentStatusFailed
		if err := s.paymentRepo.Update(ctx, txn); err != nil {
			s.logger.Warn("Failed to record failed payment", zap.String("transaction_id", txn.TransactionID), zap.Error(err))
		}
		return nil, newValidationError("Payment verification failed")
	}

	txn.Status = models.PaymentStatusSuccess
	txn.UpiTransactionID = req.UpiTransactionID
	if err := s.paymentRepo.Update(ctx, txn); err != nil {
		s.logger.Error("Failed to update payment transaction", zap.String("transaction_id", txn.TransactionID), zap.Error(err))
		return nil, newInternalError("Payment verification failed")
	}

	s.logger.Info("UPI payment verified", zap.String("transaction_id", txn.TransactionID))
	return txn, nil
}

func (s *paymentService) GetStatus(ctx context.Context, transactionID string) (*PaymentStatusResponse, *ServiceError) {
	if transactionID == "" {
		return nil, newValidationError("Transaction ID is required")
	}

	txn, svcErr := s.findTransaction(ctx, transactionID)
	if svcErr != nil {
		return nil, svcErr
	}

	return &PaymentStatusResponse{
		TransactionID: txn.TransactionID,
		Status:        txn.Status,
		Amount:        float64(txn.Amount) / 100,
		Currency:      txn.Currency,
		Timestamp:     txn.Timestamp,
	}, nil
}

func (s *paymentService) PaymentMethods() []models.PaymentMethod {
	return []models.PaymentMethod{
		{
			ID:          "upi",
			Type:        "upi",
			Name:        "UPI (Unified Payments Interface)",
			Description: "Pay using UPI apps like Google Pay, PhonePe, Paytm, etc.",
			SupportedApps: []string{
				"Google Pay", "PhonePe", "Paytm", "BHIM",
				"Amazon Pay", "WhatsApp Pay", "MobiKwik", "Freecharge",
			},
			IsDefault: true,
		},
	}
}

func (s *paymentService) Refund(ctx context.Context, req *models.RefundRequest) (*RefundResponse, *ServiceError) {
	if req.TransactionID == "" {
		return nil, newValidationError("Transaction ID is required")
	}

	txn, svcErr := s.findTransaction(ctx, req.TransactionID)
	if svcErr != nil {
		return nil, svcErr
	}

	amount := int64(math.Round(req.Amount * 100))
	if amount <= 0 || amount > txn.Amount {
		amount = txn.Amount
	}

	refundID, err := s.provider.Refund(ctx, req.TransactionID, amount, req.Reason)
	if err != nil {
		s.logger.Error("Refund failed", zap.String("transaction_id", req.TransactionID), zap.Error(err))
		return nil, newInternalError("Refund processing failed")
	}

	txn.Status = models.PaymentStatusRefunded
	if err := s.paymentRepo.Update(ctx, txn); err != nil {
		s.logger.Warn("Failed to record refund", zap.String("transaction_id", txn.TransactionID), zap.Error(err))
	}

	s.logger.Info("UPI refund processed",
		zap.String("transaction_id", req.TransactionID), zap.String("refund_id", refundID))

	return &RefundResponse{
		Success:  true,
		RefundID: refundID,
		Amount:   float64(amount) / 100,
		Message:  "Refund processed successfully",
	}, nil
}

func (s *paymentService) findTransaction(ctx context.Context, transactionID string) (*models.PaymentTransaction, *ServiceError) {
	txn, err := s.paymentRepo.Get(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError("Transaction not found")
		}
		s.logger.Error("Failed to fetch payment transaction", zap.String("transaction_id", transactionID), zap.Error(err))
		return nil, newInternalError("Failed to fetch transaction")
	}
	return txn, nil
}

func newTransactionID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), suffix)
}

// upiDeepLink builds a upi://pay link for the transaction.
func upiDeepLink(txn *models.PaymentTransaction) string {
	params := url.Values{}
	params.Set("pa", txn.UpiID)
	params.Set("pn", txn.MerchantName)
	params.Set("tn", fmt.Sprintf("Order %s", txn.OrderID))
	params.Set("am", fmt.Sprintf("%.2f", float64(txn.Amount)/100))
	params.Set("cu", txn.Currency)
	params.Set("tr", txn.TransactionID)
	return "upi://pay?" + params.Encode()
}

// upiQRCode renders the payload a client encodes into a QR image.
func upiQRCode(txn *models.PaymentTransaction) string {
	payload := map[string]interface{}{
		"vpa":      txn.UpiID,
		"name":     txn.MerchantName,
		"amount":   float64(txn.Amount) / 100,
		"currency": txn.Currency,
		"tn":       fmt.Sprintf("Order %s", txn.OrderID),
		"tr":       txn.TransactionID,
	}
	data, _ := json.Marshal(payload)
	return string(data)
}
