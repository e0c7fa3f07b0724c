package models

// UPI payment transaction statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// PaymentTransaction is a UPI payment request tracked in redis until it is
// verified or expires. Amount is stored in paise.
type PaymentTransaction struct {
	TransactionID    string `json:"transactionId"`
	OrderID          string `json:"orderId"`
	UserID           string `json:"userId"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	CustomerName     string `json:"customerName,omitempty"`
	CustomerPhone    string `json:"customerPhone,omitempty"`
	CustomerEmail    string `json:"customerEmail,omitempty"`
	UpiID            string `json:"upiId"`
	MerchantName     string `json:"merchantName"`
	MerchantCode     string `json:"merchantCode"`
	UpiTransactionID string `json:"upiTransactionId,omitempty"`
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
}

type CreatePaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required"`
	Currency      string  `json:"currency"`
	OrderID       string  `json:"orderId" binding:"required"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
}

type VerifyPaymentRequest struct {
	TransactionID    string `json:"transactionId" binding:"required"`
	UpiTransactionID string `json:"upiTransactionId"`
}

type RefundRequest struct {
	TransactionID string  `json:"transactionId" binding:"required"`
	Amount        float64 `json:"amount"`
	Reason        string  `json:"reason"`
}

type PaymentMethod struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	SupportedApps []string `json:"supportedApps,omitempty"`
	IsDefault     bool     `json:"isDefault"`
}
