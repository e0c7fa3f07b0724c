package services

import (
	"context"
	"fmt"
	"time"
)

// UpiProvider is the narrow surface this service needs from a UPI payment
// gateway. The shipped implementation simulates one; a real integration
// would sit behind the same interface.
type UpiProvider interface {
	Verify(ctx context.Context, transactionID, upiTransactionID string) (bool, error)
	Refund(ctx context.Context, transactionID string, amount int64, reason string) (string, error)
}

type simulatedUpiProvider struct{}

// NewSimulatedUpiProvider returns a provider that approves every
// verification and refund.
func NewSimulatedUpiProvider() UpiProvider {
	return &simulatedUpiProvider{}
}

func (p *simulatedUpiProvider) Verify(ctx context.Context, transactionID, upiTransactionID string) (bool, error) {
	return true, nil
}

func (p *simulatedUpiProvider) Refund(ctx context.Context, transactionID string, amount int64, reason string) (string, error) {
	return fmt.Sprintf("REF%d", time.Now().UnixMilli()), nil
}
