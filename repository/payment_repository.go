package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-backend/models"
)

// PaymentRepository tracks UPI payment transactions. Entries are TTL-bound:
// a transaction that is never verified simply expires.
type PaymentRepository interface {
	Save(ctx context.Context, txn *models.PaymentTransaction) error
	Get(ctx context.Context, transactionID string) (*models.PaymentTransaction, error)
	Update(ctx context.Context, txn *models.PaymentTransaction) error
}

type redisPaymentRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPaymentRepository creates a Redis backed payment transaction store
func NewRedisPaymentRepository(client *redis.Client, ttl time.Duration) PaymentRepository {
	return &redisPaymentRepository{client: client, ttl: ttl}
}

func (r *redisPaymentRepository) key(transactionID string) string {
	return fmt.Sprintf("payment:txn:%s", transactionID)
}

func (r *redisPaymentRepository) Save(ctx context.Context, txn *models.PaymentTransaction) error {
	data, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	return r.client.Set(ctx, r.key(txn.TransactionID), data, r.ttl).Err()
}

func (r *redisPaymentRepository) Get(ctx context.Context, transactionID string) (*models.PaymentTransaction, error) {
	data, err := r.client.Get(ctx, r.key(transactionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var txn models.PaymentTransaction
	if err := json.Unmarshal([]byte(data), &txn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}
	return &txn, nil
}

// Update rewrites the transaction preserving its remaining TTL.
func (r *redisPaymentRepository) Update(ctx context.Context, txn *models.PaymentTransaction) error {
	data, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	return r.client.Set(ctx, r.key(txn.TransactionID), data, redis.KeepTTL).Err()
}
