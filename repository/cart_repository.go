package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/models"
)

// CartRepository defines data access for per-user carts. Each user has at
// most one cart document, keyed by userId.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Upsert(ctx context.Context, cart *models.Cart) error
	Reset(ctx context.Context, userID primitive.ObjectID) error
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a MongoDB backed cart repository
func NewMongoCartRepository(db *mongo.Database, collection string) CartRepository {
	return &mongoCartRepository{collection: db.Collection(collection)}
}

func (r *mongoCartRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (r *mongoCartRepository) Upsert(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"userId":     cart.UserID,
		"items":      cart.Items,
		"total":      cart.Total,
		"totalItems": cart.TotalItems,
		"updatedAt":  cart.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": cart.UserID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

// Reset empties the cart without deleting the document.
func (r *mongoCartRepository) Reset(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"items":      []models.CartItem{},
		"total":      float64(0),
		"totalItems": 0,
		"updatedAt":  time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to reset cart: %w", err)
	}
	return nil
}
