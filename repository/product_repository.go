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

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("record already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines data access for the catalog and the stock
// ledger. Reserve and Release are single conditional updates, atomic with
// respect to concurrent calls on the same product.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, filter models.ProductFilter, page, limit int) ([]models.Product, int64, error)
	FindFeatured(ctx context.Context, limit int) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	AddReview(ctx context.Context, id primitive.ObjectID, review models.Review, rating float64, numReviews int) error
	Reserve(ctx context.Context, id primitive.ObjectID, quantity int) error
	Release(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a MongoDB backed product repository
func NewMongoProductRepository(db *mongo.Database, collection string) ProductRepository {
	return &mongoProductRepository{collection: db.Collection(collection)}
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *mongoProductRepository) Find(ctx context.Context, filter models.ProductFilter, page, limit int) ([]models.Product, int64, error) {
	query := bson.M{"isActive": true}

	if filter.Keyword != "" {
		regex := primitive.Regex{Pattern: filter.Keyword, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Brand != "" {
		query["brand"] = filter.Brand
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (r *mongoProductRepository) FindFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"isFeatured": true, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *mongoProductRepository) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *mongoProductRepository) Brands(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "brand")
}

func (r *mongoProductRepository) distinct(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", field, err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *mongoProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *mongoProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a product. Historical orders keep their weak
// references to it.
func (r *mongoProductRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddReview appends a review and stores the recomputed rating aggregate.
// The guard on reviews.userId makes the one-review-per-user invariant hold
// even under concurrent submissions.
func (r *mongoProductRepository) AddReview(ctx context.Context, id primitive.ObjectID, review models.Review, rating float64, numReviews int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "reviews.userId": bson.M{"$ne": review.UserID}},
		bson.M{
			"$push": bson.M{"reviews": review},
			"$set": bson.M{
				"rating":     rating,
				"numReviews": numReviews,
				"updatedAt":  time.Now().UTC(),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	if res.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("failed to add review: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrDuplicate
	}
	return nil
}

// Reserve decrements stock only when enough is available. The condition and
// the decrement are a single update, so concurrent reservations on the same
// product can never drive stock negative.
func (r *mongoProductRepository) Reserve(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{
			"$inc": bson.M{"stock": -quantity},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("reserve failed: %w", err)
	}
	if res.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("reserve failed: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// Release restores previously reserved stock.
func (r *mongoProductRepository) Release(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": quantity},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("release failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
