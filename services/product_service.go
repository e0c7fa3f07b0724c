package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/models"
	"storefront-backend/repository"
)

type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Meta     models.MetaData  `json:"meta"`
}

// ProductService is the catalog: read-mostly product data plus admin
// maintenance. Stock changes during the order lifecycle go through the
// repository's Reserve/Release, not through Update.
type ProductService interface {
	List(ctx context.Context, filter models.ProductFilter, page, limit int) (*ProductListResponse, *ServiceError)
	Featured(ctx context.Context) ([]models.Product, *ServiceError)
	Categories(ctx context.Context) ([]string, *ServiceError)
	Brands(ctx context.Context) ([]string, *ServiceError)
	Get(ctx context.Context, productID string) (*models.Product, *ServiceError)
	Create(ctx context.Context, input *models.ProductInput) (*models.Product, *ServiceError)
	Update(ctx context.Context, productID string, input *models.ProductInput) (*models.Product, *ServiceError)
	Delete(ctx context.Context, productID string) *ServiceError
	CreateReview(ctx context.Context, productID string, user *models.User, req *models.CreateReviewRequest) *ServiceError
}

type productService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productService{productRepo: productRepo, logger: logger}
}

func (s *productService) List(ctx context.Context, filter models.ProductFilter, page, limit int) (*ProductListResponse, *ServiceError) {
	products, total, err := s.productRepo.Find(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, newInternalError("Failed to fetch products")
	}

	return &ProductListResponse{
		Products: products,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
			HasMore:    total > int64(page*limit),
		},
	}, nil
}

func (s *productService) Featured(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.productRepo.FindFeatured(ctx, 6)
	if err != nil {
		s.logger.Error("Failed to list featured products", zap.Error(err))
		return nil, newInternalError("Failed to fetch products")
	}
	return products, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, *ServiceError) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, newInternalError("Failed to fetch categories")
	}
	return categories, nil
}

func (s *productService) Brands(ctx context.Context) ([]string, *ServiceError) {
	brands, err := s.productRepo.Brands(ctx)
	if err != nil {
		s.logger.Error("Failed to list brands", zap.Error(err))
		return nil, newInternalError("Failed to fetch brands")
	}
	return brands, nil
}

func (s *productService) Get(ctx context.Context, productID string) (*models.Product, *ServiceError) {
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, newNotFoundError("Product not found")
	}

	product, err := s.productRepo.FindByID(ctx, productOID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", productID), zap.Error(err))
		return nil, newInternalError("Failed to fetch product")
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, input *models.ProductInput) (*models.Product, *ServiceError) {
	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		Brand:       input.Brand,
		Images:      input.Images,
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, newInternalError("Failed to create product")
	}

	s.logger.Info("Product created", zap.String("product_id", product.ID.Hex()), zap.String("name", product.Name))
	return product, nil
}

func (s *productService) Update(ctx context.Context, productID string, input *models.ProductInput) (*models.Product, *ServiceError) {
	product, svcErr := s.Get(ctx, productID)
	if svcErr != nil {
		return nil, svcErr
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Category = input.Category
	product.Brand = input.Brand
	product.Images = input.Images
	product.IsFeatured = input.IsFeatured

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError("Product not found")
		}
		s.logger.Error("Failed to update product", zap.String("product_id", productID), zap.Error(err))
		return nil, newInternalError("Failed to update product")
	}
	return product, nil
}

// CreateReview records a customer review. Each user may review a product
// once; the new rating is the mean over all reviews.
func (s *productService) CreateReview(ctx context.Context, productID string, user *models.User, req *models.CreateReviewRequest) *ServiceError {
	if req.Rating < 1 || req.Rating > 5 {
		return newValidationError("Rating must be between 1 and 5")
	}

	product, svcErr := s.Get(ctx, productID)
	if svcErr != nil {
		return svcErr
	}
	if !product.IsActive {
		return newNotFoundError("Product not found")
	}

	sum := req.Rating
	for _, r := range product.Reviews {
		if r.UserID == user.ID {
			return newValidationError("Product already reviewed")
		}
		sum += r.Rating
	}
	numReviews := len(product.Reviews) + 1
	rating := sum / float64(numReviews)

	review := models.Review{
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.productRepo.AddReview(ctx, product.ID, review, rating, numReviews); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return newValidationError("Product already reviewed")
		case errors.Is(err, repository.ErrNotFound):
			return newNotFoundError("Product not found")
		default:
			s.logger.Error("Failed to add review", zap.String("product_id", productID), zap.Error(err))
			return newInternalError("Failed to add review")
		}
	}

	s.logger.Info("Review added",
		zap.String("product_id", productID), zap.String("user_id", user.ID.Hex()))
	return nil
}

// Delete deactivates the product. Historical orders keep referencing it.
func (s *productService) Delete(ctx context.Context, productID string) *ServiceError {
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return newNotFoundError("Product not found")
	}

	if err := s.productRepo.Deactivate(ctx, productOID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newNotFoundError("Product not found")
		}
		s.logger.Error("Failed to delete product", zap.String("product_id", productID), zap.Error(err))
		return newInternalError("Failed to delete product")
	}

	s.logger.Info("Product deactivated", zap.String("product_id", productID))
	return nil
}
