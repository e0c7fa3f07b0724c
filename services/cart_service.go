package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/models"
	"storefront-backend/repository"
)

// CartService owns per-user cart contents. A cart is created lazily on
// first access and holds at most one line per product; totals are
// recomputed after every mutation.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, *ServiceError)
	AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.Cart, *ServiceError)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, *ServiceError)
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, *ServiceError)
	Clear(ctx context.Context, userID string) (*models.Cart, *ServiceError)
	Count(ctx context.Context, userID string) (int, *ServiceError)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *cartService) GetCart(ctx context.Context, userID string) (*models.Cart, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newValidationError("Invalid user ID")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userOID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			cart = emptyCart(userOID)
			if err := s.cartRepo.Upsert(ctx, cart); err != nil {
				s.logger.Error("Failed to create cart", zap.String("user_id", userID), zap.Error(err))
				return nil, newInternalError("Failed to get cart")
			}
			return cart, nil
		}
		s.logger.Error("Failed to fetch cart", zap.String("user_id", userID), zap.Error(err))
		return nil, newInternalError("Failed to get cart")
	}
	return cart, nil
}

// AddItem adds a product to the cart, merging with an existing line by
// incrementing its quantity. The line's price snapshot is refreshed to the
// catalog's current price either way.
func (s *cartService) AddItem(ctx context.Context, userID string, req *models.AddCartItemRequest) (*models.Cart, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newValidationError("Invalid user ID")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, newValidationError("Quantity must be at least 1")
	}

	product, svcErr := s.findProduct(ctx, req.ProductID)
	if svcErr != nil {
		return nil, svcErr
	}
	if product.Stock < quantity {
		return nil, newInsufficientStockError("Insufficient stock")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userOID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to fetch cart", zap.String("user_id", userID), zap.Error(err))
			return nil, newInternalError("Failed to update cart")
		}
		cart = emptyCart(userOID)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].Price = product.Price
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	return s.saveCart(ctx, cart)
}

// UpdateItem sets an existing line's quantity and refreshes its price
// snapshot.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newValidationError("Invalid user ID")
	}

	if quantity < 1 {
		return nil, newValidationError("Quantity must be at least 1")
	}

	product, svcErr := s.findProduct(ctx, productID)
	if svcErr != nil {
		return nil, svcErr
	}
	if product.Stock < quantity {
		return nil, newInsufficientStockError("Insufficient stock")
	}

	cart, svcErr := s.findCart(ctx, userOID)
	if svcErr != nil {
		return nil, svcErr
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity = quantity
			cart.Items[i].Price = product.Price
			found = true
			break
		}
	}
	if !found {
		return nil, newNotFoundError("Item not found in cart")
	}

	return s.saveCart(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newValidationError("Invalid user ID")
	}

	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", productID))
	}

	cart, svcErr := s.findCart(ctx, userOID)
	if svcErr != nil {
		return nil, svcErr
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productOID {
			items = append(items, item)
		}
	}
	cart.Items = items

	return s.saveCart(ctx, cart)
}

// Clear empties the cart. The cart document is kept with zero totals.
func (s *cartService) Clear(ctx context.Context, userID string) (*models.Cart, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newValidationError("Invalid user ID")
	}

	cart, svcErr := s.findCart(ctx, userOID)
	if svcErr != nil {
		return nil, svcErr
	}

	cart.Items = []models.CartItem{}
	return s.saveCart(ctx, cart)
}

func (s *cartService) Count(ctx context.Context, userID string) (int, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, newValidationError("Invalid user ID")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userOID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		s.logger.Error("Failed to fetch cart", zap.String("user_id", userID), zap.Error(err))
		return 0, newInternalError("Failed to get cart count")
	}
	return cart.TotalItems, nil
}

func (s *cartService) findProduct(ctx context.Context, productID string) (*models.Product, *ServiceError) {
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", productID))
	}

	product, err := s.productRepo.FindByID(ctx, productOID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", productID))
		}
		s.logger.Error("Failed to read product", zap.String("product_id", productID), zap.Error(err))
		return nil, newInternalError("Failed to read product")
	}
	if !product.IsActive {
		return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", productID))
	}
	return product, nil
}

func (s *cartService) findCart(ctx context.Context, userOID primitive.ObjectID) (*models.Cart, *ServiceError) {
	cart, err := s.cartRepo.FindByUserID(ctx, userOID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError("Cart not found")
		}
		s.logger.Error("Failed to fetch cart", zap.String("user_id", userOID.Hex()), zap.Error(err))
		return nil, newInternalError("Failed to get cart")
	}
	return cart, nil
}

func (s *cartService) saveCart(ctx context.Context, cart *models.Cart) (*models.Cart, *ServiceError) {
	recomputeTotals(cart)
	if err := s.cartRepo.Upsert(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", cart.UserID.Hex()), zap.Error(err))
		return nil, newInternalError("Failed to save cart")
	}
	return cart, nil
}

func recomputeTotals(cart *models.Cart) {
	total := 0.0
	totalItems := 0
	for _, item := range cart.Items {
		total += item.Price * float64(item.Quantity)
		totalItems += item.Quantity
	}
	cart.Total = total
	cart.TotalItems = totalItems
}

func emptyCart(userID primitive.ObjectID) *models.Cart {
	return &models.Cart{
		UserID: userID,
		Items:  []models.CartItem{},
	}
}
