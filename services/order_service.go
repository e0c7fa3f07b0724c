package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/models"
	"storefront-backend/repository"
)

// allowedTransitions is the order state machine. Cancelled is reachable
// from pending or processing only; delivered and cancelled are terminal.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

type OrderListResponse struct {
	Orders []models.Order  `json:"orders"`
	Meta   models.MetaData `json:"meta"`
}

// OrderService orchestrates the order lifecycle: creation with stock
// reservation, payment confirmation, delivery, status updates and
// cancellation with restock.
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, *ServiceError)
	GetOrder(ctx context.Context, userID, role, orderID string) (*models.Order, *ServiceError)
	GetUserOrders(ctx context.Context, userID string, page, limit int) (*OrderListResponse, *ServiceError)
	GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, *ServiceError)
	MarkPaid(ctx context.Context, orderID string, req *models.PayOrderRequest) (*models.Order, *ServiceError)
	MarkDelivered(ctx context.Context, orderID string) (*models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, orderID string, req *models.UpdateOrderStatusRequest) (*models.Order, *ServiceError)
	CancelOrder(ctx context.Context, orderID, userID, role string) (*models.Order, *ServiceError)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, logger *zap.Logger) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		logger:      logger,
	}
}

// CreateOrder validates the request, snapshots catalog prices, reserves
// stock for every item and persists the order with status pending. The
// reservation sequence is a saga: if any item cannot be reserved, the
// items reserved so far are released in reverse order and no durable
// change remains. On success the owner's cart is reset to empty.
func (s *orderService) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newValidationError("Invalid user ID")
	}

	if len(req.OrderItems) == 0 {
		return nil, newValidationError("No order items")
	}

	if math.Abs(req.TotalPrice-(req.ItemsPrice+req.TaxPrice+req.ShippingPrice)) > 0.01 {
		return nil, newValidationError("Total price does not match price breakdown")
	}

	// Snapshot name and price from the catalog before touching stock.
	orderItems := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		if item.Quantity < 1 {
			return nil, newValidationError("Item quantity must be at least 1")
		}

		productOID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", item.ProductID))
		}

		product, err := s.productRepo.FindByID(ctx, productOID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", item.ProductID))
			}
			s.logger.Error("Failed to read product", zap.String("product_id", item.ProductID), zap.Error(err))
			return nil, newInternalError("Failed to create order")
		}
		if !product.IsActive {
			return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", item.ProductID))
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	reserved, svcErr := s.reserveItems(ctx, orderItems)
	if svcErr != nil {
		return nil, svcErr
	}

	order := &models.Order{
		UserID:          userOID,
		OrderItems:      orderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		Status:          models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist order", zap.String("user_id", userID), zap.Error(err))
		s.releaseItems(ctx, reserved)
		return nil, newInternalError("Failed to create order")
	}

	// Best-effort: the order exists at this point, a cart that failed to
	// reset is an inconvenience rather than an inconsistency.
	if err := s.cartRepo.Reset(ctx, userOID); err != nil {
		s.logger.Warn("Failed to reset cart after order creation",
			zap.String("user_id", userID), zap.String("order_id", order.ID.Hex()), zap.Error(err))
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID),
		zap.Int("items", len(orderItems)))
	return order, nil
}

// reserveItems decrements stock for each item, releasing already-reserved
// items in reverse order on the first failure.
func (s *orderService) reserveItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, *ServiceError) {
	reserved := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if err := s.productRepo.Reserve(ctx, item.ProductID, item.Quantity); err != nil {
			s.releaseItems(ctx, reserved)

			switch {
			case errors.Is(err, repository.ErrInsufficientStock):
				return nil, newInsufficientStockError(fmt.Sprintf("Insufficient stock for product %s", item.ProductID.Hex()))
			case errors.Is(err, repository.ErrNotFound):
				return nil, newNotFoundError(fmt.Sprintf("Product not found: %s", item.ProductID.Hex()))
			default:
				s.logger.Error("Failed to reserve stock", zap.String("product_id", item.ProductID.Hex()), zap.Error(err))
				return nil, newInternalError("Failed to reserve stock")
			}
		}
		reserved = append(reserved, item)
	}
	return reserved, nil
}

// releaseItems runs compensations in reverse reservation order. Individual
// failures are logged and the remaining releases still run.
func (s *orderService) releaseItems(ctx context.Context, reserved []models.OrderItem) {
	for i := len(reserved) - 1; i >= 0; i-- {
		item := reserved[i]
		if err := s.productRepo.Release(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Failed to release reserved stock",
				zap.String("product_id", item.ProductID.Hex()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

func (s *orderService) GetOrder(ctx context.Context, userID, role, orderID string) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.UserID.Hex() != userID && role != models.RoleAdmin {
		return nil, newForbiddenError("Not authorized to view this order")
	}
	return order, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID string, page, limit int) (*OrderListResponse, *ServiceError) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, newValidationError("Invalid user ID")
	}

	orders, total, err := s.orderRepo.FindByUserID(ctx, userOID, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.String("user_id", userID), zap.Error(err))
		return nil, newInternalError("Failed to fetch orders")
	}
	return buildOrderList(orders, total, page, limit), nil
}

func (s *orderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to fetch all orders", zap.Error(err))
		return nil, newInternalError("Failed to fetch orders")
	}
	return buildOrderList(orders, total, page, limit), nil
}

// MarkPaid records the payment provider result. Calling it on an already
// paid order returns the order unchanged.
func (s *orderService) MarkPaid(ctx context.Context, orderID string, req *models.PayOrderRequest) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.IsPaid {
		return order, nil
	}

	now := time.Now().UTC()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &models.PaymentResult{
		ID:           req.ID,
		Status:       req.Status,
		UpdateTime:   req.UpdateTime,
		EmailAddress: req.EmailAddress,
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to mark order paid", zap.String("order_id", orderID), zap.Error(err))
		return nil, newInternalError("Failed to update order")
	}

	s.logger.Info("Order paid", zap.String("order_id", orderID), zap.String("payment_id", req.ID))
	return order, nil
}

// MarkDelivered requires the order to be paid first. Idempotent on
// already-delivered orders.
func (s *orderService) MarkDelivered(ctx context.Context, orderID string) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if !order.IsPaid {
		return nil, newValidationError("Order is not paid")
	}
	if order.IsDelivered {
		return order, nil
	}

	now := time.Now().UTC()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to mark order delivered", zap.String("order_id", orderID), zap.Error(err))
		return nil, newInternalError("Failed to update order")
	}
	return order, nil
}

// UpdateStatus moves an order through the state machine. Transitions not
// permitted from the current status fail; setting the current status again
// is a no-op.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req *models.UpdateOrderStatusRequest) (*models.Order, *ServiceError) {
	if _, known := allowedTransitions[req.Status]; !known {
		return nil, newValidationError(fmt.Sprintf("Unknown order status: %s", req.Status))
	}

	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.Status != order.Status {
		if !transitionAllowed(order.Status, req.Status) {
			return nil, newInvalidTransitionError(
				fmt.Sprintf("Cannot change order status from %s to %s", order.Status, req.Status))
		}
		order.Status = req.Status
	}

	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.Notes != "" {
		order.Notes = req.Notes
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order status", zap.String("order_id", orderID), zap.Error(err))
		return nil, newInternalError("Failed to update order")
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID), zap.String("status", order.Status))
	return order, nil
}

// CancelOrder cancels a pending or processing order. Stock is restored
// when the pre-transition status was processing.
func (s *orderService) CancelOrder(ctx context.Context, orderID, userID, role string) (*models.Order, *ServiceError) {
	order, svcErr := s.findOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.UserID.Hex() != userID && role != models.RoleAdmin {
		return nil, newForbiddenError("Not authorized to cancel this order")
	}

	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusProcessing {
		return nil, newInvalidTransitionError("Order cannot be cancelled at this stage")
	}

	previousStatus := order.Status
	order.Status = models.OrderStatusCancelled

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to cancel order", zap.String("order_id", orderID), zap.Error(err))
		return nil, newInternalError("Failed to update order")
	}

	// Restock only once the cancellation is durable, against the status the
	// order held before the transition. A failed update leaves stock
	// untouched, so a retried cancel cannot restock the same items twice.
	if previousStatus == models.OrderStatusProcessing {
		s.releaseItems(ctx, order.OrderItems)
	}

	s.logger.Info("Order cancelled",
		zap.String("order_id", orderID),
		zap.String("previous_status", previousStatus))
	return order, nil
}

func (s *orderService) findOrder(ctx context.Context, orderID string) (*models.Order, *ServiceError) {
	orderOID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, newNotFoundError("Order not found")
	}

	order, err := s.orderRepo.FindByID(ctx, orderOID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID), zap.Error(err))
		return nil, newInternalError("Failed to fetch order")
	}
	return order, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func buildOrderList(orders []models.Order, total int64, page, limit int) *OrderListResponse {
	return &OrderListResponse{
		Orders: orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
			HasMore:    total > int64(page*limit),
		},
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
