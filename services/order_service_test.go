package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront-backend/models"
	"storefront-backend/repository"
	"storefront-backend/services"
)

// ---- mock product repository ----

// mockProductRepo keeps real stock counters so reservation and release
// sequences can be asserted end to end.
type mockProductRepo struct {
	products    map[primitive.ObjectID]*models.Product
	reserveErr  map[primitive.ObjectID]error
	findErr     error
	listing     []models.Product
	listTotal   int64
	featured    []models.Product
	categories  []string
	brands      []string
	deactivated []primitive.ObjectID
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{
		products:   map[primitive.ObjectID]*models.Product{},
		reserveErr: map[primitive.ObjectID]error{},
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) Reserve(_ context.Context, id primitive.ObjectID, quantity int) error {
	if err := m.reserveErr[id]; err != nil {
		return err
	}
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.Stock < quantity {
		return repository.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (m *mockProductRepo) Release(_ context.Context, id primitive.ObjectID, quantity int) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock += quantity
	return nil
}

func (m *mockProductRepo) Find(_ context.Context, _ models.ProductFilter, _, _ int) ([]models.Product, int64, error) {
	return m.listing, m.listTotal, nil
}
func (m *mockProductRepo) FindFeatured(_ context.Context, _ int) ([]models.Product, error) {
	return m.featured, nil
}
func (m *mockProductRepo) Categories(_ context.Context) ([]string, error) { return m.categories, nil }
func (m *mockProductRepo) Brands(_ context.Context) ([]string, error)     { return m.brands, nil }

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) AddReview(_ context.Context, id primitive.ObjectID, review models.Review, rating float64, numReviews int) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, r := range p.Reviews {
		if r.UserID == review.UserID {
			return repository.ErrDuplicate
		}
	}
	p.Reviews = append(p.Reviews, review)
	p.Rating = rating
	p.NumReviews = numReviews
	return nil
}

func (m *mockProductRepo) Deactivate(_ context.Context, id primitive.ObjectID) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = false
	m.deactivated = append(m.deactivated, id)
	return nil
}

// ---- mock order repository ----

type mockOrderRepo struct {
	created    *models.Order
	createErr  error
	findOrder  *models.Order
	findErr    error
	updated    *models.Order
	updateErr  error
	allOrders  []models.Order
	allTotal   int64
	userOrders []models.Order
	userTotal  int64
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = primitive.NewObjectID()
	m.created = order
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, _ primitive.ObjectID) (*models.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.findOrder == nil {
		return nil, repository.ErrNotFound
	}
	cp := *m.findOrder
	return &cp, nil
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, _ primitive.ObjectID, _, _ int) ([]models.Order, int64, error) {
	return m.userOrders, m.userTotal, nil
}

func (m *mockOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	return m.allOrders, m.allTotal, nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *models.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = order
	return nil
}

// ---- mock cart repository ----

type mockCartRepo struct {
	cart      *models.Cart
	findErr   error
	upsertErr error
	resets    int
	resetErr  error
}

func (m *mockCartRepo) FindByUserID(_ context.Context, _ primitive.ObjectID) (*models.Cart, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.cart == nil {
		return nil, repository.ErrNotFound
	}
	cp := *m.cart
	return &cp, nil
}

func (m *mockCartRepo) Upsert(_ context.Context, cart *models.Cart) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.cart = cart
	return nil
}

func (m *mockCartRepo) Reset(_ context.Context, _ primitive.ObjectID) error {
	m.resets++
	return m.resetErr
}

// ---- helpers ----

func newTestOrderService(orders *mockOrderRepo, products *mockProductRepo, carts *mockCartRepo) services.OrderService {
	logger, _ := zap.NewDevelopment()
	return services.NewOrderService(orders, products, carts, logger)
}

func activeProduct(name string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
}

func createRequest(items []models.CreateOrderItem, itemsPrice, tax, shipping float64) *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		OrderItems:      items,
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Pune", PostalCode: "411001", Country: "IN"},
		PaymentMethod:   "UPI",
		ItemsPrice:      itemsPrice,
		TaxPrice:        tax,
		ShippingPrice:   shipping,
		TotalPrice:      itemsPrice + tax + shipping,
	}
}

// ---- CreateOrder ----

func TestCreateOrder_Success(t *testing.T) {
	product := activeProduct("Keyboard", 100, 10)
	products := newMockProductRepo(product)
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	svc := newTestOrderService(orders, products, carts)

	userID := primitive.NewObjectID().Hex()
	req := createRequest([]models.CreateOrderItem{{ProductID: product.ID.Hex(), Quantity: 3}}, 300, 30, 20)

	order, svcErr := svc.CreateOrder(context.Background(), userID, req)

	assert.Nil(t, svcErr)
	assert.NotNil(t, order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 7, products.products[product.ID].Stock)
	assert.Equal(t, 1, carts.resets)
	if assert.Len(t, order.OrderItems, 1) {
		assert.Equal(t, "Keyboard", order.OrderItems[0].Name)
		assert.Equal(t, 100.0, order.OrderItems[0].Price)
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	product := activeProduct("Keyboard", 100, 10)
	products := newMockProductRepo(product)
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	svc := newTestOrderService(orders, products, carts)

	req := createRequest(nil, 0, 0, 0)
	_, svcErr := svc.CreateOrder(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, services.CodeValidation, svcErr.Code)
	assert.Equal(t, 10, products.products[product.ID].Stock)
	assert.Nil(t, orders.created)
	assert.Equal(t, 0, carts.resets)
}

func TestCreateOrder_PriceBreakdownMismatch(t *testing.T) {
	product := activeProduct("Keyboard", 100, 10)
	products := newMockProductRepo(product)
	svc := newTestOrderService(&mockOrderRepo{}, products, &mockCartRepo{})

	req := createRequest([]models.CreateOrderItem{{ProductID: product.ID.Hex(), Quantity: 1}}, 100, 10, 5)
	req.TotalPrice = 200

	_, svcErr := svc.CreateOrder(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeValidation, svcErr.Code)
	assert.Equal(t, 10, products.products[product.ID].Stock)
}

func TestCreateOrder_InsufficientStockRollsBack(t *testing.T) {
	first := activeProduct("Keyboard", 100, 10)
	second := activeProduct("Mouse", 50, 2)
	products := newMockProductRepo(first, second)
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{}
	svc := newTestOrderService(orders, products, carts)

	req := createRequest([]models.CreateOrderItem{
		{ProductID: first.ID.Hex(), Quantity: 3},
		{ProductID: second.ID.Hex(), Quantity: 5},
	}, 550, 0, 0)

	_, svcErr := svc.CreateOrder(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, services.CodeInsufficientStock, svcErr.Code)
	// the first reservation must have been compensated
	assert.Equal(t, 10, products.products[first.ID].Stock)
	assert.Equal(t, 2, products.products[second.ID].Stock)
	assert.Nil(t, orders.created)
	assert.Equal(t, 0, carts.resets)
}

func TestCreateOrder_InactiveProduct(t *testing.T) {
	product := activeProduct("Keyboard", 100, 10)
	product.IsActive = false
	products := newMockProductRepo(product)
	svc := newTestOrderService(&mockOrderRepo{}, products, &mockCartRepo{})

	req := createRequest([]models.CreateOrderItem{{ProductID: product.ID.Hex(), Quantity: 1}}, 100, 0, 0)
	_, svcErr := svc.CreateOrder(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, 10, products.products[product.ID].Stock)
}

func TestCreateOrder_PersistFailureReleasesStock(t *testing.T) {
	product := activeProduct("Keyboard", 100, 10)
	products := newMockProductRepo(product)
	orders := &mockOrderRepo{createErr: errors.New("write failed")}
	carts := &mockCartRepo{}
	svc := newTestOrderService(orders, products, carts)

	req := createRequest([]models.CreateOrderItem{{ProductID: product.ID.Hex(), Quantity: 4}}, 400, 0, 0)
	_, svcErr := svc.CreateOrder(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
	assert.Equal(t, 10, products.products[product.ID].Stock)
	assert.Equal(t, 0, carts.resets)
}

func TestCreateOrder_CartResetFailureIsNonFatal(t *testing.T) {
	product := activeProduct("Keyboard", 100, 10)
	products := newMockProductRepo(product)
	orders := &mockOrderRepo{}
	carts := &mockCartRepo{resetErr: errors.New("redis down")}
	svc := newTestOrderService(orders, products, carts)

	req := createRequest([]models.CreateOrderItem{{ProductID: product.ID.Hex(), Quantity: 1}}, 100, 0, 0)
	order, svcErr := svc.CreateOrder(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.Nil(t, svcErr)
	assert.NotNil(t, order)
	assert.Equal(t, 9, products.products[product.ID].Stock)
}

// ---- GetOrder ----

func TestGetOrder_OwnerAndAdminAccess(t *testing.T) {
	owner := primitive.NewObjectID()
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: owner, Status: models.OrderStatusPending}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	_, svcErr := svc.GetOrder(context.Background(), owner.Hex(), models.RoleUser, orders.findOrder.ID.Hex())
	assert.Nil(t, svcErr)

	_, svcErr = svc.GetOrder(context.Background(), primitive.NewObjectID().Hex(), models.RoleAdmin, orders.findOrder.ID.Hex())
	assert.Nil(t, svcErr)

	_, svcErr = svc.GetOrder(context.Background(), primitive.NewObjectID().Hex(), models.RoleUser, orders.findOrder.ID.Hex())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := newTestOrderService(&mockOrderRepo{}, newMockProductRepo(), &mockCartRepo{})

	_, svcErr := svc.GetOrder(context.Background(), primitive.NewObjectID().Hex(), models.RoleUser, primitive.NewObjectID().Hex())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)

	_, svcErr = svc.GetOrder(context.Background(), primitive.NewObjectID().Hex(), models.RoleUser, "not-a-hex-id")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

// ---- MarkPaid ----

func TestMarkPaid_SetsPaymentResult(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Status: models.OrderStatusPending}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	req := &models.PayOrderRequest{ID: "TXN123", Status: "success", EmailAddress: "a@b.c"}
	order, svcErr := svc.MarkPaid(context.Background(), orders.findOrder.ID.Hex(), req)

	assert.Nil(t, svcErr)
	assert.True(t, order.IsPaid)
	assert.NotNil(t, order.PaidAt)
	if assert.NotNil(t, order.PaymentResult) {
		assert.Equal(t, "TXN123", order.PaymentResult.ID)
	}
	assert.NotNil(t, orders.updated)
}

func TestMarkPaid_AlreadyPaidIsIdempotent(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Status: models.OrderStatusProcessing,
		IsPaid: true,
	}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	order, svcErr := svc.MarkPaid(context.Background(), orders.findOrder.ID.Hex(), &models.PayOrderRequest{ID: "TXN999"})

	assert.Nil(t, svcErr)
	assert.True(t, order.IsPaid)
	assert.Nil(t, order.PaymentResult)
	assert.Nil(t, orders.updated)
}

// ---- MarkDelivered ----

func TestMarkDelivered_RequiresPayment(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Status: models.OrderStatusShipped}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	_, svcErr := svc.MarkDelivered(context.Background(), orders.findOrder.ID.Hex())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Order is not paid", svcErr.Message)
}

func TestMarkDelivered_Success(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Status: models.OrderStatusShipped,
		IsPaid: true,
	}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	order, svcErr := svc.MarkDelivered(context.Background(), orders.findOrder.ID.Hex())
	assert.Nil(t, svcErr)
	assert.True(t, order.IsDelivered)
	assert.NotNil(t, order.DeliveredAt)
}

// ---- UpdateStatus ----

func TestUpdateStatus_AllowedTransition(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Status: models.OrderStatusPending}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	order, svcErr := svc.UpdateStatus(context.Background(), orders.findOrder.ID.Hex(),
		&models.UpdateOrderStatusRequest{Status: models.OrderStatusProcessing, TrackingNumber: "TRK1"})

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "TRK1", order.TrackingNumber)
}

func TestUpdateStatus_DisallowedTransition(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Status: models.OrderStatusDelivered}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	_, svcErr := svc.UpdateStatus(context.Background(), orders.findOrder.ID.Hex(),
		&models.UpdateOrderStatusRequest{Status: models.OrderStatusPending})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeInvalidTransition, svcErr.Code)
	assert.Nil(t, orders.updated)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Status: models.OrderStatusPending}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	_, svcErr := svc.UpdateStatus(context.Background(), orders.findOrder.ID.Hex(),
		&models.UpdateOrderStatusRequest{Status: "misplaced"})

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeValidation, svcErr.Code)
}

func TestUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Status: models.OrderStatusProcessing}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	order, svcErr := svc.UpdateStatus(context.Background(), orders.findOrder.ID.Hex(),
		&models.UpdateOrderStatusRequest{Status: models.OrderStatusProcessing, Notes: "repacked"})

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "repacked", order.Notes)
}

// ---- CancelOrder ----

func TestCancelOrder_FromProcessingRestocks(t *testing.T) {
	product := activeProduct("Keyboard", 100, 7)
	products := newMockProductRepo(product)
	owner := primitive.NewObjectID()
	orders := &mockOrderRepo{findOrder: &models.Order{
		ID:         primitive.NewObjectID(),
		UserID:     owner,
		Status:     models.OrderStatusProcessing,
		OrderItems: []models.OrderItem{{ProductID: product.ID, Quantity: 3, Price: 100}},
	}}
	svc := newTestOrderService(orders, products, &mockCartRepo{})

	order, svcErr := svc.CancelOrder(context.Background(), orders.findOrder.ID.Hex(), owner.Hex(), models.RoleUser)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Equal(t, 10, products.products[product.ID].Stock)
}

func TestCancelOrder_FromPendingDoesNotRestock(t *testing.T) {
	product := activeProduct("Keyboard", 100, 7)
	products := newMockProductRepo(product)
	owner := primitive.NewObjectID()
	orders := &mockOrderRepo{findOrder: &models.Order{
		ID:         primitive.NewObjectID(),
		UserID:     owner,
		Status:     models.OrderStatusPending,
		OrderItems: []models.OrderItem{{ProductID: product.ID, Quantity: 3, Price: 100}},
	}}
	svc := newTestOrderService(orders, products, &mockCartRepo{})

	order, svcErr := svc.CancelOrder(context.Background(), orders.findOrder.ID.Hex(), owner.Hex(), models.RoleUser)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Equal(t, 7, products.products[product.ID].Stock)
}

func TestCancelOrder_PersistFailureLeavesStockUntouched(t *testing.T) {
	product := activeProduct("Keyboard", 100, 7)
	products := newMockProductRepo(product)
	owner := primitive.NewObjectID()
	orders := &mockOrderRepo{
		updateErr: errors.New("write failed"),
		findOrder: &models.Order{
			ID:         primitive.NewObjectID(),
			UserID:     owner,
			Status:     models.OrderStatusProcessing,
			OrderItems: []models.OrderItem{{ProductID: product.ID, Quantity: 3, Price: 100}},
		},
	}
	svc := newTestOrderService(orders, products, &mockCartRepo{})

	_, svcErr := svc.CancelOrder(context.Background(), orders.findOrder.ID.Hex(), owner.Hex(), models.RoleUser)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
	assert.Equal(t, 7, products.products[product.ID].Stock)

	// a retry after the store recovers restocks exactly once
	orders.updateErr = nil
	order, svcErr := svc.CancelOrder(context.Background(), orders.findOrder.ID.Hex(), owner.Hex(), models.RoleUser)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Equal(t, 10, products.products[product.ID].Stock)
}

func TestCancelOrder_ShippedIsRejected(t *testing.T) {
	product := activeProduct("Keyboard", 100, 7)
	products := newMockProductRepo(product)
	owner := primitive.NewObjectID()
	orders := &mockOrderRepo{findOrder: &models.Order{
		ID:         primitive.NewObjectID(),
		UserID:     owner,
		Status:     models.OrderStatusShipped,
		OrderItems: []models.OrderItem{{ProductID: product.ID, Quantity: 3, Price: 100}},
	}}
	svc := newTestOrderService(orders, products, &mockCartRepo{})

	_, svcErr := svc.CancelOrder(context.Background(), orders.findOrder.ID.Hex(), owner.Hex(), models.RoleUser)

	assert.NotNil(t, svcErr)
	assert.Equal(t, services.CodeInvalidTransition, svcErr.Code)
	assert.Equal(t, 7, products.products[product.ID].Stock)
	assert.Nil(t, orders.updated)
}

func TestCancelOrder_StrangerForbidden(t *testing.T) {
	owner := primitive.NewObjectID()
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: owner, Status: models.OrderStatusPending}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	_, svcErr := svc.CancelOrder(context.Background(), orders.findOrder.ID.Hex(), primitive.NewObjectID().Hex(), models.RoleUser)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.StatusCode)
}

func TestCancelOrder_AdminCanCancelAnyOrder(t *testing.T) {
	owner := primitive.NewObjectID()
	orders := &mockOrderRepo{findOrder: &models.Order{ID: primitive.NewObjectID(), UserID: owner, Status: models.OrderStatusPending}}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	order, svcErr := svc.CancelOrder(context.Background(), orders.findOrder.ID.Hex(), primitive.NewObjectID().Hex(), models.RoleAdmin)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

// ---- listing ----

func TestGetUserOrders_Pagination(t *testing.T) {
	orders := &mockOrderRepo{
		userOrders: []models.Order{{Status: models.OrderStatusPending}},
		userTotal:  25,
	}
	svc := newTestOrderService(orders, newMockProductRepo(), &mockCartRepo{})

	resp, svcErr := svc.GetUserOrders(context.Background(), primitive.NewObjectID().Hex(), 2, 10)

	assert.Nil(t, svcErr)
	assert.Equal(t, int64(25), resp.Meta.Total)
	assert.Equal(t, int64(3), resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasMore)
}
