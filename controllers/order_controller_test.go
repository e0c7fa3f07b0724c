package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-backend/controllers"
	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/services"
)

// ---- concrete mock implementing services.OrderService ----

type mockOrderSvc struct {
	order     *models.Order
	orderErr  *services.ServiceError
	list      *services.OrderListResponse
	listErr   *services.ServiceError
	cancelled bool
	payReq    *models.PayOrderRequest
}

func (m *mockOrderSvc) CreateOrder(_ context.Context, _ string, _ *models.CreateOrderRequest) (*models.Order, *services.ServiceError) {
	return m.order, m.orderErr
}
func (m *mockOrderSvc) GetOrder(_ context.Context, _, _, _ string) (*models.Order, *services.ServiceError) {
	return m.order, m.orderErr
}
func (m *mockOrderSvc) GetUserOrders(_ context.Context, _ string, _, _ int) (*services.OrderListResponse, *services.ServiceError) {
	return m.list, m.listErr
}
func (m *mockOrderSvc) GetAllOrders(_ context.Context, _, _ int) (*services.OrderListResponse, *services.ServiceError) {
	return m.list, m.listErr
}
func (m *mockOrderSvc) MarkPaid(_ context.Context, _ string, req *models.PayOrderRequest) (*models.Order, *services.ServiceError) {
	m.payReq = req
	return m.order, m.orderErr
}
func (m *mockOrderSvc) MarkDelivered(_ context.Context, _ string) (*models.Order, *services.ServiceError) {
	return m.order, m.orderErr
}
func (m *mockOrderSvc) UpdateStatus(_ context.Context, _ string, _ *models.UpdateOrderStatusRequest) (*models.Order, *services.ServiceError) {
	return m.order, m.orderErr
}
func (m *mockOrderSvc) CancelOrder(_ context.Context, _, _, _ string) (*models.Order, *services.ServiceError) {
	m.cancelled = true
	return m.order, m.orderErr
}

// ---- helpers ----

func setupOrderRouter(svc services.OrderService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserContextKey, userID)
			c.Set(middleware.RoleContextKey, models.RoleUser)
			c.Next()
		})
	}

	oc := controllers.NewOrderController(svc)
	r.POST("/api/orders", oc.CreateOrder)
	r.GET("/api/orders/myorders", oc.GetMyOrders)
	r.GET("/api/orders/:id", oc.GetOrderByID)
	r.PUT("/api/orders/:id/cancel", oc.CancelOrder)
	r.PUT("/api/orders/:id/pay", oc.PayOrder)
	return r
}

func orderRequestBody() []byte {
	b, _ := json.Marshal(models.CreateOrderRequest{
		OrderItems:      []models.CreateOrderItem{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}},
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Pune", PostalCode: "411001", Country: "IN"},
		PaymentMethod:   "UPI",
		ItemsPrice:      100,
		TotalPrice:      100,
	})
	return b
}

// ---- tests ----

func TestCreateOrder_Created(t *testing.T) {
	svc := &mockOrderSvc{order: &models.Order{ID: primitive.NewObjectID(), Status: models.OrderStatusPending}}
	r := setupOrderRouter(svc, primitive.NewObjectID().Hex())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(orderRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestCreateOrder_Unauthenticated(t *testing.T) {
	svc := &mockOrderSvc{}
	r := setupOrderRouter(svc, "")

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(orderRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrder_ServiceErrorMapped(t *testing.T) {
	svc := &mockOrderSvc{orderErr: &services.ServiceError{
		StatusCode: 400,
		Code:       services.CodeInsufficientStock,
		Message:    "Insufficient stock for product",
	}}
	r := setupOrderRouter(svc, primitive.NewObjectID().Hex())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(orderRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, services.CodeInsufficientStock, body["code"])
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	svc := &mockOrderSvc{}
	r := setupOrderRouter(svc, primitive.NewObjectID().Hex())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMyOrders_ReturnsMeta(t *testing.T) {
	svc := &mockOrderSvc{list: &services.OrderListResponse{
		Orders: []models.Order{{Status: models.OrderStatusPending}},
		Meta:   models.MetaData{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
	}}
	r := setupOrderRouter(svc, primitive.NewObjectID().Hex())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/myorders?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got services.OrderListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Orders, 1)
	assert.Equal(t, int64(1), got.Meta.Total)
}

func TestPayOrder_BindsProviderPayload(t *testing.T) {
	svc := &mockOrderSvc{order: &models.Order{ID: primitive.NewObjectID(), Status: models.OrderStatusProcessing}}
	r := setupOrderRouter(svc, primitive.NewObjectID().Hex())

	body := []byte(`{"id":"pay_123","status":"COMPLETED","update_time":"2026-08-31T10:00:00Z","email_address":"asha@example.com"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+primitive.NewObjectID().Hex()+"/pay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, svc.payReq) {
		assert.Equal(t, "pay_123", svc.payReq.ID)
		assert.Equal(t, "COMPLETED", svc.payReq.Status)
		assert.Equal(t, "2026-08-31T10:00:00Z", svc.payReq.UpdateTime)
		assert.Equal(t, "asha@example.com", svc.payReq.EmailAddress)
	}
}

func TestCancelOrder_Forbidden(t *testing.T) {
	svc := &mockOrderSvc{orderErr: &services.ServiceError{
		StatusCode: 403,
		Code:       services.CodeForbidden,
		Message:    "Not authorized to cancel this order",
	}}
	r := setupOrderRouter(svc, primitive.NewObjectID().Hex())

	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+primitive.NewObjectID().Hex()+"/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, svc.cancelled)
}
