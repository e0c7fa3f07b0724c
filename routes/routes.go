package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/controllers"
	"storefront-backend/middleware"
)

// Controllers bundles every controller the router wires up.
type Controllers struct {
	Users    *controllers.UserController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Payments *controllers.PaymentController
}

// Setup registers all API routes on the engine.
func Setup(router *gin.Engine, ctrl *Controllers, jwtSecret string) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "storefront-backend", "status": "running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := middleware.AuthMiddleware(jwtSecret)
	adminOnly := middleware.AdminOnly()

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", ctrl.Users.Register)
		users.POST("/login", ctrl.Users.Login)
		users.GET("/profile", auth, ctrl.Users.GetProfile)
		users.PUT("/profile", auth, ctrl.Users.UpdateProfile)
		users.GET("", auth, adminOnly, ctrl.Users.GetUsers)
		users.DELETE("/:id", auth, adminOnly, ctrl.Users.DeleteUser)
	}

	products := api.Group("/products")
	{
		products.GET("", ctrl.Products.GetProducts)
		products.GET("/featured", ctrl.Products.GetFeaturedProducts)
		products.GET("/categories", ctrl.Products.GetCategories)
		products.GET("/brands", ctrl.Products.GetBrands)
		products.GET("/:id", ctrl.Products.GetProductByID)
		products.POST("/:id/reviews", auth, ctrl.Products.CreateReview)
		products.POST("", auth, adminOnly, ctrl.Products.CreateProduct)
		products.PUT("/:id", auth, adminOnly, ctrl.Products.UpdateProduct)
		products.DELETE("/:id", auth, adminOnly, ctrl.Products.DeleteProduct)
	}

	cart := api.Group("/cart", auth)
	{
		cart.GET("", ctrl.Cart.GetCart)
		cart.GET("/count", ctrl.Cart.GetCartCount)
		cart.POST("", ctrl.Cart.AddItem)
		cart.PUT("/:productId", ctrl.Cart.UpdateItem)
		cart.DELETE("/:productId", ctrl.Cart.RemoveItem)
		cart.DELETE("", ctrl.Cart.ClearCart)
	}

	orders := api.Group("/orders", auth)
	{
		orders.POST("", ctrl.Orders.CreateOrder)
		orders.GET("/myorders", ctrl.Orders.GetMyOrders)
		orders.GET("", adminOnly, ctrl.Orders.GetAllOrders)
		orders.GET("/:id", ctrl.Orders.GetOrderByID)
		orders.PUT("/:id/pay", ctrl.Orders.PayOrder)
		orders.PUT("/:id/deliver", adminOnly, ctrl.Orders.DeliverOrder)
		orders.PUT("/:id/status", adminOnly, ctrl.Orders.UpdateOrderStatus)
		orders.PUT("/:id/cancel", ctrl.Orders.CancelOrder)
	}

	payments := api.Group("/payments")
	{
		payments.GET("/payment-methods", ctrl.Payments.GetPaymentMethods)
		payments.POST("/create-upi-payment", auth, ctrl.Payments.CreateUpiPayment)
		payments.POST("/verify-upi-payment", auth, ctrl.Payments.VerifyUpiPayment)
		payments.GET("/status/:transactionId", auth, ctrl.Payments.GetPaymentStatus)
		payments.POST("/refund", auth, adminOnly, ctrl.Payments.ProcessRefund)
	}
}
