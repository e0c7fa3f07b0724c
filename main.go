package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"storefront-backend/controllers"
	"storefront-backend/database"
	"storefront-backend/middleware"
	"storefront-backend/pkg/logger"
	"storefront-backend/repository"
	"storefront-backend/routes"
	"storefront-backend/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	ctx := context.Background()

	mongoClient, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Log.Fatal("Index creation failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	// --- Repositories ---
	productRepo := repository.NewMongoProductRepository(db, database.ProductsCollection)
	cartRepo := repository.NewMongoCartRepository(db, database.CartsCollection)
	orderRepo := repository.NewMongoOrderRepository(db, database.OrdersCollection)
	userRepo := repository.NewMongoUserRepository(db, database.UsersCollection)
	paymentRepo := repository.NewRedisPaymentRepository(redisClient, cfg.PaymentTTL)

	// --- Services ---
	productService := services.NewProductService(productRepo, logger.Log)
	cartService := services.NewCartService(cartRepo, productRepo, logger.Log)
	orderService := services.NewOrderService(orderRepo, productRepo, cartRepo, logger.Log)
	userService := services.NewUserService(userRepo, cfg.JWTSecret, logger.Log)
	paymentService := services.NewPaymentService(paymentRepo, services.NewSimulatedUpiProvider(), services.MerchantConfig{
		UpiID: cfg.MerchantUpiID,
		Name:  cfg.MerchantName,
		Code:  cfg.MerchantCode,
	}, logger.Log)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimitMiddleware(rate.Limit(20), 40))
	router.Use(func(c *gin.Context) {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(reqCtx)
		c.Next()
	})

	routes.Setup(router, &routes.Controllers{
		Users:    controllers.NewUserController(userService),
		Products: controllers.NewProductController(productService, userService),
		Cart:     controllers.NewCartController(cartService),
		Orders:   controllers.NewOrderController(orderService),
		Payments: controllers.NewPaymentController(paymentService, userService),
	}, cfg.JWTSecret)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	go func() {
		logger.Log.Info("Storefront backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server stopped gracefully")
}
