package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"github.com/waellejmi/pos-app/internal/caching"
	"github.com/waellejmi/pos-app/internal/handlers"
	"github.com/waellejmi/pos-app/internal/jobs/background"
	"github.com/waellejmi/pos-app/internal/middleware"
	"github.com/waellejmi/pos-app/internal/repositories"
	"github.com/waellejmi/pos-app/internal/services"
	"github.com/waellejmi/pos-app/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generated secret for development only
		log.Printf("WARNING: Using generated JWT secret")
	}
	tokenTTL := 3600
	if ttlStr := os.Getenv("JWT_TTL_SECONDS"); ttlStr != "" {
		if ttl, err := strconv.Atoi(ttlStr); err == nil {
			tokenTTL = ttl
		}
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "pos-images"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	imageSvc, err := services.NewImageService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize image service: %v", err)
	}
	if err := imageSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("WARNING: Could not verify bucket %q: %v", minioBucket, err)
	}

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	supplierRepo := repositories.NewSupplierRepo(pool)
	customerRepo := repositories.NewCustomerRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	transactionRepo := repositories.NewTransactionRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	// Services
	inventorySvc := services.NewInventoryService(productRepo, transactionRepo)
	productSvc := services.NewProductService(pool, productRepo, inventorySvc, imageSvc, cacheSvc)
	categorySvc := services.NewCategoryService(pool, categoryRepo, productRepo, cacheSvc)
	supplierSvc := services.NewSupplierService(pool, supplierRepo, productRepo, cacheSvc)
	customerSvc := services.NewCustomerService(customerRepo)
	paymentSvc := services.NewPaymentService(paymentRepo)
	orderSvc := services.NewOrderService(pool, orderRepo, orderItemRepo, paymentRepo, customerRepo, userRepo, productRepo, inventorySvc, cacheSvc)
	authSvc := services.NewAuthService(userRepo, jwtSecret, tokenTTL)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc)
	productHandlers := handlers.NewProductHandlers(productSvc, imageSvc)
	supplierHandlers := handlers.NewSupplierHandlers(supplierSvc)
	customerHandlers := handlers.NewCustomerHandlers(customerSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc)
	transactionHandlers := handlers.NewTransactionHandlers(inventorySvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(productRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadyCheck)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	protected := v1.Group("")
	protected.Use(middleware.JWT(jwtSecret))
	protected.Use(middleware.UserContext())

	protected.GET("/auth/me", authHandlers.Me)
	protected.PUT("/auth/me", authHandlers.UpdateMe)

	protected.GET("/categories", categoryHandlers.ListCategories)
	protected.GET("/categories/:id", categoryHandlers.GetCategory)
	protected.POST("/categories", categoryHandlers.CreateCategory)
	protected.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	protected.GET("/products", productHandlers.ListProducts)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.PUT("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)
	protected.POST("/products/:id/image", productHandlers.UploadProductImage)

	protected.GET("/suppliers", supplierHandlers.ListSuppliers)
	protected.GET("/suppliers/:id", supplierHandlers.GetSupplier)
	protected.POST("/suppliers", supplierHandlers.CreateSupplier)
	protected.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier)
	protected.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier)

	protected.GET("/customers", customerHandlers.ListCustomers)
	protected.GET("/customers/:id", customerHandlers.GetCustomer)
	protected.POST("/customers", customerHandlers.CreateCustomer)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer)

	protected.GET("/orders", orderHandlers.ListOrders)
	protected.GET("/orders/:id", orderHandlers.GetOrder)
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.DELETE("/orders/:id", orderHandlers.DeleteOrder)

	protected.GET("/payments", paymentHandlers.ListPayments)
	protected.GET("/payments/:id", paymentHandlers.GetPayment)
	protected.POST("/payments", paymentHandlers.CreatePayment)
	protected.PUT("/payments/:id", paymentHandlers.UpdatePayment)

	protected.GET("/transactions", transactionHandlers.ListTransactions)

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
