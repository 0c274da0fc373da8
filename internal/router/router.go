// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshopx/eshop-backend/internal/config"
	"github.com/eshopx/eshop-backend/internal/database"
	"github.com/eshopx/eshop-backend/internal/handlers"
	"github.com/eshopx/eshop-backend/internal/middleware"
	"github.com/eshopx/eshop-backend/internal/services"
	"github.com/eshopx/eshop-backend/internal/utils"
)

func Initialize(db *database.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	userService := services.NewUserService(db, cfg)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, categoryService)
	orderService := services.NewOrderService(db, productService)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	limits := middleware.NewRateLimits(cfg.RateLimit)

	// Global middleware: the auth gate runs ahead of every router.
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(limits.General.Middleware())
	r.Use(middleware.AuthGate(cfg))
	r.Use(middleware.AuditLogMiddleware(db, cfg.API.BasePath))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Static serving of uploaded images
	r.Static(cfg.Uploads.PublicPath, cfg.Uploads.Dir)

	api := r.Group(cfg.API.BasePath)
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.POST("", userHandler.Create)
			users.POST("/login", limits.Auth.Middleware(), userHandler.Login)
			users.POST("/register", limits.Auth.Middleware(), userHandler.Create)
			users.GET("/get/count", userHandler.Count)
			users.DELETE("/:id", userHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", limits.Upload.Middleware(), productHandler.Create)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", limits.Upload.Middleware(), productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.GET("/get/count", productHandler.Count)
			products.GET("/get/featured/:count", productHandler.Featured)
			products.PUT("/gallery-images/:id", limits.Upload.Middleware(), productHandler.UpdateGallery)
		}

		category := api.Group("/category")
		{
			category.GET("", categoryHandler.List)
			category.POST("", categoryHandler.Create)
			category.GET("/:id", categoryHandler.Get)
			category.PUT("/:id", categoryHandler.Update)
			category.DELETE("/:id", categoryHandler.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.POST("", orderHandler.Create)
			orders.GET("/:id", orderHandler.Get)
			orders.PUT("/:id", orderHandler.Update)
			orders.DELETE("/:id", orderHandler.Delete)
			orders.GET("/get/totalsales", orderHandler.TotalSales)
			orders.GET("/get/count", orderHandler.Count)
			orders.GET("/get/userorders/:userid", orderHandler.UserOrders)
		}
	}

	return r, nil
}
