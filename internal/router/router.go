package router

import (
	"github.com/gin-gonic/gin"
	"github.com/vyanhpham/rosea-backend/config"
	"github.com/vyanhpham/rosea-backend/internal/app/controller"
	"github.com/vyanhpham/rosea-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	categoryController *controller.CategoryController
	brandController    *controller.BrandController
	productController  *controller.ProductController
	variantController  *controller.VariantController
	orderController    *controller.OrderController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	brandController *controller.BrandController,
	productController *controller.ProductController,
	variantController *controller.VariantController,
	orderController *controller.OrderController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		categoryController: categoryController,
		brandController:    brandController,
		productController:  productController,
		variantController:  variantController,
		orderController:    orderController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "ROSEA API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		// Public storefront reads
		v1.GET("/categories", r.categoryController.ListCategories)
		v1.GET("/categories/:id", r.categoryController.GetCategory)
		v1.GET("/brands", r.brandController.ListBrands)
		v1.GET("/brands/:id", r.brandController.GetBrand)
		v1.GET("/products", r.productController.ListProducts)
		v1.GET("/products/:id", r.productController.GetProduct)
		v1.GET("/products/:id/variants", r.variantController.ListVariants)

		// Storefront checkout
		v1.POST("/orders", r.orderController.CreateOrder)

		// Back-office writes
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole("staff", "admin"))
		{
			admin.POST("/categories", r.categoryController.CreateCategory)
			admin.PUT("/categories/:id", r.categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", r.categoryController.DeleteCategory)

			admin.POST("/subcategories", r.categoryController.CreateSubcategory)
			admin.PUT("/subcategories/:id", r.categoryController.UpdateSubcategory)
			admin.DELETE("/subcategories/:id", r.categoryController.DeleteSubcategory)

			admin.POST("/brands", r.brandController.CreateBrand)
			admin.PUT("/brands/:id", r.brandController.UpdateBrand)
			admin.DELETE("/brands/:id", r.brandController.DeleteBrand)

			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)

			admin.POST("/products/:id/variants", r.variantController.CreateVariant)
			admin.PUT("/variants/:id", r.variantController.UpdateVariant)
			admin.DELETE("/variants/:id", r.variantController.DeleteVariant)

			admin.GET("/orders", r.orderController.ListOrders)
			admin.GET("/orders/export", r.orderController.ExportOrders)
			admin.GET("/orders/:id", r.orderController.GetOrder)
			admin.PUT("/orders/:id", r.orderController.UpdateOrder)
			admin.DELETE("/orders/:id", r.orderController.DeleteOrder)

			admin.POST("/upload", r.uploadController.UploadImage)
			admin.POST("/upload/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
