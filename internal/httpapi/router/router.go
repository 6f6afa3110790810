package router

import (
	"github.com/gin-gonic/gin"
	"github.com/vitrine/catalog-service/config"
	"github.com/vitrine/catalog-service/internal/httpapi"
	categoryhandler "github.com/vitrine/catalog-service/internal/category/handler"
	imagehandler "github.com/vitrine/catalog-service/internal/image/handler"
	producthandler "github.com/vitrine/catalog-service/internal/product/handler"
	storefronthandler "github.com/vitrine/catalog-service/internal/storefront/handler"
)

type Handlers struct {
	Category   *categoryhandler.CategoryHandler
	Product    *producthandler.ProductHandler
	Image      *imagehandler.ImageHandler
	Storefront *storefronthandler.StorefrontHandler
}

func NewRouter(cfg *config.ServerConfig, h *Handlers) *gin.Engine {
	if cfg.AppEnv != "development" && cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpapi.CORS(cfg.CORSOrigins))

	api := r.Group("/api")

	// Storefront (public, read only)
	api.GET("/categories", h.Storefront.ListCategories)
	api.GET("/products", h.Storefront.ListProducts)
	api.GET("/products/:slug", h.Storefront.GetProduct)

	adminAuth := httpapi.AdminAuth(cfg.AdminToken)

	api.POST("/upload", adminAuth, h.Image.Upload)

	// Back office
	admin := api.Group("/admin", adminAuth)
	{
		admin.POST("/categories", h.Category.Create)
		admin.GET("/categories", h.Category.List)
		admin.GET("/categories/:id", h.Category.Get)
		admin.PATCH("/categories/:id", h.Category.Update)
		admin.DELETE("/categories/:id", h.Category.Delete)
		admin.POST("/categories/bulk-delete", h.Category.BulkDelete)

		admin.POST("/products", h.Product.Create)
		admin.GET("/products", h.Product.List)
		admin.GET("/products/:id", h.Product.Get)
		admin.PATCH("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/:id/variants", h.Product.AddVariant)
		admin.GET("/products/:id/variants", h.Product.ListVariants)

		admin.DELETE("/variants/:id", h.Product.DeleteVariant)
		admin.POST("/variants/:id/images", h.Image.Create)
		admin.GET("/variants/:id/images", h.Image.ListByVariant)

		admin.PATCH("/images/:id", h.Image.Update)
		admin.DELETE("/images/:id", h.Image.Delete)
	}

	return r
}
