package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"smarthome-store/internal/config"
	"smarthome-store/internal/handlers"
	"smarthome-store/internal/pricing"
	"smarthome-store/internal/repository"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	productRepo := repository.NewProductRepository(db.Collection("products"))
	categoryRepo := repository.NewCategoryRepository(db.Collection("categories"))
	cartRepo := repository.NewCartRepository(db.Collection("carts"), db.Collection("orders"))

	composer := &pricing.Composer{FallbackUnitPrice: cfg.FallbackUnitPrice}

	productHandler := handlers.NewProductHandler(productRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, productRepo)
	quoteHandler := handlers.NewQuoteHandler(productRepo, composer)
	cartHandler := handlers.NewCartHandler(productRepo, cartRepo, composer)

	v1 := router.Group("/v1")
	{
		v1.POST("/products", productHandler.CreateProduct)
		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.PATCH("/products/:id", productHandler.UpdateProduct)
		v1.DELETE("/products/:id", productHandler.DeleteProduct)

		v1.POST("/categories", categoryHandler.CreateCategory)
		v1.GET("/categories", categoryHandler.ListCategories)
		v1.GET("/categories/:slug/pricelist", categoryHandler.PriceList)
		v1.PATCH("/categories/:id", categoryHandler.UpdateCategory)
		v1.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		v1.POST("/quote", quoteHandler.Quote)

		v1.POST("/cart/:cartId/items", cartHandler.AddToCart)
		v1.GET("/cart/:cartId", cartHandler.GetCart)
		v1.POST("/buy-now", cartHandler.BuyNow)
	}
}
