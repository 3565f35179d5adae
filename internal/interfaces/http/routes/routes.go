// internal/interfaces/http/routes/routes.go
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/docesdalu/storefront-backend/internal/config"
	"github.com/docesdalu/storefront-backend/internal/domain/cart"
	"github.com/docesdalu/storefront-backend/internal/domain/catalog"
	"github.com/docesdalu/storefront-backend/internal/domain/checkout"
	"github.com/docesdalu/storefront-backend/internal/domain/pricing"
	"github.com/docesdalu/storefront-backend/internal/interfaces/http/handlers"
	"github.com/docesdalu/storefront-backend/internal/interfaces/http/middleware"
)

// Deps carries the constructed services the routes need. Dependencies
// are passed explicitly rather than reached for as globals so tests
// can swap in fixtures.
type Deps struct {
	Config          *config.Config
	RedisClient     *redis.Client
	Catalog         *catalog.Catalog
	Rules           *pricing.RuleSet
	CartService     *cart.Service
	CheckoutService *checkout.Service
	Resolver        checkout.PostalResolver
}

// SetupRoutes wires all storefront routes
func SetupRoutes(rg *gin.RouterGroup, deps *Deps) {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)
	cartHandler := handlers.NewCartHandler(deps.CartService, deps.Rules)
	checkoutHandler := handlers.NewCheckoutHandler(deps.CheckoutService)
	shippingHandler := handlers.NewShippingHandler(deps.Resolver)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	cartRoutes := rg.Group("/cart")
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("/items", cartHandler.AddItem)
		cartRoutes.PUT("/items/:index", cartHandler.UpdateItem)
		cartRoutes.DELETE("/items/:index", cartHandler.RemoveItem)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.GET("/count", cartHandler.GetCartCount)
		cartRoutes.POST("/coupon", cartHandler.ApplyCoupon)
		cartRoutes.GET("/summary", checkoutHandler.GetSummary)
	}

	shipping := rg.Group("/shipping")
	{
		// One lookup in flight per session; a second submit is
		// rejected, not queued
		shipping.POST("/resolve",
			middleware.SingleInFlight(deps.RedisClient, "shipping", 15*time.Second),
			shippingHandler.Resolve)
	}

	checkoutRoutes := rg.Group("/checkout")
	{
		checkoutRoutes.POST("/whatsapp", checkoutHandler.DispatchWhatsApp)
		checkoutRoutes.POST("/payment",
			middleware.SingleInFlight(deps.RedisClient, "payment", 45*time.Second),
			checkoutHandler.StartPayment)
	}
}
