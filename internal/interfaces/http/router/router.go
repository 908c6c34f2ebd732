package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/infrastructure/auth"
	"github.com/motoworld/storefront/internal/infrastructure/config"
	"github.com/motoworld/storefront/internal/infrastructure/logger"
	"github.com/motoworld/storefront/internal/interfaces/http/handler"
	"github.com/motoworld/storefront/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router needs to wire routes
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	// Blacklist is optional; without it revoked tokens stay valid
	// until they expire
	Blacklist auth.TokenBlacklist

	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
}

// New builds the gin engine with all middleware and routes registered
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.SecurityHeaders(),
		middleware.CORS(deps.Config.HTTP),
		middleware.BodySizeLimit(deps.Config.HTTP.MaxBodySize),
	)

	engine.GET("/health", deps.System.Health)
	engine.GET("/ready", deps.System.Ready)

	requireAuth := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.Blacklist,
		Logger:         deps.Logger,
	})

	api := engine.Group("/api/v1")

	registerPublicRoutes(api, deps)
	registerAccountRoutes(api, deps, requireAuth)
	registerStoreRoutes(api, deps, requireAuth)
	registerAdminRoutes(api, deps, requireAuth)

	return engine
}

// registerPublicRoutes wires the unauthenticated storefront surface
func registerPublicRoutes(api *gin.RouterGroup, deps Dependencies) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/refresh", deps.Auth.Refresh)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", deps.Category.List)
		categories.GET("/tree", deps.Category.Tree)
		categories.GET("/:slug", deps.Category.GetBySlug)
		categories.GET("/:slug/children", deps.Category.ChildrenBySlug)
	}

	products := api.Group("/products")
	{
		products.GET("", deps.Product.List)
		products.GET("/featured", deps.Product.Featured)
		products.GET("/:slug", deps.Product.GetBySlug)
		products.GET("/:slug/reviews", deps.Review.ListByProduct)
		products.GET("/:slug/reviews/summary", deps.Review.Summary)
	}
}

// registerAccountRoutes wires session and profile management
func registerAccountRoutes(api *gin.RouterGroup, deps Dependencies, requireAuth gin.HandlerFunc) {
	account := api.Group("/auth", requireAuth)
	{
		account.POST("/logout", deps.Auth.Logout)
		account.GET("/profile", deps.Auth.Profile)
		account.PUT("/profile", deps.Auth.UpdateProfile)
		account.PUT("/password", deps.Auth.ChangePassword)
	}
}

// registerStoreRoutes wires the authenticated shopping surface
func registerStoreRoutes(api *gin.RouterGroup, deps Dependencies, requireAuth gin.HandlerFunc) {
	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", deps.Cart.Get)
		cart.DELETE("", deps.Cart.Clear)
		cart.POST("/items", deps.Cart.AddItem)
		cart.PUT("/items/:itemId", deps.Cart.UpdateItem)
		cart.DELETE("/items/:itemId", deps.Cart.RemoveItem)
	}

	api.POST("/checkout", requireAuth, deps.Order.Checkout)

	orders := api.Group("/orders", requireAuth)
	{
		orders.GET("", deps.Order.ListMine)
		orders.GET("/:id", deps.Order.GetMine)
	}

	api.POST("/products/:slug/reviews", requireAuth, deps.Review.Submit)
}

// registerAdminRoutes wires the back-office surface
func registerAdminRoutes(api *gin.RouterGroup, deps Dependencies, requireAuth gin.HandlerFunc) {
	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin())

	categories := admin.Group("/categories")
	{
		categories.POST("", deps.Category.Create)
		categories.GET("/:id", deps.Category.Get)
		categories.GET("/:id/children", deps.Category.Children)
		categories.PUT("/:id", deps.Category.Update)
		categories.DELETE("/:id", deps.Category.Delete)
	}

	products := admin.Group("/products")
	{
		products.POST("", deps.Product.Create)
		products.GET("/:id", deps.Product.Get)
		products.PUT("/:id", deps.Product.Update)
		products.DELETE("/:id", deps.Product.Delete)

		products.POST("/:id/variants", deps.Product.AddVariant)
		products.PUT("/:id/variants/:variantId", deps.Product.UpdateVariant)
		products.DELETE("/:id/variants/:variantId", deps.Product.DeleteVariant)

		products.POST("/:id/images", deps.Product.AddImage)
		products.DELETE("/:id/images/:imageId", deps.Product.DeleteImage)

		products.GET("/:id/reviews", deps.Review.ListForModeration)
		products.POST("/:id/reviews/summary", deps.Review.RegenerateSummary)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", deps.Order.List)
		orders.GET("/:id", deps.Order.Get)
		orders.GET("/number/:number", deps.Order.GetByNumber)
		orders.PUT("/:id/status", deps.Order.UpdateStatus)
	}

	reviews := admin.Group("/reviews")
	{
		reviews.PUT("/:id/approve", deps.Review.Approve)
		reviews.PUT("/:id/reject", deps.Review.Reject)
		reviews.DELETE("/:id", deps.Review.Delete)
	}
}
