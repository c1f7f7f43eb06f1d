package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/server/handlers"
	"github.com/oumarbarry/coqdor/internal/server/middleware"
	"github.com/oumarbarry/coqdor/pkg/clients/identity"
)

// Handlers groups every HTTP adapter the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Roosters  *handlers.RoosterHandler
	Sales     *handlers.SaleHandler
	Suppliers *handlers.SupplierHandler
	Reviews   *handlers.ReviewHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, identityClient identity.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(middleware.Session(identityClient, logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
	}

	inventory := r.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.POST("", h.Inventory.Create)
		inventory.GET("/stats", h.Inventory.Stats)
		inventory.GET("/activity", h.Inventory.Activity)
		inventory.GET("/:id", h.Inventory.Get)
		inventory.PATCH("/:id", h.Inventory.Update)
		inventory.DELETE("/:id", h.Inventory.Delete)
		inventory.POST("/:id/restock", h.Inventory.Restock)
		inventory.POST("/:id/consume", h.Inventory.Consume)
	}

	roosters := r.Group("/roosters")
	{
		roosters.GET("", h.Roosters.List)
		roosters.POST("", h.Roosters.Create)
		roosters.GET("/:id", h.Roosters.Get)
		roosters.PATCH("/:id", h.Roosters.Update)
		roosters.DELETE("/:id", h.Roosters.Delete)
	}

	breeds := r.Group("/breeds")
	{
		breeds.GET("", h.Roosters.ListBreeds)
		breeds.POST("", h.Roosters.CreateBreed)
		breeds.DELETE("/:id", h.Roosters.DeleteBreed)
	}

	sales := r.Group("/sales")
	{
		sales.GET("", h.Sales.List)
		sales.POST("", h.Sales.Create)
		sales.GET("/stats", h.Sales.Stats)
		sales.GET("/:id", h.Sales.Get)
		sales.PATCH("/:id", h.Sales.Update)
		sales.DELETE("/:id", h.Sales.Delete)
	}

	suppliers := r.Group("/suppliers")
	{
		suppliers.GET("", h.Suppliers.List)
		suppliers.POST("", h.Suppliers.Create)
		suppliers.GET("/:id", h.Suppliers.Get)
		suppliers.PATCH("/:id", h.Suppliers.Update)
		suppliers.DELETE("/:id", h.Suppliers.Delete)
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.Reviews.ListPublic)
		reviews.POST("", h.Reviews.Submit)
		reviews.GET("/all", h.Reviews.ListAll)
		reviews.POST("/:id/approve", h.Reviews.Approve)
		reviews.DELETE("/:id", h.Reviews.Delete)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
