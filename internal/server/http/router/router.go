package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/gradovikov/storefront/internal/server/http/handlers"
	"github.com/gradovikov/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)

	api := engine.Group("/api")

	userAuth := api.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/orders", orderHandler.Create)
	userAuth.GET("/orders", orderHandler.ListMine)
	userAuth.GET("/orders/:orderID", orderHandler.Get)
	userAuth.GET("/purchases/:productID", purchaseHandler.Check)

	admin := userAuth.Group("")
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/admin/orders", orderHandler.ListAll)
	admin.PATCH("/orders/:orderID/status", orderHandler.UpdateStatus)

	return engine
}
