package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Modules that are mounted but not built yet. Every route answers 501.
func (h *Handler) initStubRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("/profile", h.notImplemented("users"))
		users.PUT("/profile", h.notImplemented("users"))
		users.GET("/wishlist", h.notImplemented("users"))
	}

	products := api.Group("/products")
	{
		products.GET("", h.notImplemented("products"))
		products.POST("", h.notImplemented("products"))
		products.GET("/:id", h.notImplemented("products"))
		products.PUT("/:id", h.notImplemented("products"))
		products.DELETE("/:id", h.notImplemented("products"))
		products.GET("/category/:categoryId", h.notImplemented("products"))
		products.GET("/vendor/:vendorId", h.notImplemented("products"))
	}

	orders := api.Group("/orders")
	{
		orders.GET("", h.notImplemented("orders"))
		orders.POST("", h.notImplemented("orders"))
		orders.GET("/:id", h.notImplemented("orders"))
		orders.PUT("/:id/status", h.notImplemented("orders"))
		orders.POST("/:id/cancel", h.notImplemented("orders"))
	}

	payments := api.Group("/payments")
	{
		payments.POST("/create-order", h.notImplemented("payments"))
		payments.POST("/verify", h.notImplemented("payments"))
		payments.POST("/webhook", h.notImplemented("payments"))
		payments.POST("/refund", h.notImplemented("payments"))
	}

	delivery := api.Group("/delivery")
	{
		delivery.GET("/track/:orderId", h.notImplemented("delivery"))
		delivery.POST("/assign", h.notImplemented("delivery"))
		delivery.PUT("/status", h.notImplemented("delivery"))
	}

	blogs := api.Group("/blogs")
	{
		blogs.GET("", h.notImplemented("blogs"))
		blogs.POST("", h.notImplemented("blogs"))
		blogs.GET("/:id", h.notImplemented("blogs"))
	}

	banners := api.Group("/banners")
	{
		banners.GET("", h.notImplemented("banners"))
		banners.POST("", h.notImplemented("banners"))
		banners.PUT("/:id", h.notImplemented("banners"))
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.notImplemented("notifications"))
		notifications.POST("/send", h.notImplemented("notifications"))
		notifications.PUT("/:id/read", h.notImplemented("notifications"))
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", h.notImplemented("reviews"))
		reviews.GET("/product/:productId", h.notImplemented("reviews"))
		reviews.PUT("/:id", h.notImplemented("reviews"))
	}
}

func (h *Handler) notImplemented(module string) gin.HandlerFunc {
	message := fmt.Sprintf("%s endpoint is not implemented yet", module)

	return func(c *gin.Context) {
		errorResponse(c, http.StatusNotImplemented, NotImplementedCode, message)
	}
}
